package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ObjectiveRepository определяет интерфейс для работы с задачами
type ObjectiveRepository interface {
	Create(ctx context.Context, objective *domain.Objective) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Objective, error)
	GetByIDForExecutor(ctx context.Context, objectiveID, executorID uuid.UUID) (*domain.Objective, error)
	List(ctx context.Context, filter domain.ObjectiveFilter, sort domain.SortOptions) ([]domain.Objective, error)
	Update(ctx context.Context, objective *domain.Objective) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error
	UpdateExecutor(ctx context.Context, id uuid.UUID, executorID uuid.UUID) error
	SetProject(ctx context.Context, id uuid.UUID, projectID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListByExecutor(ctx context.Context, employeeID uuid.UUID) ([]domain.Objective, error)
	ListByProjectDirector(ctx context.Context, directorID uuid.UUID) ([]domain.Objective, error)
}

type objectiveRepository struct {
	db *gorm.DB
}

// NewObjectiveRepository создаёт новый экземпляр репозитория
func NewObjectiveRepository(db *gorm.DB) ObjectiveRepository {
	return &objectiveRepository{db: db}
}

func (r *objectiveRepository) Create(ctx context.Context, objective *domain.Objective) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(objective).Error
}

func (r *objectiveRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Objective, error) {
	var objective domain.Objective
	err := r.db.WithContext(ctx).First(&objective, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrObjectiveNotFound
		}
		return nil, err
	}
	return &objective, nil
}

// GetByIDForExecutor возвращает задачу, только если её исполнитель - executorID
func (r *objectiveRepository) GetByIDForExecutor(ctx context.Context, objectiveID, executorID uuid.UUID) (*domain.Objective, error) {
	var objective domain.Objective
	err := r.db.WithContext(ctx).
		Where("id = ? AND executor_id = ?", objectiveID, executorID).
		First(&objective).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrObjectiveNotFound
		}
		return nil, err
	}
	return &objective, nil
}

// objectiveSort описывает сортировку: колонку и, при необходимости, join для неё
type objectiveSort struct {
	column clause.Column
	join   string
}

var objectiveSorts = map[string]objectiveSort{
	"name":     {column: clause.Column{Table: "objectives", Name: "name"}},
	"status":   {column: clause.Column{Table: "objectives", Name: "status"}},
	"priority": {column: clause.Column{Table: "objectives", Name: "priority"}},
	"author": {
		column: clause.Column{Table: "authors", Name: "last_name"},
		join:   "LEFT JOIN employees AS authors ON authors.id = objectives.author_id",
	},
	"executor": {
		column: clause.Column{Table: "executors", Name: "last_name"},
		join:   "LEFT JOIN employees AS executors ON executors.id = objectives.executor_id",
	},
	"project": {
		column: clause.Column{Table: "sort_projects", Name: "name"},
		join:   "LEFT JOIN projects AS sort_projects ON sort_projects.id = objectives.project_id",
	},
}

func (r *objectiveRepository) List(ctx context.Context, filter domain.ObjectiveFilter, sort domain.SortOptions) ([]domain.Objective, error) {
	query := r.db.WithContext(ctx).Model(&domain.Objective{}).Select("objectives.*")

	if len(filter.Statuses) > 0 {
		query = query.Where("objectives.status IN ?", filter.Statuses)
	}
	if len(filter.Priorities) > 0 {
		query = query.Where("objectives.priority IN ?", filter.Priorities)
	}
	if filter.Name != "" {
		query = query.Where("LOWER(objectives.name) LIKE ?", containsPattern(filter.Name))
	}
	if filter.AuthorID != nil {
		query = query.Where("objectives.author_id = ?", *filter.AuthorID)
	}
	if filter.ExecutorID != nil {
		query = query.Where("objectives.executor_id = ?", *filter.ExecutorID)
	}
	if filter.ProjectID != nil {
		query = query.Where("objectives.project_id = ?", *filter.ProjectID)
	}

	idColumn := clause.Column{Table: "objectives", Name: "id"}
	if s, ok := objectiveSorts[strings.ToLower(sort.Key)]; ok {
		if s.join != "" {
			query = query.Joins(s.join)
		}
		query = query.
			Order(clause.OrderByColumn{Column: s.column, Desc: !sort.Ascending}).
			Order(clause.OrderByColumn{Column: idColumn})
	} else {
		query = query.Order(clause.OrderByColumn{Column: idColumn, Desc: !sort.Ascending})
	}

	var objectives []domain.Objective
	err := query.Find(&objectives).Error
	return objectives, err
}

func (r *objectiveRepository) Update(ctx context.Context, objective *domain.Objective) error {
	result := r.db.WithContext(ctx).
		Model(objective).
		Select("Name", "AuthorID", "ExecutorID", "Status", "Comment", "Priority", "ProjectID").
		Updates(objective)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrObjectiveNotFound
	}
	return nil
}

func (r *objectiveRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	return r.updateColumn(ctx, id, "status", status)
}

func (r *objectiveRepository) UpdateExecutor(ctx context.Context, id uuid.UUID, executorID uuid.UUID) error {
	err := r.updateColumn(ctx, id, "executor_id", executorID)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrEmployeeNotFound
	}
	return err
}

// SetProject привязывает задачу к проекту; nil отвязывает её
func (r *objectiveRepository) SetProject(ctx context.Context, id uuid.UUID, projectID *uuid.UUID) error {
	if projectID == nil {
		return r.updateColumn(ctx, id, "project_id", nil)
	}
	return r.updateColumn(ctx, id, "project_id", *projectID)
}

func (r *objectiveRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value any) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Objective{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrObjectiveNotFound
	}
	return nil
}

func (r *objectiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Objective{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrObjectiveNotFound
	}
	return nil
}

func (r *objectiveRepository) ListByExecutor(ctx context.Context, employeeID uuid.UUID) ([]domain.Objective, error) {
	var objectives []domain.Objective
	err := r.db.WithContext(ctx).
		Where("executor_id = ?", employeeID).
		Order("priority ASC").
		Order("id ASC").
		Find(&objectives).Error
	return objectives, err
}

func (r *objectiveRepository) ListByProjectDirector(ctx context.Context, directorID uuid.UUID) ([]domain.Objective, error) {
	var objectives []domain.Objective
	err := r.db.WithContext(ctx).
		Select("objectives.*").
		Joins("JOIN projects ON projects.id = objectives.project_id").
		Where("projects.director_id = ?", directorID).
		Order("objectives.priority ASC").
		Order("objectives.id ASC").
		Find(&objectives).Error
	return objectives, err
}
