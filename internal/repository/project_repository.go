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

// ProjectRepository определяет интерфейс для работы с проектами и их составом
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project, memberIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, filter domain.ProjectFilter, sort domain.SortOptions) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project, memberIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, projectID, employeeID uuid.UUID) error
	RemoveMember(ctx context.Context, projectID, employeeID uuid.UUID) error
	IsMember(ctx context.Context, employeeID, projectID uuid.UUID) (bool, error)
	MemberProjectIDs(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error)

	ListByDirector(ctx context.Context, directorID uuid.UUID) ([]domain.Project, error)
	ListByMember(ctx context.Context, employeeID uuid.UUID) ([]domain.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository создаёт новый экземпляр репозитория
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project, memberIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return insertMembers(tx, project.ID, uniqueIDs(memberIDs))
	})
}

// withProjectRelations подгружает состав и идентификаторы задач проекта
func withProjectRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Memberships").
		Preload("Objectives", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "project_id").Order("id ASC")
		})
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := withProjectRelations(r.db.WithContext(ctx)).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

var projectSortColumns = map[string]string{
	"name":      "name",
	"starttime": "start_time",
	"priority":  "priority",
}

func (r *projectRepository) List(ctx context.Context, filter domain.ProjectFilter, sort domain.SortOptions) ([]domain.Project, error) {
	query := withProjectRelations(r.db.WithContext(ctx).Model(&domain.Project{}))

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", containsPattern(filter.Name))
	}
	if filter.CustomerName != "" {
		query = query.Where("LOWER(customer_name) LIKE ?", containsPattern(filter.CustomerName))
	}
	if filter.ExecutorName != "" {
		query = query.Where("LOWER(executor_name) LIKE ?", containsPattern(filter.ExecutorName))
	}
	if filter.StartTimeFrom != nil {
		query = query.Where("start_time >= ?", filter.StartTimeFrom.UTC())
	}
	if filter.StartTimeTo != nil {
		query = query.Where("start_time <= ?", filter.StartTimeTo.UTC())
	}
	if len(filter.Priorities) > 0 {
		query = query.Where("priority IN ?", filter.Priorities)
	}
	if filter.DirectorID != nil {
		query = query.Where("director_id = ?", *filter.DirectorID)
	}

	column, ok := projectSortColumns[strings.ToLower(sort.Key)]
	if !ok {
		column = "start_time"
	}
	query = query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: !sort.Ascending}).
		Order("id ASC")

	var projects []domain.Project
	err := query.Find(&projects).Error
	return projects, err
}

// Update сохраняет поля проекта и приводит его состав к memberIDs одной транзакцией
func (r *projectRepository) Update(ctx context.Context, project *domain.Project, memberIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(project).
			Select("Name", "CustomerName", "ExecutorName", "DirectorID", "StartTime", "EndTime", "Priority").
			Updates(project)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrProjectNotFound
		}
		return replaceMembers(tx, project.ID, memberIDs)
	})
}

// Delete удаляет проект вместе со связями участников.
// Задачи проекта остаются, их project_id обнуляется схемой.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&domain.EmployeeProject{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Objective{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrProjectNotFound
		}
		return nil
	})
}

// AddMember добавляет сотрудника в проект. Повторное добавление ничего не меняет.
func (r *projectRepository) AddMember(ctx context.Context, projectID, employeeID uuid.UUID) error {
	return insertMembers(r.db.WithContext(ctx), projectID, []uuid.UUID{employeeID})
}

// RemoveMember удаляет связь; отсутствие связи не считается ошибкой
func (r *projectRepository) RemoveMember(ctx context.Context, projectID, employeeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND employee_id = ?", projectID, employeeID).
		Delete(&domain.EmployeeProject{}).Error
}

// replaceMembers приводит состав проекта к employeeIDs: лишние связи удаляются,
// недостающие добавляются, совпадающие не трогаются.
func replaceMembers(tx *gorm.DB, projectID uuid.UUID, employeeIDs []uuid.UUID) error {
	wanted := uniqueIDs(employeeIDs)

	var existing []domain.EmployeeProject
	if err := tx.Where("project_id = ?", projectID).Find(&existing).Error; err != nil {
		return err
	}

	keep := make(map[uuid.UUID]struct{}, len(wanted))
	for _, id := range wanted {
		keep[id] = struct{}{}
	}

	current := make(map[uuid.UUID]struct{}, len(existing))
	var stale []uuid.UUID
	for _, link := range existing {
		current[link.EmployeeID] = struct{}{}
		if _, ok := keep[link.EmployeeID]; !ok {
			stale = append(stale, link.EmployeeID)
		}
	}

	if len(stale) > 0 {
		err := tx.Where("project_id = ? AND employee_id IN ?", projectID, stale).
			Delete(&domain.EmployeeProject{}).Error
		if err != nil {
			return err
		}
	}

	var missing []uuid.UUID
	for _, id := range wanted {
		if _, ok := current[id]; !ok {
			missing = append(missing, id)
		}
	}
	return insertMembers(tx, projectID, missing)
}

func (r *projectRepository) IsMember(ctx context.Context, employeeID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.EmployeeProject{}).
		Where("employee_id = ? AND project_id = ?", employeeID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *projectRepository) MemberProjectIDs(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error) {
	var links []domain.EmployeeProject
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Find(&links).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.ProjectID)
	}
	return ids, nil
}

func (r *projectRepository) ListByDirector(ctx context.Context, directorID uuid.UUID) ([]domain.Project, error) {
	var projects []domain.Project
	err := withProjectRelations(r.db.WithContext(ctx)).
		Where("director_id = ?", directorID).
		Order("start_time ASC").
		Order("id ASC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListByMember(ctx context.Context, employeeID uuid.UUID) ([]domain.Project, error) {
	var projects []domain.Project
	err := withProjectRelations(r.db.WithContext(ctx)).
		Where("id IN (?)", r.db.Model(&domain.EmployeeProject{}).Select("project_id").Where("employee_id = ?", employeeID)).
		Order("start_time ASC").
		Order("id ASC").
		Find(&projects).Error
	return projects, err
}

func insertMembers(tx *gorm.DB, projectID uuid.UUID, employeeIDs []uuid.UUID) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	links := make([]domain.EmployeeProject, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		links = append(links, domain.EmployeeProject{EmployeeID: id, ProjectID: projectID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
