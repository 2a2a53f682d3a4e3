package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	ResolveEmployeeIDForIdentity(ctx context.Context, userID string) (uuid.UUID, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return translateIdentityErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(emp).Error)
}

// translateIdentityErr сообщает о занятой учётной записи вместо нарушения уникальности user_id
func translateIdentityErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrIdentityTaken
	}
	return err
}

// withRelations подгружает только идентификаторы связанных сущностей
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Memberships").
		Preload("AuthoredObjectives", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "author_id").Order("id ASC")
		}).
		Preload("AssignedObjectives", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "executor_id").Order("id ASC")
		})
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var emp domain.Employee
	err := withRelations(r.db.WithContext(ctx)).First(&emp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := withRelations(r.db.WithContext(ctx)).
		Order("last_name ASC").
		Order("first_name ASC").
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	result := r.db.WithContext(ctx).
		Model(emp).
		Select("FirstName", "LastName", "Patronymic", "Mail", "UserID").
		Updates(emp)
	if result.Error != nil {
		return translateIdentityErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete удаляет сотрудника. Связи с проектами удаляются каскадно,
// ссылки из задач обнуляются. Руководителя проекта удалить нельзя.
func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var directed int64
		if err := tx.Model(&domain.Project{}).Where("director_id = ?", id).Count(&directed).Error; err != nil {
			return err
		}
		if directed > 0 {
			return domain.ErrEmployeeInUse
		}

		result := tx.Delete(&domain.Employee{}, "id = ?", id)
		if result.Error != nil {
			// проект мог получить руководителя после проверки
			if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
				return domain.ErrEmployeeInUse
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrEmployeeNotFound
		}
		return nil
	})
}

func (r *employeeRepository) ResolveEmployeeIDForIdentity(ctx context.Context, userID string) (uuid.UUID, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ?", userID).
		Take(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, domain.ErrEmployeeNotFound
		}
		return uuid.Nil, err
	}
	return emp.ID, nil
}
