package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
	"github.com/project-manager-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ResolveEmployeeID(ctx context.Context, userID string) (uuid.UUID, error)
}

type employeeService struct {
	empRepo repository.EmployeeRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{
		empRepo: empRepo,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	emp := &domain.Employee{}
	applyEmployeeRequest(emp, req)

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.empRepo.List(ctx)
}

func (s *employeeService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyEmployeeRequest(emp, req)

	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func applyEmployeeRequest(emp *domain.Employee, req *dto.CreateEmployeeRequest) {
	emp.FirstName = strings.TrimSpace(req.FirstName)
	emp.LastName = strings.TrimSpace(req.LastName)
	emp.Patronymic = trimmedOrNil(req.Patronymic)
	emp.Mail = strings.TrimSpace(req.Mail)
	emp.UserID = trimmedOrNil(req.UserID)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.empRepo.Delete(ctx, id)
}

// ResolveEmployeeID сопоставляет внешнюю учётную запись с сотрудником
func (s *employeeService) ResolveEmployeeID(ctx context.Context, userID string) (uuid.UUID, error) {
	return s.empRepo.ResolveEmployeeIDForIdentity(ctx, userID)
}
