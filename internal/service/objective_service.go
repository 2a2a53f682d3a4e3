package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
	"github.com/project-manager-api/internal/repository"
)

// ObjectiveService определяет интерфейс бизнес-логики для задач:
// CRUD, назначение исполнителя и смену статуса с проверкой прав.
//
// Ролевые ограничения (кто вообще может вызывать операцию) проверяются
// на уровне HTTP. Здесь проверяются только связи между конкретными сущностями.
type ObjectiveService interface {
	Create(ctx context.Context, authorID uuid.UUID, req *dto.CreateObjectiveRequest) (*domain.Objective, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Objective, error)
	List(ctx context.Context, filter domain.ObjectiveFilter, sort domain.SortOptions) ([]domain.Objective, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateObjectiveRequest) (*domain.Objective, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AssignExecutor(ctx context.Context, objectiveID, employeeID uuid.UUID) error
	UpdateExecutor(ctx context.Context, objectiveID, employeeID uuid.UUID) error
	UpdateStatus(ctx context.Context, objectiveID uuid.UUID, status domain.Status, actorEmployeeID uuid.UUID, actorIsDirector bool) (bool, error)
	UpdateStatusAs(ctx context.Context, caller domain.Caller, objectiveID uuid.UUID, status domain.Status) (bool, error)
	IsMember(ctx context.Context, objectiveID, employeeID uuid.UUID) bool

	ListForExecutor(ctx context.Context, employeeID uuid.UUID) ([]domain.Objective, error)
	ListForProjectDirector(ctx context.Context, directorID uuid.UUID) ([]domain.Objective, error)
}

type objectiveService struct {
	objectiveRepo repository.ObjectiveRepository
	employeeRepo  repository.EmployeeRepository
	projectRepo   repository.ProjectRepository
	membership    MembershipResolver
	logger        *slog.Logger
}

// NewObjectiveService создаёт новый экземпляр сервиса
func NewObjectiveService(
	objectiveRepo repository.ObjectiveRepository,
	employeeRepo repository.EmployeeRepository,
	projectRepo repository.ProjectRepository,
	membership MembershipResolver,
	logger *slog.Logger,
) ObjectiveService {
	return &objectiveService{
		objectiveRepo: objectiveRepo,
		employeeRepo:  employeeRepo,
		projectRepo:   projectRepo,
		membership:    membership,
		logger:        logger,
	}
}

func (s *objectiveService) Create(ctx context.Context, authorID uuid.UUID, req *dto.CreateObjectiveRequest) (*domain.Objective, error) {
	if err := s.ensureReferences(ctx, req.ExecutorID, req.ProjectID); err != nil {
		return nil, err
	}

	objective := &domain.Objective{
		Name:       strings.TrimSpace(req.Name),
		AuthorID:   &authorID,
		ExecutorID: req.ExecutorID,
		Status:     req.Status,
		Comment:    req.Comment,
		Priority:   req.Priority,
		ProjectID:  req.ProjectID,
	}

	if err := s.objectiveRepo.Create(ctx, objective); err != nil {
		return nil, err
	}

	return objective, nil
}

func (s *objectiveService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Objective, error) {
	return s.objectiveRepo.GetByID(ctx, id)
}

func (s *objectiveService) List(ctx context.Context, filter domain.ObjectiveFilter, sort domain.SortOptions) ([]domain.Objective, error) {
	return s.objectiveRepo.List(ctx, filter, sort)
}

func (s *objectiveService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateObjectiveRequest) (*domain.Objective, error) {
	objective, err := s.objectiveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureReferences(ctx, req.ExecutorID, req.ProjectID); err != nil {
		return nil, err
	}
	if req.AuthorID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.AuthorID); err != nil {
			return nil, err
		}
		objective.AuthorID = req.AuthorID
	}

	objective.Name = strings.TrimSpace(req.Name)
	objective.ExecutorID = req.ExecutorID
	objective.Status = req.Status
	objective.Comment = req.Comment
	objective.Priority = req.Priority
	objective.ProjectID = req.ProjectID

	if err := s.objectiveRepo.Update(ctx, objective); err != nil {
		return nil, err
	}

	return objective, nil
}

// ensureReferences проверяет существование исполнителя и проекта, если они заданы
func (s *objectiveService) ensureReferences(ctx context.Context, executorID, projectID *uuid.UUID) error {
	if executorID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *executorID); err != nil {
			return err
		}
	}
	if projectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *projectID); err != nil {
			return err
		}
	}
	return nil
}

func (s *objectiveService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.objectiveRepo.Delete(ctx, id)
}

// AssignExecutor назначает исполнителя, который должен состоять в проекте задачи
func (s *objectiveService) AssignExecutor(ctx context.Context, objectiveID, employeeID uuid.UUID) error {
	if _, err := s.objectiveRepo.GetByID(ctx, objectiveID); err != nil {
		return err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}

	if !s.membership.IsEmployeeMemberOfObjectivesProject(ctx, objectiveID, employeeID) {
		return domain.ErrEmployeeNotInProject
	}

	return s.objectiveRepo.UpdateExecutor(ctx, objectiveID, employeeID)
}

// UpdateExecutor меняет исполнителя без проверки участия в проекте.
// Несуществующий сотрудник отвергается внешним ключом хранилища.
func (s *objectiveService) UpdateExecutor(ctx context.Context, objectiveID, employeeID uuid.UUID) error {
	if _, err := s.objectiveRepo.GetByID(ctx, objectiveID); err != nil {
		return err
	}

	return s.objectiveRepo.UpdateExecutor(ctx, objectiveID, employeeID)
}

// UpdateStatus меняет статус задачи, если актор - директор, исполнитель задачи
// или руководитель её проекта (проверки в этом порядке). Отказ - это false без ошибки.
func (s *objectiveService) UpdateStatus(
	ctx context.Context,
	objectiveID uuid.UUID,
	status domain.Status,
	actorEmployeeID uuid.UUID,
	actorIsDirector bool,
) (bool, error) {
	objective, err := s.objectiveRepo.GetByID(ctx, objectiveID)
	if err != nil {
		return false, err
	}

	if !status.Valid() {
		return false, domain.ErrInvalidStatus
	}

	allowed, err := s.canChangeStatus(ctx, objective, actorEmployeeID, actorIsDirector)
	if err != nil {
		return false, err
	}
	if !allowed {
		s.logger.Debug("objective status change denied",
			slog.String("objective_id", objectiveID.String()),
			slog.String("actor_id", actorEmployeeID.String()),
		)
		return false, nil
	}

	if err := s.objectiveRepo.UpdateStatus(ctx, objectiveID, status); err != nil {
		return false, err
	}

	return true, nil
}

func (s *objectiveService) canChangeStatus(ctx context.Context, objective *domain.Objective, actorID uuid.UUID, actorIsDirector bool) (bool, error) {
	if actorIsDirector {
		return true, nil
	}

	if objective.IsExecutedBy(actorID) {
		return true, nil
	}

	if objective.ProjectID == nil {
		return false, nil
	}

	project, err := s.projectRepo.GetByID(ctx, *objective.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return false, nil
		}
		return false, err
	}

	return project.DirectorID == actorID, nil
}

// UpdateStatusAs - вариант UpdateStatus для аутентифицированного вызывающего
func (s *objectiveService) UpdateStatusAs(ctx context.Context, caller domain.Caller, objectiveID uuid.UUID, status domain.Status) (bool, error) {
	return s.UpdateStatus(ctx, objectiveID, status, caller.EmployeeID, caller.IsDirector())
}

func (s *objectiveService) IsMember(ctx context.Context, objectiveID, employeeID uuid.UUID) bool {
	return s.membership.IsEmployeeMemberOfObjectivesProject(ctx, objectiveID, employeeID)
}

func (s *objectiveService) ListForExecutor(ctx context.Context, employeeID uuid.UUID) ([]domain.Objective, error) {
	return s.objectiveRepo.ListByExecutor(ctx, employeeID)
}

func (s *objectiveService) ListForProjectDirector(ctx context.Context, directorID uuid.UUID) ([]domain.Objective, error) {
	return s.objectiveRepo.ListByProjectDirector(ctx, directorID)
}
