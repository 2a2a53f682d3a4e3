package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
	"github.com/project-manager-api/internal/repository"
	"github.com/project-manager-api/internal/storage"
)

// ProjectService определяет интерфейс бизнес-логики для проектов и их состава
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, filter domain.ProjectFilter, sort domain.SortOptions) ([]domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectRequest) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, caller domain.Caller, projectID, employeeID uuid.UUID) error
	RemoveMember(ctx context.Context, caller domain.Caller, projectID, employeeID uuid.UUID) error
	AttachObjective(ctx context.Context, caller domain.Caller, projectID, objectiveID uuid.UUID) error
	DetachObjective(ctx context.Context, caller domain.Caller, projectID, objectiveID uuid.UUID) error
	UploadDocuments(ctx context.Context, caller domain.Caller, projectID uuid.UUID, uploads []storage.Upload) ([]string, error)

	ListManaged(ctx context.Context, directorID uuid.UUID) ([]domain.Project, error)
	ListAssigned(ctx context.Context, employeeID uuid.UUID) ([]domain.Project, error)
}

type projectService struct {
	projectRepo   repository.ProjectRepository
	employeeRepo  repository.EmployeeRepository
	objectiveRepo repository.ObjectiveRepository
	documents     storage.DocumentStore
	logger        *slog.Logger
}

// NewProjectService создаёт новый экземпляр сервиса
func NewProjectService(
	projectRepo repository.ProjectRepository,
	employeeRepo repository.EmployeeRepository,
	objectiveRepo repository.ObjectiveRepository,
	documents storage.DocumentStore,
	logger *slog.Logger,
) ProjectService {
	return &projectService{
		projectRepo:   projectRepo,
		employeeRepo:  employeeRepo,
		objectiveRepo: objectiveRepo,
		documents:     documents,
		logger:        logger,
	}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	if err := s.ensureEmployees(ctx, req.DirectorID, req.EmployeeIDs); err != nil {
		return nil, err
	}

	project := &domain.Project{}
	applyProjectRequest(project, req)

	if err := s.projectRepo.Create(ctx, project, req.EmployeeIDs); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, project.ID)
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, filter domain.ProjectFilter, sort domain.SortOptions) ([]domain.Project, error) {
	return s.projectRepo.List(ctx, filter, sort)
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmployees(ctx, req.DirectorID, req.EmployeeIDs); err != nil {
		return nil, err
	}

	applyProjectRequest(project, req)

	if err := s.projectRepo.Update(ctx, project, req.EmployeeIDs); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, id)
}

func applyProjectRequest(project *domain.Project, req *dto.CreateProjectRequest) {
	project.Name = strings.TrimSpace(req.Name)
	project.CustomerName = strings.TrimSpace(req.CustomerName)
	project.ExecutorName = strings.TrimSpace(req.ExecutorName)
	project.StartTime = req.StartTime.UTC()
	project.EndTime = req.EndTime.UTC()
	project.Priority = req.Priority
	project.DirectorID = req.DirectorID
}

// ensureEmployees проверяет существование руководителя и всех участников
func (s *projectService) ensureEmployees(ctx context.Context, directorID uuid.UUID, memberIDs []uuid.UUID) error {
	if _, err := s.employeeRepo.GetByID(ctx, directorID); err != nil {
		return fmt.Errorf("director %s: %w", directorID, err)
	}
	for _, id := range memberIDs {
		if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
			return fmt.Errorf("member %s: %w", id, err)
		}
	}
	return nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.projectRepo.Delete(ctx, id)
}

// authorize разрешает изменение проекта директору и руководителю этого проекта
func authorize(caller domain.Caller, project *domain.Project) error {
	if caller.IsDirector() {
		return nil
	}
	if caller.HasEmployee() && project.DirectorID == caller.EmployeeID {
		return nil
	}
	return domain.ErrForbidden
}

func (s *projectService) AddMember(ctx context.Context, caller domain.Caller, projectID, employeeID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	if err := authorize(caller, project); err != nil {
		return err
	}

	return s.projectRepo.AddMember(ctx, projectID, employeeID)
}

func (s *projectService) RemoveMember(ctx context.Context, caller domain.Caller, projectID, employeeID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	if err := authorize(caller, project); err != nil {
		return err
	}

	return s.projectRepo.RemoveMember(ctx, projectID, employeeID)
}

func (s *projectService) AttachObjective(ctx context.Context, caller domain.Caller, projectID, objectiveID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if _, err := s.objectiveRepo.GetByID(ctx, objectiveID); err != nil {
		return err
	}
	if err := authorize(caller, project); err != nil {
		return err
	}

	return s.objectiveRepo.SetProject(ctx, objectiveID, &projectID)
}

// DetachObjective отвязывает задачу от проекта. Задача другого проекта не меняется.
func (s *projectService) DetachObjective(ctx context.Context, caller domain.Caller, projectID, objectiveID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	objective, err := s.objectiveRepo.GetByID(ctx, objectiveID)
	if err != nil {
		return err
	}
	if err := authorize(caller, project); err != nil {
		return err
	}

	if objective.ProjectID == nil || *objective.ProjectID != projectID {
		return nil
	}
	return s.objectiveRepo.SetProject(ctx, objectiveID, nil)
}

// UploadDocuments сохраняет документы проекта; пустые файлы пропускаются
func (s *projectService) UploadDocuments(ctx context.Context, caller domain.Caller, projectID uuid.UUID, uploads []storage.Upload) ([]string, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, project); err != nil {
		return nil, err
	}

	saved := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		if upload.Size <= 0 {
			continue
		}
		name, err := s.documents.Save(ctx, projectID, upload)
		if err != nil {
			return saved, err
		}
		saved = append(saved, name)
	}

	s.logger.Info("project documents uploaded",
		slog.String("project_id", projectID.String()),
		slog.Int("count", len(saved)),
	)
	return saved, nil
}

func (s *projectService) ListManaged(ctx context.Context, directorID uuid.UUID) ([]domain.Project, error) {
	return s.projectRepo.ListByDirector(ctx, directorID)
}

func (s *projectService) ListAssigned(ctx context.Context, employeeID uuid.UUID) ([]domain.Project, error) {
	return s.projectRepo.ListByMember(ctx, employeeID)
}
