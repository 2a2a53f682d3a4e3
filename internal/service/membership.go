package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/repository"
)

// MembershipResolver отвечает на вопросы о составе проектов.
// Ошибки хранилища и отсутствующие сущности трактуются как "не участник".
type MembershipResolver interface {
	IsEmployeeMemberOfProject(ctx context.Context, employeeID, projectID uuid.UUID) bool
	IsEmployeeMemberOfObjectivesProject(ctx context.Context, objectiveID, employeeID uuid.UUID) bool
	ProjectIDsOfEmployee(ctx context.Context, employeeID uuid.UUID) map[uuid.UUID]struct{}
}

type membershipResolver struct {
	projectRepo   repository.ProjectRepository
	objectiveRepo repository.ObjectiveRepository
	logger        *slog.Logger
}

// NewMembershipResolver создаёт новый экземпляр сервиса
func NewMembershipResolver(
	projectRepo repository.ProjectRepository,
	objectiveRepo repository.ObjectiveRepository,
	logger *slog.Logger,
) MembershipResolver {
	return &membershipResolver{
		projectRepo:   projectRepo,
		objectiveRepo: objectiveRepo,
		logger:        logger,
	}
}

func (m *membershipResolver) IsEmployeeMemberOfProject(ctx context.Context, employeeID, projectID uuid.UUID) bool {
	ok, err := m.projectRepo.IsMember(ctx, employeeID, projectID)
	if err != nil {
		m.logger.Warn("membership lookup failed",
			slog.String("employee_id", employeeID.String()),
			slog.String("project_id", projectID.String()),
			slog.Any("error", err),
		)
		return false
	}
	return ok
}

func (m *membershipResolver) IsEmployeeMemberOfObjectivesProject(ctx context.Context, objectiveID, employeeID uuid.UUID) bool {
	objective, err := m.objectiveRepo.GetByID(ctx, objectiveID)
	if err != nil {
		if !domain.IsNotFound(err) {
			m.logger.Warn("objective lookup failed",
				slog.String("objective_id", objectiveID.String()),
				slog.Any("error", err),
			)
		}
		return false
	}
	if objective.ProjectID == nil {
		return false
	}
	return m.IsEmployeeMemberOfProject(ctx, employeeID, *objective.ProjectID)
}

func (m *membershipResolver) ProjectIDsOfEmployee(ctx context.Context, employeeID uuid.UUID) map[uuid.UUID]struct{} {
	result := make(map[uuid.UUID]struct{})

	ids, err := m.projectRepo.MemberProjectIDs(ctx, employeeID)
	if err != nil {
		m.logger.Warn("member projects lookup failed",
			slog.String("employee_id", employeeID.String()),
			slog.Any("error", err),
		)
		return result
	}

	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result
}
