package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/storage"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockEmployeeRepo struct {
	mock.Mock
}

func (m *mockEmployeeRepo) Create(ctx context.Context, emp *domain.Employee) error {
	return m.Called(ctx, emp).Error(0)
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	emp, _ := args.Get(0).(*domain.Employee)
	return emp, args.Error(1)
}

func (m *mockEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	employees, _ := args.Get(0).([]domain.Employee)
	return employees, args.Error(1)
}

func (m *mockEmployeeRepo) Update(ctx context.Context, emp *domain.Employee) error {
	return m.Called(ctx, emp).Error(0)
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEmployeeRepo) ResolveEmployeeIDForIdentity(ctx context.Context, userID string) (uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Create(ctx context.Context, project *domain.Project, memberIDs []uuid.UUID) error {
	return m.Called(ctx, project, memberIDs).Error(0)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*domain.Project)
	return project, args.Error(1)
}

func (m *mockProjectRepo) List(ctx context.Context, filter domain.ProjectFilter, sort domain.SortOptions) ([]domain.Project, error) {
	args := m.Called(ctx, filter, sort)
	projects, _ := args.Get(0).([]domain.Project)
	return projects, args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, project *domain.Project, memberIDs []uuid.UUID) error {
	return m.Called(ctx, project, memberIDs).Error(0)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProjectRepo) AddMember(ctx context.Context, projectID, employeeID uuid.UUID) error {
	return m.Called(ctx, projectID, employeeID).Error(0)
}

func (m *mockProjectRepo) RemoveMember(ctx context.Context, projectID, employeeID uuid.UUID) error {
	return m.Called(ctx, projectID, employeeID).Error(0)
}

func (m *mockProjectRepo) IsMember(ctx context.Context, employeeID, projectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, employeeID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *mockProjectRepo) MemberProjectIDs(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, employeeID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockProjectRepo) ListByDirector(ctx context.Context, directorID uuid.UUID) ([]domain.Project, error) {
	args := m.Called(ctx, directorID)
	projects, _ := args.Get(0).([]domain.Project)
	return projects, args.Error(1)
}

func (m *mockProjectRepo) ListByMember(ctx context.Context, employeeID uuid.UUID) ([]domain.Project, error) {
	args := m.Called(ctx, employeeID)
	projects, _ := args.Get(0).([]domain.Project)
	return projects, args.Error(1)
}

type mockObjectiveRepo struct {
	mock.Mock
}

func (m *mockObjectiveRepo) Create(ctx context.Context, objective *domain.Objective) error {
	return m.Called(ctx, objective).Error(0)
}

func (m *mockObjectiveRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Objective, error) {
	args := m.Called(ctx, id)
	objective, _ := args.Get(0).(*domain.Objective)
	return objective, args.Error(1)
}

func (m *mockObjectiveRepo) GetByIDForExecutor(ctx context.Context, objectiveID, executorID uuid.UUID) (*domain.Objective, error) {
	args := m.Called(ctx, objectiveID, executorID)
	objective, _ := args.Get(0).(*domain.Objective)
	return objective, args.Error(1)
}

func (m *mockObjectiveRepo) List(ctx context.Context, filter domain.ObjectiveFilter, sort domain.SortOptions) ([]domain.Objective, error) {
	args := m.Called(ctx, filter, sort)
	objectives, _ := args.Get(0).([]domain.Objective)
	return objectives, args.Error(1)
}

func (m *mockObjectiveRepo) Update(ctx context.Context, objective *domain.Objective) error {
	return m.Called(ctx, objective).Error(0)
}

func (m *mockObjectiveRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockObjectiveRepo) UpdateExecutor(ctx context.Context, id uuid.UUID, executorID uuid.UUID) error {
	return m.Called(ctx, id, executorID).Error(0)
}

func (m *mockObjectiveRepo) SetProject(ctx context.Context, id uuid.UUID, projectID *uuid.UUID) error {
	return m.Called(ctx, id, projectID).Error(0)
}

func (m *mockObjectiveRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockObjectiveRepo) ListByExecutor(ctx context.Context, employeeID uuid.UUID) ([]domain.Objective, error) {
	args := m.Called(ctx, employeeID)
	objectives, _ := args.Get(0).([]domain.Objective)
	return objectives, args.Error(1)
}

func (m *mockObjectiveRepo) ListByProjectDirector(ctx context.Context, directorID uuid.UUID) ([]domain.Objective, error) {
	args := m.Called(ctx, directorID)
	objectives, _ := args.Get(0).([]domain.Objective)
	return objectives, args.Error(1)
}

type mockDocumentStore struct {
	mock.Mock
}

func (m *mockDocumentStore) Save(ctx context.Context, projectID uuid.UUID, upload storage.Upload) (string, error) {
	args := m.Called(ctx, projectID, upload.Name)
	return args.String(0), args.Error(1)
}
