package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/project-manager-api/internal/database"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
	"github.com/project-manager-api/internal/handler"
	"github.com/project-manager-api/internal/middleware"
	"github.com/project-manager-api/internal/repository"
	"github.com/project-manager-api/internal/service"
	"github.com/project-manager-api/internal/storage"
)

const testSecret = "handler-test-secret"

type testServer struct {
	server        *httptest.Server
	uploadDir     string
	empRepo       repository.EmployeeRepository
	projectRepo   repository.ProjectRepository
	objectiveRepo repository.ObjectiveRepository
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := database.OpenSQLite("file::memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })

	empRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	objectiveRepo := repository.NewObjectiveRepository(db)

	uploadDir := t.TempDir()
	membership := service.NewMembershipResolver(projectRepo, objectiveRepo, logger)
	empService := service.NewEmployeeService(empRepo)
	projectService := service.NewProjectService(projectRepo, empRepo, objectiveRepo, storage.NewFileSystemStore(uploadDir), logger)
	objectiveService := service.NewObjectiveService(objectiveRepo, empRepo, projectRepo, membership, logger)

	router := handler.NewRouter(
		handler.NewEmployeeHandler(empService, logger),
		handler.NewProjectHandler(projectService, logger),
		handler.NewObjectiveHandler(objectiveService, logger),
		middleware.AuthConfig{Secret: testSecret, Resolver: empService, Logger: logger},
		logger,
	)

	ts := &testServer{
		server:        httptest.NewServer(router.Setup()),
		uploadDir:     uploadDir,
		empRepo:       empRepo,
		projectRepo:   projectRepo,
		objectiveRepo: objectiveRepo,
	}
	t.Cleanup(ts.server.Close)
	return ts
}

// actor - сотрудник со связанной учётной записью и токеном
type actor struct {
	id    uuid.UUID
	token string
}

func signToken(t *testing.T, sub string, roles ...string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func (ts *testServer) newActor(t *testing.T, name string, roles ...string) actor {
	t.Helper()
	userID := "user-" + name
	emp := &domain.Employee{FirstName: name, LastName: "Test", Mail: name + "@example.com", UserID: &userID}
	if err := ts.empRepo.Create(context.Background(), emp); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}
	return actor{id: emp.ID, token: signToken(t, userID, roles...)}
}

func (ts *testServer) newProject(t *testing.T, directorID uuid.UUID, members ...uuid.UUID) uuid.UUID {
	t.Helper()
	project := &domain.Project{
		Name:         "Project",
		CustomerName: "Customer",
		ExecutorName: "Executor",
		DirectorID:   directorID,
		StartTime:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Priority:     1,
	}
	if err := ts.projectRepo.Create(context.Background(), project, members); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project.ID
}

func (ts *testServer) newObjective(t *testing.T, projectID, executorID *uuid.UUID) uuid.UUID {
	t.Helper()
	objective := &domain.Objective{Name: "Objective", ProjectID: projectID, ExecutorID: executorID}
	if err := ts.objectiveRepo.Create(context.Background(), objective); err != nil {
		t.Fatalf("failed to create objective: %v", err)
	}
	return objective.ID
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected %d, got %d", expected, resp.StatusCode)
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.do(t, http.MethodGet, "/health", "", nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestAPI_RequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/employees", "", nil)
	expectStatus(t, resp, http.StatusUnauthorized)
}

func TestAPI_RoleGate(t *testing.T) {
	ts := setupTestServer(t)
	worker := ts.newActor(t, "worker", "employee")
	manager := ts.newActor(t, "manager", "project_manager")

	expectStatus(t, ts.do(t, http.MethodGet, "/api/employees", worker.token, nil), http.StatusForbidden)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/employees", manager.token, nil), http.StatusOK)
	expectStatus(t, ts.do(t, http.MethodPost, "/api/employees", manager.token, map[string]any{}), http.StatusForbidden)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/projects", manager.token, nil), http.StatusForbidden)
}

func TestEmployees_CRUD(t *testing.T) {
	ts := setupTestServer(t)
	boss := ts.newActor(t, "boss", "director")

	resp := ts.do(t, http.MethodPost, "/api/employees", boss.token, map[string]any{
		"first_name": "Ivan",
		"last_name":  "Petrov",
		"mail":       "ivan@example.com",
	})
	expectStatus(t, resp, http.StatusCreated)
	created := decode[dto.EmployeeResponse](t, resp)
	if created.FirstName != "Ivan" {
		t.Errorf("expected first name 'Ivan', got '%s'", created.FirstName)
	}

	resp = ts.do(t, http.MethodPut, "/api/employees/"+created.ID.String(), boss.token, map[string]any{
		"first_name": "Ivan",
		"last_name":  "Sidorov",
		"mail":       "ivan@example.com",
	})
	expectStatus(t, resp, http.StatusOK)
	if updated := decode[dto.EmployeeResponse](t, resp); updated.LastName != "Sidorov" {
		t.Errorf("expected last name 'Sidorov', got '%s'", updated.LastName)
	}

	expectStatus(t, ts.do(t, http.MethodDelete, "/api/employees/"+created.ID.String(), boss.token, nil), http.StatusNoContent)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/employees/"+created.ID.String(), boss.token, nil), http.StatusNotFound)
}

func TestEmployees_ValidationAndBadID(t *testing.T) {
	ts := setupTestServer(t)
	boss := ts.newActor(t, "boss", "director")

	resp := ts.do(t, http.MethodPost, "/api/employees", boss.token, map[string]any{
		"first_name": "Ivan",
		"last_name":  "Petrov",
		"mail":       "not-an-email",
	})
	expectStatus(t, resp, http.StatusBadRequest)

	expectStatus(t, ts.do(t, http.MethodGet, "/api/employees/42", boss.token, nil), http.StatusBadRequest)
}

func TestEmployees_DeleteProjectDirector(t *testing.T) {
	ts := setupTestServer(t)
	boss := ts.newActor(t, "boss", "director")
	manager := ts.newActor(t, "manager", "project_manager")
	ts.newProject(t, manager.id)

	resp := ts.do(t, http.MethodDelete, "/api/employees/"+manager.id.String(), boss.token, nil)
	expectStatus(t, resp, http.StatusConflict)
}

func TestProjects_CreateWithRoster(t *testing.T) {
	ts := setupTestServer(t)
	boss := ts.newActor(t, "boss", "director")
	manager := ts.newActor(t, "manager", "project_manager")
	worker := ts.newActor(t, "worker", "employee")

	resp := ts.do(t, http.MethodPost, "/api/projects", boss.token, map[string]any{
		"name":          "Apollo",
		"customer_name": "NASA",
		"executor_name": "Contractor",
		"start_time":    "2024-01-01T00:00:00Z",
		"end_time":      "2024-12-31T00:00:00Z",
		"priority":      3,
		"director_id":   manager.id,
		"employee_ids":  []uuid.UUID{worker.id, worker.id},
	})
	expectStatus(t, resp, http.StatusCreated)
	project := decode[dto.ProjectResponse](t, resp)
	if len(project.EmployeeIDs) != 1 || project.EmployeeIDs[0] != worker.id {
		t.Errorf("expected roster [%s], got %v", worker.id, project.EmployeeIDs)
	}

	resp = ts.do(t, http.MethodGet, "/api/projects?name=apol&priorities=3", boss.token, nil)
	expectStatus(t, resp, http.StatusOK)
	if list := decode[[]dto.ProjectResponse](t, resp); len(list) != 1 {
		t.Errorf("expected 1 project, got %d", len(list))
	}

	resp = ts.do(t, http.MethodGet, "/api/projects?startTimeFrom=2025-01-01", boss.token, nil)
	expectStatus(t, resp, http.StatusOK)
	if list := decode[[]dto.ProjectResponse](t, resp); len(list) != 0 {
		t.Errorf("expected 0 projects, got %d", len(list))
	}

	expectStatus(t, ts.do(t, http.MethodGet, "/api/projects?startTimeFrom=yesterday", boss.token, nil), http.StatusBadRequest)
}

func TestProjects_CreateUnknownDirector(t *testing.T) {
	ts := setupTestServer(t)
	boss := ts.newActor(t, "boss", "director")

	resp := ts.do(t, http.MethodPost, "/api/projects", boss.token, map[string]any{
		"name":          "Apollo",
		"customer_name": "NASA",
		"executor_name": "Contractor",
		"start_time":    "2024-01-01T00:00:00Z",
		"end_time":      "2024-12-31T00:00:00Z",
		"director_id":   uuid.New(),
	})
	expectStatus(t, resp, http.StatusNotFound)
}

func TestProjects_UpdateReplacesRoster(t *testing.T) {
	ts := setupTestServer(t)
	boss := ts.newActor(t, "boss", "director")
	manager := ts.newActor(t, "manager", "project_manager")
	alice := ts.newActor(t, "alice", "employee")
	bob := ts.newActor(t, "bob", "employee")
	projectID := ts.newProject(t, manager.id, alice.id)

	resp := ts.do(t, http.MethodPut, "/api/projects/"+projectID.String(), boss.token, map[string]any{
		"name":          "Renamed",
		"customer_name": "Customer",
		"executor_name": "Executor",
		"start_time":    "2024-01-01T00:00:00Z",
		"end_time":      "2024-06-01T00:00:00Z",
		"director_id":   manager.id,
		"employee_ids":  []uuid.UUID{bob.id},
	})
	expectStatus(t, resp, http.StatusOK)
	project := decode[dto.ProjectResponse](t, resp)
	if project.Name != "Renamed" {
		t.Errorf("expected name 'Renamed', got '%s'", project.Name)
	}
	if len(project.EmployeeIDs) != 1 || project.EmployeeIDs[0] != bob.id {
		t.Errorf("expected roster [%s], got %v", bob.id, project.EmployeeIDs)
	}
}

func TestProjects_MembershipIsIdempotent(t *testing.T) {
	ts := setupTestServer(t)
	boss := ts.newActor(t, "boss", "director")
	manager := ts.newActor(t, "manager", "project_manager")
	worker := ts.newActor(t, "worker", "employee")
	projectID := ts.newProject(t, manager.id)

	path := "/api/projects/" + projectID.String() + "/employees/" + worker.id.String()

	// удаление отсутствующего участника ничего не меняет
	expectStatus(t, ts.do(t, http.MethodDelete, path, manager.token, nil), http.StatusNoContent)

	expectStatus(t, ts.do(t, http.MethodPost, path, manager.token, nil), http.StatusNoContent)
	expectStatus(t, ts.do(t, http.MethodPost, path, manager.token, nil), http.StatusNoContent)

	resp := ts.do(t, http.MethodGet, "/api/projects/"+projectID.String(), boss.token, nil)
	expectStatus(t, resp, http.StatusOK)
	if project := decode[dto.ProjectResponse](t, resp); len(project.EmployeeIDs) != 1 {
		t.Errorf("expected 1 member, got %d", len(project.EmployeeIDs))
	}

	resp = ts.do(t, http.MethodGet, "/api/projects/assigned", worker.token, nil)
	expectStatus(t, resp, http.StatusOK)
	if list := decode[[]dto.ProjectResponse](t, resp); len(list) != 1 || list[0].ID != projectID {
		t.Errorf("expected assigned project %s, got %v", projectID, list)
	}

	expectStatus(t, ts.do(t, http.MethodDelete, path, manager.token, nil), http.StatusNoContent)
	expectStatus(t, ts.do(t, http.MethodDelete, path, manager.token, nil), http.StatusNoContent)
}

func TestProjects_ForeignManagerIsForbidden(t *testing.T) {
	ts := setupTestServer(t)
	owner := ts.newActor(t, "owner", "project_manager")
	stranger := ts.newActor(t, "stranger", "project_manager")
	worker := ts.newActor(t, "worker", "employee")
	projectID := ts.newProject(t, owner.id)

	path := "/api/projects/" + projectID.String() + "/employees/" + worker.id.String()
	expectStatus(t, ts.do(t, http.MethodPost, path, stranger.token, nil), http.StatusForbidden)

	missing := "/api/projects/" + uuid.NewString() + "/employees/" + worker.id.String()
	expectStatus(t, ts.do(t, http.MethodPost, missing, stranger.token, nil), http.StatusNotFound)
}

func TestProjects_AttachAndDetachObjective(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.newActor(t, "manager", "project_manager")
	projectID := ts.newProject(t, manager.id)
	otherID := ts.newProject(t, manager.id)
	objectiveID := ts.newObjective(t, nil, nil)

	attach := "/api/projects/" + projectID.String() + "/objectives/" + objectiveID.String()
	expectStatus(t, ts.do(t, http.MethodPost, attach, manager.token, nil), http.StatusNoContent)

	// отвязка от чужого проекта не трогает задачу
	detachOther := "/api/projects/" + otherID.String() + "/objectives/" + objectiveID.String()
	expectStatus(t, ts.do(t, http.MethodDelete, detachOther, manager.token, nil), http.StatusNoContent)

	objective, err := ts.objectiveRepo.GetByID(context.Background(), objectiveID)
	if err != nil {
		t.Fatalf("failed to load objective: %v", err)
	}
	if objective.ProjectID == nil || *objective.ProjectID != projectID {
		t.Errorf("expected objective to stay in project %s", projectID)
	}

	expectStatus(t, ts.do(t, http.MethodDelete, attach, manager.token, nil), http.StatusNoContent)
	objective, _ = ts.objectiveRepo.GetByID(context.Background(), objectiveID)
	if objective.ProjectID != nil {
		t.Errorf("expected objective to be detached, got project %s", objective.ProjectID)
	}
}

func TestProjects_UploadDocuments(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.newActor(t, "manager", "project_manager")
	projectID := ts.newProject(t, manager.id)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, _ := form.CreateFormFile("files", "plan.txt")
	part.Write([]byte("milestones"))
	form.CreateFormFile("files", "empty.txt")
	form.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.server.URL+"/api/projects/"+projectID.String()+"/documents", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+manager.token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	expectStatus(t, resp, http.StatusOK)
	result := decode[dto.UploadResponse](t, resp)
	if len(result.Files) != 1 || result.Files[0] != "plan.txt" {
		t.Errorf("expected [plan.txt], got %v", result.Files)
	}

	data, err := os.ReadFile(filepath.Join(ts.uploadDir, projectID.String(), "plan.txt"))
	if err != nil {
		t.Fatalf("document not stored: %v", err)
	}
	if string(data) != "milestones" {
		t.Errorf("expected 'milestones', got '%s'", data)
	}
}

func TestProjects_UploadWithoutFiles(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.newActor(t, "manager", "project_manager")
	projectID := ts.newProject(t, manager.id)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("note", "nothing here")
	form.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.server.URL+"/api/projects/"+projectID.String()+"/documents", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+manager.token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	expectStatus(t, resp, http.StatusBadRequest)
}

func TestProjects_ListMine(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.newActor(t, "manager", "project_manager")
	other := ts.newActor(t, "other", "project_manager")
	ts.newProject(t, manager.id)
	ts.newProject(t, other.id)

	resp := ts.do(t, http.MethodGet, "/api/projects/my", manager.token, nil)
	expectStatus(t, resp, http.StatusOK)
	list := decode[[]dto.ProjectResponse](t, resp)
	if len(list) != 1 || list[0].DirectorID != manager.id {
		t.Errorf("expected one project directed by %s, got %v", manager.id, list)
	}

	// учётная запись без сотрудника
	ghost := signToken(t, "ghost", "project_manager")
	expectStatus(t, ts.do(t, http.MethodGet, "/api/projects/my", ghost, nil), http.StatusForbidden)
}

func TestObjectives_CreateSetsAuthor(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.newActor(t, "manager", "project_manager")
	projectID := ts.newProject(t, manager.id)

	resp := ts.do(t, http.MethodPost, "/api/objectives", manager.token, map[string]any{
		"name":       "Write report",
		"status":     "InProgress",
		"priority":   2,
		"project_id": projectID,
	})
	expectStatus(t, resp, http.StatusCreated)
	objective := decode[dto.ObjectiveResponse](t, resp)
	if objective.AuthorID == nil || *objective.AuthorID != manager.id {
		t.Errorf("expected author %s, got %v", manager.id, objective.AuthorID)
	}
	if objective.Status != domain.StatusInProgress {
		t.Errorf("expected status InProgress, got %s", objective.Status)
	}

	resp = ts.do(t, http.MethodGet, "/api/objectives?statuses=InProgress&sortBy=name", manager.token, nil)
	expectStatus(t, resp, http.StatusOK)
	if list := decode[[]dto.ObjectiveResponse](t, resp); len(list) != 1 {
		t.Errorf("expected 1 objective, got %d", len(list))
	}

	expectStatus(t, ts.do(t, http.MethodGet, "/api/objectives?statuses=Blocked", manager.token, nil), http.StatusBadRequest)
}

func TestObjectives_CreateWithoutEmployee(t *testing.T) {
	ts := setupTestServer(t)
	ghost := signToken(t, "ghost", "director")

	resp := ts.do(t, http.MethodPost, "/api/objectives", ghost, map[string]any{"name": "Orphan"})
	expectStatus(t, resp, http.StatusForbidden)
}

func TestObjectives_UpdateStatus(t *testing.T) {
	ts := setupTestServer(t)
	boss := ts.newActor(t, "boss", "director")
	manager := ts.newActor(t, "manager", "project_manager")
	executor := ts.newActor(t, "executor", "employee")
	outsider := ts.newActor(t, "outsider", "employee")
	projectID := ts.newProject(t, manager.id, executor.id)
	objectiveID := ts.newObjective(t, &projectID, &executor.id)

	path := "/api/objectives/" + objectiveID.String() + "/status"

	tests := []struct {
		name     string
		token    string
		status   any
		expected int
		want     domain.Status
	}{
		{"executor", executor.token, "InProgress", http.StatusNoContent, domain.StatusInProgress},
		{"outsider", outsider.token, "Done", http.StatusForbidden, domain.StatusInProgress},
		{"project director", manager.token, "Done", http.StatusNoContent, domain.StatusDone},
		{"director", boss.token, 0, http.StatusNoContent, domain.StatusToDo},
		{"invalid status", boss.token, "Blocked", http.StatusBadRequest, domain.StatusToDo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.do(t, http.MethodPatch, path, tt.token, map[string]any{"status": tt.status})
			expectStatus(t, resp, tt.expected)

			objective, err := ts.objectiveRepo.GetByID(context.Background(), objectiveID)
			if err != nil {
				t.Fatalf("failed to load objective: %v", err)
			}
			if objective.Status != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, objective.Status)
			}
		})
	}

	missing := "/api/objectives/" + uuid.NewString() + "/status"
	expectStatus(t, ts.do(t, http.MethodPatch, missing, boss.token, map[string]any{"status": "Done"}), http.StatusNotFound)
}

func TestObjectives_AssignExecutorRequiresMembership(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.newActor(t, "manager", "project_manager")
	worker := ts.newActor(t, "worker", "employee")
	projectID := ts.newProject(t, manager.id)
	objectiveID := ts.newObjective(t, &projectID, nil)

	assign := "/api/objectives/" + objectiveID.String() + "/executor/" + worker.id.String()
	membership := "/api/objectives/" + objectiveID.String() + "/membership/" + worker.id.String()

	expectStatus(t, ts.do(t, http.MethodPost, assign, manager.token, nil), http.StatusBadRequest)

	resp := ts.do(t, http.MethodGet, membership, manager.token, nil)
	expectStatus(t, resp, http.StatusOK)
	if decode[dto.MembershipResponse](t, resp).IsMember {
		t.Errorf("expected worker not to be a member")
	}

	ts.do(t, http.MethodPost, "/api/projects/"+projectID.String()+"/employees/"+worker.id.String(), manager.token, nil)

	resp = ts.do(t, http.MethodGet, membership, manager.token, nil)
	if !decode[dto.MembershipResponse](t, resp).IsMember {
		t.Errorf("expected worker to be a member")
	}

	expectStatus(t, ts.do(t, http.MethodPost, assign, manager.token, nil), http.StatusNoContent)

	resp = ts.do(t, http.MethodGet, "/api/objectives/my", worker.token, nil)
	expectStatus(t, resp, http.StatusOK)
	if list := decode[[]dto.ObjectiveResponse](t, resp); len(list) != 1 || list[0].ID != objectiveID {
		t.Errorf("expected objective %s in executor list, got %v", objectiveID, list)
	}

	resp = ts.do(t, http.MethodGet, "/api/objectives/managed", manager.token, nil)
	expectStatus(t, resp, http.StatusOK)
	if list := decode[[]dto.ObjectiveResponse](t, resp); len(list) != 1 {
		t.Errorf("expected 1 managed objective, got %d", len(list))
	}
}

func TestObjectives_UpdateExecutorSkipsMembership(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.newActor(t, "manager", "project_manager")
	worker := ts.newActor(t, "worker", "employee")
	projectID := ts.newProject(t, manager.id)
	objectiveID := ts.newObjective(t, &projectID, nil)

	path := "/api/objectives/" + objectiveID.String() + "/executor"

	expectStatus(t, ts.do(t, http.MethodPut, path, manager.token, map[string]any{"executor_id": worker.id}), http.StatusNoContent)
	expectStatus(t, ts.do(t, http.MethodPut, path, manager.token, map[string]any{"executor_id": uuid.New()}), http.StatusNotFound)

	objective, _ := ts.objectiveRepo.GetByID(context.Background(), objectiveID)
	if !objective.IsExecutedBy(worker.id) {
		t.Errorf("expected executor %s", worker.id)
	}
}

func TestObjectives_EmployeeCanReadButNotWrite(t *testing.T) {
	ts := setupTestServer(t)
	worker := ts.newActor(t, "worker", "employee")
	objectiveID := ts.newObjective(t, nil, nil)

	expectStatus(t, ts.do(t, http.MethodGet, "/api/objectives/"+objectiveID.String(), worker.token, nil), http.StatusOK)
	expectStatus(t, ts.do(t, http.MethodDelete, "/api/objectives/"+objectiveID.String(), worker.token, nil), http.StatusForbidden)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/objectives", worker.token, nil), http.StatusForbidden)
}
