package handler

import (
	"log/slog"
	"net/http"

	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux              *http.ServeMux
	logger           *slog.Logger
	auth             middleware.AuthConfig
	employeeHandler  *EmployeeHandler
	projectHandler   *ProjectHandler
	objectiveHandler *ObjectiveHandler
}

// NewRouter создаёт новый роутер
func NewRouter(
	employeeHandler *EmployeeHandler,
	projectHandler *ProjectHandler,
	objectiveHandler *ObjectiveHandler,
	auth middleware.AuthConfig,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		logger:           logger,
		auth:             auth,
		employeeHandler:  employeeHandler,
		projectHandler:   projectHandler,
		objectiveHandler: objectiveHandler,
	}
}

var (
	directorOnly    = []domain.Role{domain.RoleDirector}
	managerOrAbove  = []domain.Role{domain.RoleDirector, domain.RoleProjectManager}
	employeeOrAbove = []domain.Role{domain.RoleDirector, domain.RoleProjectManager, domain.RoleEmployee}
)

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	api := http.NewServeMux()

	// Сотрудники
	r.handle(api, "GET /api/employees", managerOrAbove, r.employeeHandler.List)
	r.handle(api, "GET /api/employees/{id}", managerOrAbove, r.employeeHandler.GetByID)
	r.handle(api, "POST /api/employees", directorOnly, r.employeeHandler.Create)
	r.handle(api, "PUT /api/employees/{id}", directorOnly, r.employeeHandler.Update)
	r.handle(api, "DELETE /api/employees/{id}", directorOnly, r.employeeHandler.Delete)

	// Проекты
	r.handle(api, "GET /api/projects", directorOnly, r.projectHandler.List)
	r.handle(api, "GET /api/projects/my", managerOrAbove, r.projectHandler.ListMine)
	r.handle(api, "GET /api/projects/assigned", employeeOrAbove, r.projectHandler.ListAssigned)
	r.handle(api, "GET /api/projects/{id}", directorOnly, r.projectHandler.GetByID)
	r.handle(api, "POST /api/projects", directorOnly, r.projectHandler.Create)
	r.handle(api, "PUT /api/projects/{id}", directorOnly, r.projectHandler.Update)
	r.handle(api, "DELETE /api/projects/{id}", directorOnly, r.projectHandler.Delete)
	r.handle(api, "POST /api/projects/{id}/documents", managerOrAbove, r.projectHandler.UploadDocuments)
	r.handle(api, "POST /api/projects/{id}/employees/{employeeId}", managerOrAbove, r.projectHandler.AddMember)
	r.handle(api, "DELETE /api/projects/{id}/employees/{employeeId}", managerOrAbove, r.projectHandler.RemoveMember)
	r.handle(api, "POST /api/projects/{id}/objectives/{objectiveId}", managerOrAbove, r.projectHandler.AttachObjective)
	r.handle(api, "DELETE /api/projects/{id}/objectives/{objectiveId}", managerOrAbove, r.projectHandler.DetachObjective)

	// Задачи
	r.handle(api, "GET /api/objectives", managerOrAbove, r.objectiveHandler.List)
	r.handle(api, "GET /api/objectives/my", employeeOrAbove, r.objectiveHandler.ListMine)
	r.handle(api, "GET /api/objectives/managed", managerOrAbove, r.objectiveHandler.ListManaged)
	r.handle(api, "GET /api/objectives/{id}", employeeOrAbove, r.objectiveHandler.GetByID)
	r.handle(api, "POST /api/objectives", managerOrAbove, r.objectiveHandler.Create)
	r.handle(api, "PUT /api/objectives/{id}", managerOrAbove, r.objectiveHandler.Update)
	r.handle(api, "DELETE /api/objectives/{id}", managerOrAbove, r.objectiveHandler.Delete)
	r.handle(api, "POST /api/objectives/{id}/executor/{employeeId}", managerOrAbove, r.objectiveHandler.AssignExecutor)
	r.handle(api, "PUT /api/objectives/{id}/executor", managerOrAbove, r.objectiveHandler.UpdateExecutor)
	r.handle(api, "PATCH /api/objectives/{id}/status", employeeOrAbove, r.objectiveHandler.UpdateStatus)
	r.handle(api, "GET /api/objectives/{id}/membership/{employeeId}", managerOrAbove, r.objectiveHandler.Membership)

	r.mux.Handle("/api/", middleware.Authenticate(r.auth)(api))

	// Health check
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

func (r *Router) handle(mux *http.ServeMux, pattern string, roles []domain.Role, h http.HandlerFunc) {
	mux.Handle(pattern, middleware.RequireRoles(r.logger, roles...)(h))
}
