package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
	"github.com/project-manager-api/internal/service"
)

type EmployeeHandler struct {
	base
	empService service.EmployeeService
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		base:       newBase(logger),
		empService: empService,
	}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.empService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, toEmployeeResponse(&employees[i]))
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:                   emp.ID,
		FirstName:            emp.FirstName,
		LastName:             emp.LastName,
		Patronymic:           emp.Patronymic,
		Mail:                 emp.Mail,
		ProjectIDs:           make([]uuid.UUID, 0, len(emp.Memberships)),
		AuthoredObjectiveIDs: make([]uuid.UUID, 0, len(emp.AuthoredObjectives)),
		AssignedObjectiveIDs: make([]uuid.UUID, 0, len(emp.AssignedObjectives)),
	}
	for _, m := range emp.Memberships {
		resp.ProjectIDs = append(resp.ProjectIDs, m.ProjectID)
	}
	for _, o := range emp.AuthoredObjectives {
		resp.AuthoredObjectiveIDs = append(resp.AuthoredObjectiveIDs, o.ID)
	}
	for _, o := range emp.AssignedObjectives {
		resp.AssignedObjectiveIDs = append(resp.AssignedObjectiveIDs, o.ID)
	}
	return resp
}
