package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
	"github.com/project-manager-api/internal/service"
)

type ObjectiveHandler struct {
	base
	objectiveService service.ObjectiveService
}

func NewObjectiveHandler(objectiveService service.ObjectiveService, logger *slog.Logger) *ObjectiveHandler {
	return &ObjectiveHandler{
		base:             newBase(logger),
		objectiveService: objectiveService,
	}
}

func (h *ObjectiveHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseObjectiveFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	sort, err := sortOptions(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	objectives, err := h.objectiveService.List(r.Context(), filter, sort)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toObjectiveResponses(objectives))
}

func parseObjectiveFilter(r *http.Request) (domain.ObjectiveFilter, error) {
	filter := domain.ObjectiveFilter{
		Name: r.URL.Query().Get("name"),
	}

	for _, raw := range queryValues(r, "statuses") {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return filter, fmt.Errorf("statuses: %w", err)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	var err error
	if filter.Priorities, err = queryInts(r, "priorities"); err != nil {
		return filter, err
	}
	if filter.AuthorID, err = queryUUID(r, "authorId"); err != nil {
		return filter, err
	}
	if filter.ExecutorID, err = queryUUID(r, "executorId"); err != nil {
		return filter, err
	}
	if filter.ProjectID, err = queryUUID(r, "projectId"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *ObjectiveHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	objective, err := h.objectiveService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toObjectiveResponse(objective))
}

// Create создаёт задачу; автором становится вызывающий сотрудник
func (h *ObjectiveHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r, true)
	if !ok {
		return
	}

	var req dto.CreateObjectiveRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		h.handleServiceError(w, domain.ErrInvalidStatus)
		return
	}

	objective, err := h.objectiveService.Create(r.Context(), caller.EmployeeID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toObjectiveResponse(objective))
}

func (h *ObjectiveHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateObjectiveRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		h.handleServiceError(w, domain.ErrInvalidStatus)
		return
	}

	objective, err := h.objectiveService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toObjectiveResponse(objective))
}

func (h *ObjectiveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.objectiveService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssignExecutor назначает исполнителя из числа участников проекта задачи
func (h *ObjectiveHandler) AssignExecutor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	employeeID, ok := h.pathID(w, r, "employeeId")
	if !ok {
		return
	}

	if err := h.objectiveService.AssignExecutor(r.Context(), id, employeeID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateExecutor меняет исполнителя без проверки участия в проекте
func (h *ObjectiveHandler) UpdateExecutor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateExecutorRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.objectiveService.UpdateExecutor(r.Context(), id, req.ExecutorID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus меняет статус; отказ движка прав отдаётся как 403
func (h *ObjectiveHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	caller, ok := h.caller(w, r, false)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.objectiveService.UpdateStatusAs(r.Context(), caller, id, *req.Status)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if !updated {
		h.respondError(w, http.StatusForbidden, "not allowed to change status of this objective", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ObjectiveHandler) Membership(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	employeeID, ok := h.pathID(w, r, "employeeId")
	if !ok {
		return
	}

	h.respondJSON(w, http.StatusOK, dto.MembershipResponse{
		IsMember: h.objectiveService.IsMember(r.Context(), id, employeeID),
	})
}

// ListMine возвращает задачи, исполнителем которых является вызывающий
func (h *ObjectiveHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r, true)
	if !ok {
		return
	}

	objectives, err := h.objectiveService.ListForExecutor(r.Context(), caller.EmployeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toObjectiveResponses(objectives))
}

// ListManaged возвращает задачи проектов, которыми руководит вызывающий
func (h *ObjectiveHandler) ListManaged(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r, true)
	if !ok {
		return
	}

	objectives, err := h.objectiveService.ListForProjectDirector(r.Context(), caller.EmployeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toObjectiveResponses(objectives))
}

func toObjectiveResponses(objectives []domain.Objective) []dto.ObjectiveResponse {
	resp := make([]dto.ObjectiveResponse, 0, len(objectives))
	for i := range objectives {
		resp = append(resp, toObjectiveResponse(&objectives[i]))
	}
	return resp
}

func toObjectiveResponse(o *domain.Objective) dto.ObjectiveResponse {
	return dto.ObjectiveResponse{
		ID:         o.ID,
		Name:       o.Name,
		AuthorID:   o.AuthorID,
		ExecutorID: o.ExecutorID,
		Status:     o.Status,
		Comment:    o.Comment,
		Priority:   o.Priority,
		ProjectID:  o.ProjectID,
	}
}
