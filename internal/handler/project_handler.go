package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
	"github.com/project-manager-api/internal/service"
	"github.com/project-manager-api/internal/storage"
)

const maxUploadMemory = 32 << 20

type ProjectHandler struct {
	base
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		base:           newBase(logger),
		projectService: projectService,
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProjectFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	sort, err := sortOptions(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	projects, err := h.projectService.List(r.Context(), filter, sort)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toProjectResponses(projects))
}

func parseProjectFilter(r *http.Request) (domain.ProjectFilter, error) {
	q := r.URL.Query()
	filter := domain.ProjectFilter{
		Name:         q.Get("name"),
		CustomerName: q.Get("customerName"),
		ExecutorName: q.Get("executorName"),
	}

	var err error
	if filter.StartTimeFrom, err = queryTime(r, "startTimeFrom"); err != nil {
		return filter, err
	}
	if filter.StartTimeTo, err = queryTime(r, "startTimeTo"); err != nil {
		return filter, err
	}
	if filter.Priorities, err = queryInts(r, "priorities"); err != nil {
		return filter, err
	}
	if filter.DirectorID, err = queryUUID(r, "directorId"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadDocuments принимает multipart-форму с полем files
func (h *ProjectHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	caller, ok := h.caller(w, r, false)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		h.respondError(w, http.StatusBadRequest, "no files uploaded", "")
		return
	}

	uploads := make([]storage.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, toUpload(fh))
	}

	saved, err := h.projectService.UploadDocuments(r.Context(), caller, id, uploads)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.UploadResponse{
		Message: "documents uploaded successfully",
		Files:   saved,
	})
}

func toUpload(fh *multipart.FileHeader) storage.Upload {
	return storage.Upload{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	h.changeRelation(w, r, "employeeId", h.projectService.AddMember)
}

func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	h.changeRelation(w, r, "employeeId", h.projectService.RemoveMember)
}

func (h *ProjectHandler) AttachObjective(w http.ResponseWriter, r *http.Request) {
	h.changeRelation(w, r, "objectiveId", h.projectService.AttachObjective)
}

func (h *ProjectHandler) DetachObjective(w http.ResponseWriter, r *http.Request) {
	h.changeRelation(w, r, "objectiveId", h.projectService.DetachObjective)
}

type relationFunc func(ctx context.Context, caller domain.Caller, projectID, targetID uuid.UUID) error

// changeRelation разбирает /projects/{id}/.../{target} и применяет изменение от имени вызывающего
func (h *ProjectHandler) changeRelation(w http.ResponseWriter, r *http.Request, target string, apply relationFunc) {
	projectID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	targetID, ok := h.pathID(w, r, target)
	if !ok {
		return
	}
	caller, ok := h.caller(w, r, false)
	if !ok {
		return
	}

	if err := apply(r.Context(), caller, projectID, targetID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMine возвращает проекты, которыми руководит вызывающий
func (h *ProjectHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r, true)
	if !ok {
		return
	}

	projects, err := h.projectService.ListManaged(r.Context(), caller.EmployeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toProjectResponses(projects))
}

// ListAssigned возвращает проекты, в которых состоит вызывающий
func (h *ProjectHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r, true)
	if !ok {
		return
	}

	projects, err := h.projectService.ListAssigned(r.Context(), caller.EmployeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toProjectResponses(projects))
}

func toProjectResponses(projects []domain.Project) []dto.ProjectResponse {
	resp := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, toProjectResponse(&projects[i]))
	}
	return resp
}

func toProjectResponse(p *domain.Project) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		CustomerName: p.CustomerName,
		ExecutorName: p.ExecutorName,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		Priority:     p.Priority,
		DirectorID:   p.DirectorID,
		EmployeeIDs:  p.MemberIDs(),
		ObjectiveIDs: make([]uuid.UUID, 0, len(p.Objectives)),
	}
	for _, o := range p.Objectives {
		resp.ObjectiveIDs = append(resp.ObjectiveIDs, o.ID)
	}
	return resp
}
