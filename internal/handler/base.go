package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
	"github.com/project-manager-api/internal/middleware"
	"github.com/project-manager-api/internal/storage"
)

// base - общие для всех обработчиков зависимости и вспомогательные методы
type base struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newBase(logger *slog.Logger) base {
	return base{
		validator: validator.New(),
		logger:    logger,
	}
}

// decode читает JSON тело запроса и валидирует его
func (b *base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		b.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	if err := b.validator.Struct(dst); err != nil {
		b.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

// pathID разбирает UUID из сегмента пути
func (b *base) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		b.respondError(w, http.StatusBadRequest, "invalid "+name, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// caller возвращает вызывающего; requireEmployee требует связанного сотрудника
func (b *base) caller(w http.ResponseWriter, r *http.Request, requireEmployee bool) (domain.Caller, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		b.respondError(w, http.StatusUnauthorized, "authentication required", "")
		return domain.Caller{}, false
	}
	if requireEmployee && !caller.HasEmployee() {
		b.handleServiceError(w, domain.ErrNoEmployeeForCaller)
		return domain.Caller{}, false
	}
	return caller, true
}

func (b *base) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		b.respondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrEmployeeNotInProject):
		b.respondError(w, http.StatusBadRequest, "employee is not assigned to the objective's project", "")
	case errors.Is(err, domain.ErrInvalidStatus):
		b.respondError(w, http.StatusBadRequest, "invalid objective status", "")
	case errors.Is(err, storage.ErrInvalidFileName):
		b.respondError(w, http.StatusBadRequest, "invalid file name", "")
	case errors.Is(err, domain.ErrForbidden):
		b.respondError(w, http.StatusForbidden, "action is not allowed", "")
	case errors.Is(err, domain.ErrNoEmployeeForCaller):
		b.respondError(w, http.StatusForbidden, "caller is not linked to an employee", "")
	case errors.Is(err, domain.ErrEmployeeInUse):
		b.respondError(w, http.StatusConflict, "employee directs a project and cannot be deleted", "")
	case errors.Is(err, domain.ErrIdentityTaken):
		b.respondError(w, http.StatusConflict, "user_id is already linked to another employee", "")
	default:
		b.logger.Error("internal error", slog.Any("error", err))
		b.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (b *base) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (b *base) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		b.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// queryValues собирает повторяющиеся и перечисленные через запятую значения параметра
func queryValues(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}

func queryInts(r *http.Request, key string) ([]int, error) {
	var result []int
	for _, v := range queryValues(r, key) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		result = append(result, n)
	}
	return result, nil
}

func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &id, nil
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s: expected RFC 3339 or YYYY-MM-DD, got %q", key, raw)
}

// sortOptions разбирает sortBy и isSortAscending (по умолчанию true)
func sortOptions(r *http.Request) (domain.SortOptions, error) {
	opts := domain.SortOptions{
		Key:       r.URL.Query().Get("sortBy"),
		Ascending: true,
	}
	if raw := r.URL.Query().Get("isSortAscending"); raw != "" {
		asc, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("isSortAscending: %w", err)
		}
		opts.Ascending = asc
	}
	return opts, nil
}
