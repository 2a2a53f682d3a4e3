package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
)

// CreateEmployeeRequest - запрос на создание или обновление сотрудника
type CreateEmployeeRequest struct {
	FirstName  string  `json:"first_name" validate:"required,min=1,max=256"`
	LastName   string  `json:"last_name" validate:"required,min=1,max=256"`
	Patronymic *string `json:"patronymic" validate:"omitempty,max=256"`
	Mail       string  `json:"mail" validate:"required,email,max=256"`
	UserID     *string `json:"user_id" validate:"omitempty,min=1,max=450"`
}

// UpdateEmployeeRequest - полное обновление сотрудника
type UpdateEmployeeRequest = CreateEmployeeRequest

// CreateProjectRequest - запрос на создание проекта вместе с составом
type CreateProjectRequest struct {
	Name         string      `json:"name" validate:"required,min=1,max=256"`
	CustomerName string      `json:"customer_name" validate:"required,min=1,max=256"`
	ExecutorName string      `json:"executor_name" validate:"required,min=1,max=256"`
	StartTime    time.Time   `json:"start_time" validate:"required"`
	EndTime      time.Time   `json:"end_time" validate:"required"`
	Priority     int         `json:"priority"`
	DirectorID   uuid.UUID   `json:"director_id" validate:"required"`
	EmployeeIDs  []uuid.UUID `json:"employee_ids" validate:"omitempty,dive,required"`
}

// UpdateProjectRequest - полное обновление проекта; состав приводится к EmployeeIDs
type UpdateProjectRequest = CreateProjectRequest

// CreateObjectiveRequest - запрос на создание задачи. Автор - вызывающий сотрудник.
type CreateObjectiveRequest struct {
	Name       string        `json:"name" validate:"required,min=1,max=256"`
	ExecutorID *uuid.UUID    `json:"executor_id"`
	Status     domain.Status `json:"status"`
	Comment    *string       `json:"comment" validate:"omitempty,max=256"`
	Priority   int           `json:"priority"`
	ProjectID  *uuid.UUID    `json:"project_id"`
}

// UpdateObjectiveRequest - полное обновление задачи. Пустой author_id сохраняет прежнего автора.
type UpdateObjectiveRequest struct {
	Name       string        `json:"name" validate:"required,min=1,max=256"`
	AuthorID   *uuid.UUID    `json:"author_id"`
	ExecutorID *uuid.UUID    `json:"executor_id"`
	Status     domain.Status `json:"status"`
	Comment    *string       `json:"comment" validate:"omitempty,max=256"`
	Priority   int           `json:"priority"`
	ProjectID  *uuid.UUID    `json:"project_id"`
}

// UpdateStatusRequest - запрос на смену статуса задачи
type UpdateStatusRequest struct {
	Status *domain.Status `json:"status" validate:"required"`
}

// UpdateExecutorRequest - запрос на смену исполнителя без проверки участия в проекте
type UpdateExecutorRequest struct {
	ExecutorID uuid.UUID `json:"executor_id" validate:"required"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID                   uuid.UUID   `json:"id"`
	FirstName            string      `json:"first_name"`
	LastName             string      `json:"last_name"`
	Patronymic           *string     `json:"patronymic,omitempty"`
	Mail                 string      `json:"mail"`
	ProjectIDs           []uuid.UUID `json:"project_ids"`
	AuthoredObjectiveIDs []uuid.UUID `json:"authored_objective_ids"`
	AssignedObjectiveIDs []uuid.UUID `json:"assigned_objective_ids"`
}

// ProjectResponse - ответ с данными проекта
type ProjectResponse struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	CustomerName string      `json:"customer_name"`
	ExecutorName string      `json:"executor_name"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	Priority     int         `json:"priority"`
	DirectorID   uuid.UUID   `json:"director_id"`
	EmployeeIDs  []uuid.UUID `json:"employee_ids"`
	ObjectiveIDs []uuid.UUID `json:"objective_ids"`
}

// ObjectiveResponse - ответ с данными задачи
type ObjectiveResponse struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	AuthorID   *uuid.UUID    `json:"author_id"`
	ExecutorID *uuid.UUID    `json:"executor_id"`
	Status     domain.Status `json:"status"`
	Comment    *string       `json:"comment,omitempty"`
	Priority   int           `json:"priority"`
	ProjectID  *uuid.UUID    `json:"project_id"`
}

// MembershipResponse - ответ на проверку участия сотрудника в проекте задачи
type MembershipResponse struct {
	IsMember bool `json:"is_member"`
}

// UploadResponse - результат загрузки документов
type UploadResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
