package domain

import (
	"time"

	"github.com/google/uuid"
)

// ObjectiveFilter - условия выборки задач. Пустые поля не ограничивают выборку.
type ObjectiveFilter struct {
	Statuses   []Status
	Priorities []int
	Name       string
	AuthorID   *uuid.UUID
	ExecutorID *uuid.UUID
	ProjectID  *uuid.UUID
}

// ProjectFilter - условия выборки проектов
type ProjectFilter struct {
	Name          string
	CustomerName  string
	ExecutorName  string
	StartTimeFrom *time.Time
	StartTimeTo   *time.Time
	Priorities    []int
	DirectorID    *uuid.UUID
}

// SortOptions - ключ и направление сортировки. Неизвестный ключ означает сортировку по умолчанию.
type SortOptions struct {
	Key       string
	Ascending bool
}
