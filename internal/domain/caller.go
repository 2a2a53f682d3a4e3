package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Role - роль вызывающего в системе
type Role int

const (
	RoleEmployee Role = iota + 1
	RoleProjectManager
	RoleDirector
)

func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return "employee"
	case RoleProjectManager:
		return "project_manager"
	case RoleDirector:
		return "director"
	default:
		return "unknown"
	}
}

// ParseRole переводит метку роли из токена в Role.
// Неизвестные метки отбрасываются вызывающим кодом.
func ParseRole(label string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "director":
		return RoleDirector, true
	case "project_manager", "project manager", "manager":
		return RoleProjectManager, true
	case "employee":
		return RoleEmployee, true
	default:
		return 0, false
	}
}

// Caller - аутентифицированный пользователь, от имени которого выполняется запрос.
// EmployeeID равен uuid.Nil, если учётная запись не связана с сотрудником.
type Caller struct {
	UserID     string
	EmployeeID uuid.UUID
	Roles      []Role
}

// HasRole проверяет наличие роли
func (c Caller) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole проверяет наличие хотя бы одной из ролей
func (c Caller) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if c.HasRole(role) {
			return true
		}
	}
	return false
}

func (c Caller) IsDirector() bool {
	return c.HasRole(RoleDirector)
}

// HasEmployee сообщает, удалось ли сопоставить вызывающего с сотрудником
func (c Caller) HasEmployee() bool {
	return c.EmployeeID != uuid.Nil
}
