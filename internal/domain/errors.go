package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrObjectiveNotFound    = errors.New("objective not found")
	ErrEmployeeNotInProject = errors.New("employee is not assigned to the project")
	ErrEmployeeInUse        = errors.New("employee is referenced as a project director")
	ErrIdentityTaken        = errors.New("user is already linked to another employee")
	ErrInvalidStatus        = errors.New("invalid objective status")
	ErrForbidden            = errors.New("action is not allowed for the caller")
	ErrNoEmployeeForCaller  = errors.New("caller is not linked to an employee")
)

// IsNotFound сообщает, относится ли ошибка к отсутствующей сущности
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrObjectiveNotFound)
}
