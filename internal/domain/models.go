package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee представляет сотрудника
type Employee struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName  string    `json:"first_name" gorm:"type:varchar(256);not null"`
	LastName   string    `json:"last_name" gorm:"type:varchar(256);not null"`
	Patronymic *string   `json:"patronymic" gorm:"type:varchar(256)"`
	Mail       string    `json:"mail" gorm:"type:varchar(256);not null"`
	UserID     *string   `json:"user_id" gorm:"type:varchar(450);uniqueIndex"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	Memberships        []EmployeeProject `json:"-" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	AuthoredObjectives []Objective       `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	AssignedObjectives []Objective       `json:"-" gorm:"foreignKey:ExecutorID;constraint:OnDelete:SET NULL"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Project представляет проект с руководителем и составом участников
type Project struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(256);not null"`
	CustomerName string    `json:"customer_name" gorm:"type:varchar(256);not null"`
	ExecutorName string    `json:"executor_name" gorm:"type:varchar(256);not null"`
	DirectorID   uuid.UUID `json:"director_id" gorm:"type:uuid;not null;index"`
	StartTime    time.Time `json:"start_time" gorm:"not null"`
	EndTime      time.Time `json:"end_time" gorm:"not null"`
	Priority     int       `json:"priority" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Director    *Employee         `json:"-" gorm:"foreignKey:DirectorID;constraint:OnDelete:RESTRICT"`
	Memberships []EmployeeProject `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Objectives  []Objective       `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
}

// TableName задаёт имя таблицы для GORM
func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MemberIDs возвращает идентификаторы участников из загруженных связей
func (p *Project) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Memberships))
	for _, m := range p.Memberships {
		ids = append(ids, m.EmployeeID)
	}
	return ids
}

// EmployeeProject - связь сотрудника с проектом
type EmployeeProject struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName задаёт имя таблицы для GORM
func (EmployeeProject) TableName() string {
	return "employee_projects"
}

// Objective представляет задачу внутри проекта
type Objective struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string     `json:"name" gorm:"type:varchar(256);not null"`
	AuthorID   *uuid.UUID `json:"author_id" gorm:"type:uuid;index"`
	ExecutorID *uuid.UUID `json:"executor_id" gorm:"type:uuid;index"`
	Status     Status     `json:"status" gorm:"not null"`
	Comment    *string    `json:"comment" gorm:"type:varchar(256)"`
	Priority   int        `json:"priority" gorm:"not null"`
	ProjectID  *uuid.UUID `json:"project_id" gorm:"type:uuid;index"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Author   *Employee `json:"-" gorm:"foreignKey:AuthorID"`
	Executor *Employee `json:"-" gorm:"foreignKey:ExecutorID"`
	Project  *Project  `json:"-" gorm:"foreignKey:ProjectID"`
}

// TableName задаёт имя таблицы для GORM
func (Objective) TableName() string {
	return "objectives"
}

func (o *Objective) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsExecutedBy сообщает, назначен ли сотрудник исполнителем задачи
func (o *Objective) IsExecutedBy(employeeID uuid.UUID) bool {
	return o.ExecutorID != nil && *o.ExecutorID == employeeID
}
