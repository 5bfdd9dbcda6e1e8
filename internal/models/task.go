package models

import "time"

type Task struct {
	BaseModel

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `gorm:"type:varchar(16);not null" json:"priority"`
	Status      TaskStatus `gorm:"type:varchar(16);not null" json:"status"`
	ProjectID   string     `gorm:"type:uuid;not null;index" json:"projectId"`
	CreatedByID string     `gorm:"type:uuid;not null;index" json:"createdById"`

	// Relationships
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Assignees []User   `gorm:"many2many:task_assignees;" json:"assignees"`
}
