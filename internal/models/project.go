package models

import "time"

type Project struct {
	BaseModel

	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	StartDate   time.Time     `gorm:"not null" json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Status      ProjectStatus `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	TeamID      *string       `gorm:"type:uuid;index" json:"teamId"`
	CreatedByID string        `gorm:"type:uuid;not null;index" json:"createdById"`

	// Relationships
	Team      *Team  `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	CreatedBy *User  `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Tasks     []Task `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"tasks,omitempty"`
}
