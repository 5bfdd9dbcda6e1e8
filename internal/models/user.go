package models

type User struct {
	BaseModel

	Name         *string  `json:"name"`
	Email        *string  `gorm:"uniqueIndex" json:"email"`
	PasswordHash *string  `json:"-"`
	Image        *string  `json:"image"`
	Role         UserRole `gorm:"type:varchar(16);not null;default:'USER'" json:"role"`

	// Relationships
	OwnedTeams []Team `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Teams      []Team `gorm:"many2many:team_members;" json:"-"`
}
