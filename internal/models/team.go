package models

type Team struct {
	BaseModel

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	OwnerID     string `gorm:"type:uuid;not null;index" json:"ownerId"`

	// Relationships
	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner"`
	Members  []User    `gorm:"many2many:team_members;" json:"members"`
	Projects []Project `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
