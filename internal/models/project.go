package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	PublicID    string `gorm:"uniqueIndex;not null"` // Opaque share code used for join requests
	Name        string `gorm:"not null"`
	Description string
	OwnerID     uint `gorm:"not null;index"`
	IsArchived  bool `gorm:"default:false"`
	Settings    datatypes.JSON `gorm:"type:jsonb"` // Board preferences (column order, filters)

	// Relationships
	Owner         User           `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Collaborators []Collaborator `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	JoinRequests  []JoinRequest  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks         []Task         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Messages      []Message      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
