package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	ProjectID  uint   `gorm:"not null;index"` // Immutable after creation
	Title      string `gorm:"not null"`
	Status     string `gorm:"not null"` // One of types.StatusOrder
	AssigneeID *uint  `gorm:"index"`
	DueDate    *time.Time

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Assignee *User   `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
