package models

import "gorm.io/gorm"

// Message is an append-only chat entry scoped to one project, ordered
// by creation time.
type Message struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Text      string `gorm:"not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
