package models

import "gorm.io/gorm"

// Notification is created for every project member except the sender
// when a chat message lands. Project and sender names are denormalized
// so the popover renders without joins. Rows expire three days after
// creation regardless of read state (see internal/retention).
type Notification struct {
	gorm.Model

	UserID      uint   `gorm:"not null;index"` // Recipient
	ProjectID   uint   `gorm:"not null;index"`
	ProjectName string `gorm:"not null"`
	SenderID    uint   `gorm:"not null"`
	SenderName  string `gorm:"not null"`
	Message     string `gorm:"not null"`
	IsRead      bool   `gorm:"default:false"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
