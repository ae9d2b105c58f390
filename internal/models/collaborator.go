package models

import "gorm.io/gorm"

// Collaborator grants a non-owner user editor or viewer access to a
// project. A user holds at most one role per project.
type Collaborator struct {
	gorm.Model

	UserID    uint   `gorm:"not null;uniqueIndex:idx_collaborator_user_project"`
	ProjectID uint   `gorm:"not null;uniqueIndex:idx_collaborator_user_project"`
	Role      string `gorm:"not null"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
