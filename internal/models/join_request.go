package models

import "gorm.io/gorm"

// JoinRequest is a pending request by a user to become a collaborator,
// awaiting owner approval. Approval moves the row into collaborators;
// denial removes it.
type JoinRequest struct {
	gorm.Model

	UserID    uint `gorm:"not null;uniqueIndex:idx_join_request_user_project"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_join_request_user_project"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
