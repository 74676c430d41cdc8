package models

import "gorm.io/gorm"

const (
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"` // organizer, participant; fixed at registration
	FirstName    string
	LastName     string
}

// ValidRole reports whether r is one of the two known roles.
func ValidRole(r string) bool {
	return r == RoleOrganizer || r == RoleParticipant
}
