package models

import "gorm.io/gorm"

const (
	NotifyEnrollment = "enrollment"
	NotifyAssignment = "assignment"
	NotifySubmission = "submission"
	NotifyGrade      = "grade"
)

type Notification struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index"`
	Message     string `gorm:"not null"`
	Kind        string `gorm:"not null"` // enrollment, assignment, submission, grade
	ReferenceID uint
	IsRead      bool `gorm:"default:false"`
}
