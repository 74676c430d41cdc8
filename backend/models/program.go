package models

import (
	"time"

	"gorm.io/gorm"
)

type Program struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Subject     string `gorm:"not null"`
	OrganizerID uint   `gorm:"not null;index"`
	Assignments []Assignment
	Enrollments []Enrollment
}

// Enrollment связывает участника с программой. Пара (participant, program)
// уникальна на уровне БД. Без мягкого удаления: отчисление удаляет строку
// насовсем, чтобы пару можно было зачислить заново.
type Enrollment struct {
	ID            uint `gorm:"primaryKey"`
	ParticipantID uint `gorm:"not null;uniqueIndex:idx_enrollment_pair"`
	ProgramID     uint `gorm:"not null;uniqueIndex:idx_enrollment_pair"`
	CreatedAt     time.Time
	Participant   User `gorm:"foreignKey:ParticipantID"`
}
