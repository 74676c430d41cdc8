package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CategoryHomework = "homework"
	CategoryTest     = "test"
	CategoryProject  = "project"
	CategoryQuiz     = "quiz"
	CategoryExam     = "exam"
)

type Assignment struct {
	gorm.Model
	ProgramID   uint   `gorm:"not null;index"`
	OrganizerID uint   `gorm:"not null"`
	Title       string `gorm:"not null"`
	Description string
	Category    string `gorm:"default:homework"` // homework, test, project, quiz, exam
	DueDate     *time.Time
}

// Submission хранит ответ участника на задание: ссылку на загруженный файл
// и/или текст. На пару (assignment, participant) существует не более одной записи.
type Submission struct {
	gorm.Model
	AssignmentID  uint `gorm:"not null;uniqueIndex:idx_submission_pair"`
	ParticipantID uint `gorm:"not null;uniqueIndex:idx_submission_pair"`
	ArtifactRef   string
	Text          string
	SubmittedAt   time.Time
	IsLate        bool
	Participant   User `gorm:"foreignKey:ParticipantID"`
}

// Grade — оценка участника за задание, уникальна на пару (assignment, participant).
type Grade struct {
	gorm.Model
	AssignmentID  uint `gorm:"not null;uniqueIndex:idx_grade_pair"`
	ParticipantID uint `gorm:"not null;uniqueIndex:idx_grade_pair"`
	OrganizerID   uint `gorm:"not null"`
	Value         int  `gorm:"not null"`
	Feedback      string
	Assignment    Assignment `gorm:"foreignKey:AssignmentID"`
	Participant   User       `gorm:"foreignKey:ParticipantID"`
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryHomework, CategoryTest, CategoryProject, CategoryQuiz, CategoryExam:
		return true
	}
	return false
}
