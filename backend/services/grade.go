package services

import (
	"fmt"

	"classhub/backend/models"
	"classhub/backend/policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradeService struct {
	db     *gorm.DB
	policy *policy.Policy
	notify *NotificationService
}

func NewGradeService(db *gorm.DB) *GradeService {
	return &GradeService{
		db:     db,
		policy: policy.New(db),
		notify: NewNotificationService(db),
	}
}

// Upsert выставляет или обновляет оценку одним условным insert-or-update по
// уникальному индексу пары (assignment, participant). Две конкурирующие
// попытки не создадут вторую строку: проигравшая превратится в update.
func (s *GradeService) Upsert(actor models.User, assignmentID, participantID uint, value int, feedback string) (models.Grade, error) {
	assignment, err := s.policy.AssignmentForManage(actor, assignmentID)
	if err != nil {
		return models.Grade{}, err
	}
	if err := s.policy.EnsureEnrolled(participantID, assignment.ProgramID); err != nil {
		return models.Grade{}, err
	}

	grade := models.Grade{
		AssignmentID:  assignment.ID,
		ParticipantID: participantID,
		OrganizerID:   actor.ID,
		Value:         value,
		Feedback:      feedback,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "participant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"organizer_id", "value", "feedback", "updated_at"}),
	}).Create(&grade).Error
	if err != nil {
		return models.Grade{}, err
	}

	// Перечитываем строку: при конфликте Create не заполняет ID существующей записи.
	if err := s.db.Where("assignment_id = ? AND participant_id = ?", assignment.ID, participantID).
		First(&grade).Error; err != nil {
		return models.Grade{}, err
	}

	s.notify.Notify(participantID,
		fmt.Sprintf("Your grade for %q was set to %d", assignment.Title, value),
		models.NotifyGrade, assignment.ID)

	return grade, nil
}

// OwnGrades возвращает участнику его оценки по всем программам.
func (s *GradeService) OwnGrades(actor models.User) ([]models.Grade, error) {
	var grades []models.Grade
	err := s.db.Preload("Assignment").
		Where("participant_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&grades).Error
	return grades, err
}

// ProgramGrades возвращает владельцу все оценки в программе.
func (s *GradeService) ProgramGrades(actor models.User, programID uint) ([]models.Grade, error) {
	program, err := s.policy.ProgramForManage(actor, programID)
	if err != nil {
		return nil, err
	}

	var grades []models.Grade
	err = s.db.Preload("Assignment").Preload("Participant").
		Joins("JOIN assignments ON assignments.id = grades.assignment_id").
		Where("assignments.program_id = ? AND assignments.deleted_at IS NULL", program.ID).
		Find(&grades).Error
	return grades, err
}
