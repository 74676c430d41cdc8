package services

import (
	"errors"
	"fmt"

	"classhub/backend/apperrors"
	"classhub/backend/models"
	"classhub/backend/policy"

	"gorm.io/gorm"
)

type ProgramService struct {
	db     *gorm.DB
	policy *policy.Policy
	notify *NotificationService
}

func NewProgramService(db *gorm.DB) *ProgramService {
	return &ProgramService{
		db:     db,
		policy: policy.New(db),
		notify: NewNotificationService(db),
	}
}

// Create создает программу; actor становится владельцем.
func (s *ProgramService) Create(actor models.User, name, subject string) (models.Program, error) {
	if actor.Role != models.RoleOrganizer {
		return models.Program{}, apperrors.Forbidden("only organizers may create programs")
	}

	program := models.Program{
		Name:        name,
		Subject:     subject,
		OrganizerID: actor.ID,
	}
	if err := s.db.Create(&program).Error; err != nil {
		return models.Program{}, err
	}
	return program, nil
}

// ListOwned возвращает программы, которыми владеет организатор.
func (s *ProgramService) ListOwned(actor models.User) ([]models.Program, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, apperrors.Forbidden("only organizers own programs")
	}

	var programs []models.Program
	err := s.db.Where("organizer_id = ?", actor.ID).Find(&programs).Error
	return programs, err
}

// ListEnrolled возвращает программы, в которые зачислен участник.
func (s *ProgramService) ListEnrolled(actor models.User) ([]models.Program, error) {
	if actor.Role != models.RoleParticipant {
		return nil, apperrors.Forbidden("only participants have enrollments")
	}

	var programs []models.Program
	err := s.db.Joins("JOIN enrollments ON enrollments.program_id = programs.id").
		Where("enrollments.participant_id = ?", actor.ID).
		Find(&programs).Error
	return programs, err
}

type ProgramDetail struct {
	Program      models.Program      `json:"program"`
	Assignments  []models.Assignment `json:"assignments"`
	Participants []models.User       `json:"participants,omitempty"`
}

// Detail возвращает программу с заданиями. Владельцу дополнительно
// возвращается список зачисленных участников.
func (s *ProgramService) Detail(actor models.User, programID uint) (ProgramDetail, error) {
	program, err := s.policy.ProgramForView(actor, programID)
	if err != nil {
		return ProgramDetail{}, err
	}

	detail := ProgramDetail{Program: program}
	if err := s.db.Where("program_id = ?", programID).
		Order("due_date ASC").
		Find(&detail.Assignments).Error; err != nil {
		return ProgramDetail{}, err
	}

	if actor.Role == models.RoleOrganizer {
		var enrollments []models.Enrollment
		if err := s.db.Preload("Participant").
			Where("program_id = ?", programID).
			Find(&enrollments).Error; err != nil {
			return ProgramDetail{}, err
		}
		for _, e := range enrollments {
			detail.Participants = append(detail.Participants, e.Participant)
		}
	}

	return detail, nil
}

// Enroll зачисляет участника в программу. Дубликат пары ловится уникальным
// индексом, а не предварительной проверкой: при гонке проигравший получает
// ConflictError.
func (s *ProgramService) Enroll(actor models.User, programID, participantID uint) (models.Enrollment, error) {
	program, err := s.policy.ProgramForManage(actor, programID)
	if err != nil {
		return models.Enrollment{}, err
	}

	var participant models.User
	if err := s.db.Where("id = ? AND role = ?", participantID, models.RoleParticipant).
		First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Enrollment{}, apperrors.NotFound("participant not found")
		}
		return models.Enrollment{}, err
	}

	enrollment := models.Enrollment{
		ParticipantID: participant.ID,
		ProgramID:     program.ID,
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		if isDuplicate(err) {
			return models.Enrollment{}, apperrors.Conflict("participant is already enrolled in this program")
		}
		return models.Enrollment{}, err
	}

	s.notify.Notify(participant.ID,
		fmt.Sprintf("You have been enrolled in %q", program.Name),
		models.NotifyEnrollment, program.ID)

	return enrollment, nil
}

// Unenroll отчисляет участника; его задания и оценки в программе перестают
// быть ему видны. Строка зачисления удаляется насовсем, так что та же пара
// может быть зачислена повторно.
func (s *ProgramService) Unenroll(actor models.User, programID, participantID uint) error {
	if _, err := s.policy.ProgramForManage(actor, programID); err != nil {
		return err
	}

	result := s.db.Where("program_id = ? AND participant_id = ?", programID, participantID).
		Delete(&models.Enrollment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("enrollment not found")
	}
	return nil
}

// Delete удаляет программу вместе с заданиями, их сдачами и оценками и
// всеми зачислениями, в одной транзакции. Файлы артефактов остаются на
// диске для внешней уборки.
func (s *ProgramService) Delete(actor models.User, programID uint) error {
	program, err := s.policy.ProgramForManage(actor, programID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var assignmentIDs []uint
		if err := tx.Model(&models.Assignment{}).
			Where("program_id = ?", program.ID).
			Pluck("id", &assignmentIDs).Error; err != nil {
			return err
		}

		if len(assignmentIDs) > 0 {
			if err := tx.Where("assignment_id IN ?", assignmentIDs).
				Delete(&models.Submission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("assignment_id IN ?", assignmentIDs).
				Delete(&models.Grade{}).Error; err != nil {
				return err
			}
			if err := tx.Where("program_id = ?", program.ID).
				Delete(&models.Assignment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("program_id = ?", program.ID).
			Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Program{}, program.ID).Error
	})
}
