package services

import (
	"fmt"
	"time"

	"classhub/backend/apperrors"
	"classhub/backend/models"
	"classhub/backend/policy"

	"gorm.io/gorm"
)

type AssignmentService struct {
	db     *gorm.DB
	policy *policy.Policy
	notify *NotificationService
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{
		db:     db,
		policy: policy.New(db),
		notify: NewNotificationService(db),
	}
}

type AssignmentInput struct {
	Title       string
	Description string
	Category    string
	DueDate     string // "2006-01-02", empty for no deadline
}

func (in AssignmentInput) parse() (string, *time.Time, error) {
	category := in.Category
	if category == "" {
		category = models.CategoryHomework
	}
	if !models.ValidCategory(category) {
		return "", nil, apperrors.Validation("unknown assignment category")
	}

	// Прошедшие даты допустимы, непарсящиеся — нет.
	var due *time.Time
	if in.DueDate != "" {
		t, err := time.Parse("2006-01-02", in.DueDate)
		if err != nil {
			return "", nil, apperrors.Validation("due date must be formatted as YYYY-MM-DD")
		}
		due = &t
	}
	return category, due, nil
}

// Create создает задание в программе и уведомляет всех зачисленных участников.
func (s *AssignmentService) Create(actor models.User, programID uint, in AssignmentInput) (models.Assignment, error) {
	program, err := s.policy.ProgramForManage(actor, programID)
	if err != nil {
		return models.Assignment{}, err
	}

	category, due, err := in.parse()
	if err != nil {
		return models.Assignment{}, err
	}

	assignment := models.Assignment{
		ProgramID:   program.ID,
		OrganizerID: actor.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		DueDate:     due,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return models.Assignment{}, err
	}

	var enrollments []models.Enrollment
	if err := s.db.Where("program_id = ?", program.ID).Find(&enrollments).Error; err == nil {
		for _, e := range enrollments {
			s.notify.Notify(e.ParticipantID,
				fmt.Sprintf("New assignment in %q: %s", program.Name, assignment.Title),
				models.NotifyAssignment, assignment.ID)
		}
	}

	return assignment, nil
}

// Update меняет поля задания; доступно только владельцу программы.
func (s *AssignmentService) Update(actor models.User, assignmentID uint, in AssignmentInput) (models.Assignment, error) {
	assignment, err := s.policy.AssignmentForManage(actor, assignmentID)
	if err != nil {
		return models.Assignment{}, err
	}

	category, due, err := in.parse()
	if err != nil {
		return models.Assignment{}, err
	}

	assignment.Title = in.Title
	assignment.Description = in.Description
	assignment.Category = category
	assignment.DueDate = due
	if err := s.db.Save(&assignment).Error; err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

// AssignmentDetail включает, для участника, его собственную сдачу и оценку.
type AssignmentDetail struct {
	Assignment models.Assignment  `json:"assignment"`
	Submission *models.Submission `json:"submission,omitempty"`
	Grade      *models.Grade      `json:"grade,omitempty"`
}

func (s *AssignmentService) Get(actor models.User, assignmentID uint) (AssignmentDetail, error) {
	assignment, err := s.policy.AssignmentForView(actor, assignmentID)
	if err != nil {
		return AssignmentDetail{}, err
	}

	detail := AssignmentDetail{Assignment: assignment}
	if actor.Role == models.RoleParticipant {
		var submission models.Submission
		if err := s.db.Where("assignment_id = ? AND participant_id = ?", assignmentID, actor.ID).
			First(&submission).Error; err == nil {
			detail.Submission = &submission
		}
		var grade models.Grade
		if err := s.db.Where("assignment_id = ? AND participant_id = ?", assignmentID, actor.ID).
			First(&grade).Error; err == nil {
			detail.Grade = &grade
		}
	}
	return detail, nil
}

func (s *AssignmentService) ListForProgram(actor models.User, programID uint) ([]models.Assignment, error) {
	if _, err := s.policy.ProgramForView(actor, programID); err != nil {
		return nil, err
	}

	var assignments []models.Assignment
	err := s.db.Where("program_id = ?", programID).
		Order("due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

// Delete удаляет задание вместе со сдачами и оценками.
func (s *AssignmentService) Delete(actor models.User, assignmentID uint) error {
	assignment, err := s.policy.AssignmentForManage(actor, assignmentID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", assignment.ID).
			Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_id = ?", assignment.ID).
			Delete(&models.Grade{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Assignment{}, assignment.ID).Error
	})
}
