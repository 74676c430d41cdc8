package policy

import (
	"errors"

	"classhub/backend/apperrors"
	"classhub/backend/models"

	"gorm.io/gorm"
)

// Policy отвечает на вопрос «может ли пользователь выполнить операцию над
// сущностью». Владение и зачисление перечитываются из базы при каждом
// вызове: они привязаны к конкретной сущности, а не к роли.
type Policy struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Policy {
	return &Policy{db: db}
}

// ProgramForManage загружает программу и требует, чтобы actor был
// организатором-владельцем. Используется для создания заданий, зачисления
// участников, выставления оценок и удаления программы.
func (p *Policy) ProgramForManage(actor models.User, programID uint) (models.Program, error) {
	program, err := p.loadProgram(programID)
	if err != nil {
		return models.Program{}, err
	}
	if actor.Role != models.RoleOrganizer || program.OrganizerID != actor.ID {
		return models.Program{}, apperrors.Forbidden("only the owning organizer may manage this program")
	}
	return program, nil
}

// ProgramForView разрешает доступ владельцу и зачисленным участникам.
func (p *Policy) ProgramForView(actor models.User, programID uint) (models.Program, error) {
	program, err := p.loadProgram(programID)
	if err != nil {
		return models.Program{}, err
	}
	if actor.Role == models.RoleOrganizer {
		if program.OrganizerID != actor.ID {
			return models.Program{}, apperrors.Forbidden("you do not own this program")
		}
		return program, nil
	}
	if err := p.EnsureEnrolled(actor.ID, programID); err != nil {
		return models.Program{}, err
	}
	return program, nil
}

// AssignmentForManage требует владения программой задания.
func (p *Policy) AssignmentForManage(actor models.User, assignmentID uint) (models.Assignment, error) {
	assignment, err := p.loadAssignment(assignmentID)
	if err != nil {
		return models.Assignment{}, err
	}
	if _, err := p.ProgramForManage(actor, assignment.ProgramID); err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

// AssignmentForView разрешает доступ владельцу программы и зачисленным участникам.
func (p *Policy) AssignmentForView(actor models.User, assignmentID uint) (models.Assignment, error) {
	assignment, err := p.loadAssignment(assignmentID)
	if err != nil {
		return models.Assignment{}, err
	}
	if _, err := p.ProgramForView(actor, assignment.ProgramID); err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

// AssignmentForSubmit требует, чтобы actor был участником, зачисленным в
// программу задания. Отправлять можно только свою работу.
func (p *Policy) AssignmentForSubmit(actor models.User, assignmentID uint) (models.Assignment, error) {
	assignment, err := p.loadAssignment(assignmentID)
	if err != nil {
		return models.Assignment{}, err
	}
	if actor.Role != models.RoleParticipant {
		return models.Assignment{}, apperrors.Forbidden("only participants may submit work")
	}
	if err := p.EnsureEnrolled(actor.ID, assignment.ProgramID); err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

// EnsureEnrolled возвращает AuthorizationError, если участник не зачислен
// в программу.
func (p *Policy) EnsureEnrolled(participantID, programID uint) error {
	var count int64
	if err := p.db.Model(&models.Enrollment{}).
		Where("participant_id = ? AND program_id = ?", participantID, programID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.Forbidden("participant is not enrolled in this program")
	}
	return nil
}

func (p *Policy) loadProgram(programID uint) (models.Program, error) {
	var program models.Program
	if err := p.db.First(&program, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Program{}, apperrors.NotFound("program not found")
		}
		return models.Program{}, err
	}
	return program, nil
}

func (p *Policy) loadAssignment(assignmentID uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := p.db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, apperrors.NotFound("assignment not found")
		}
		return models.Assignment{}, err
	}
	return assignment, nil
}
