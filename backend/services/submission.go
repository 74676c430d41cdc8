package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"classhub/backend/apperrors"
	"classhub/backend/models"
	"classhub/backend/policy"
	"classhub/backend/storage"

	"gorm.io/gorm"
)

type SubmissionService struct {
	db     *gorm.DB
	policy *policy.Policy
	notify *NotificationService
	store  storage.Store
}

func NewSubmissionService(db *gorm.DB, store storage.Store) *SubmissionService {
	return &SubmissionService{
		db:     db,
		policy: policy.New(db),
		notify: NewNotificationService(db),
		store:  store,
	}
}

// Submit сохраняет ответ участника. Файл пишется в хранилище до записи в
// базу: при сбое записи остается бесхозный файл, но никогда — запись со
// ссылкой на несуществующий артефакт. Повторная отправка обновляет
// единственную запись пары (assignment, participant).
func (s *SubmissionService) Submit(ctx context.Context, actor models.User, assignmentID uint, filename string, file io.Reader, text string) (models.Submission, error) {
	assignment, err := s.policy.AssignmentForSubmit(actor, assignmentID)
	if err != nil {
		return models.Submission{}, err
	}

	if file == nil && text == "" {
		return models.Submission{}, apperrors.Validation("submission requires a file or text")
	}

	var artifactRef string
	if file != nil {
		ref, err := s.store.Save(ctx, storage.ObjectKey(filename), file)
		if err != nil {
			return models.Submission{}, fmt.Errorf("failed to store artifact: %w", err)
		}
		artifactRef = ref
	}

	now := time.Now().UTC()
	late := assignment.DueDate != nil && now.After(*assignment.DueDate)

	var submission models.Submission
	err = s.db.Where("assignment_id = ? AND participant_id = ?", assignment.ID, actor.ID).
		First(&submission).Error
	switch {
	case err == nil:
		submission.Text = text
		if artifactRef != "" {
			submission.ArtifactRef = artifactRef
		}
		submission.SubmittedAt = now
		submission.IsLate = late
		if err := s.db.Save(&submission).Error; err != nil {
			return models.Submission{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = models.Submission{
			AssignmentID:  assignment.ID,
			ParticipantID: actor.ID,
			ArtifactRef:   artifactRef,
			Text:          text,
			SubmittedAt:   now,
			IsLate:        late,
		}
		if err := s.db.Create(&submission).Error; err != nil {
			if isDuplicate(err) {
				return models.Submission{}, apperrors.Conflict("submission was just created, resubmit to replace it")
			}
			return models.Submission{}, err
		}
	default:
		return models.Submission{}, err
	}

	s.notify.Notify(assignment.OrganizerID,
		fmt.Sprintf("%s %s submitted work for %q", actor.FirstName, actor.LastName, assignment.Title),
		models.NotifySubmission, assignment.ID)

	return submission, nil
}

// Own возвращает сдачу участника по заданию, если она есть.
func (s *SubmissionService) Own(actor models.User, assignmentID uint) (models.Submission, error) {
	if _, err := s.policy.AssignmentForView(actor, assignmentID); err != nil {
		return models.Submission{}, err
	}

	var submission models.Submission
	if err := s.db.Where("assignment_id = ? AND participant_id = ?", assignmentID, actor.ID).
		First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, apperrors.NotFound("no submission yet")
		}
		return models.Submission{}, err
	}
	return submission, nil
}

// ListForAssignment возвращает владельцу программы все сдачи по заданию.
func (s *SubmissionService) ListForAssignment(actor models.User, assignmentID uint) ([]models.Submission, error) {
	if _, err := s.policy.AssignmentForManage(actor, assignmentID); err != nil {
		return nil, err
	}

	var submissions []models.Submission
	err := s.db.Preload("Participant").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}

// OpenArtifact открывает файл сдачи. Доступен владельцу программы и автору сдачи.
func (s *SubmissionService) OpenArtifact(ctx context.Context, actor models.User, submissionID uint) (io.ReadCloser, string, error) {
	var submission models.Submission
	if err := s.db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.NotFound("submission not found")
		}
		return nil, "", err
	}

	if submission.ParticipantID != actor.ID {
		if _, err := s.policy.AssignmentForManage(actor, submission.AssignmentID); err != nil {
			return nil, "", err
		}
	}

	if submission.ArtifactRef == "" {
		return nil, "", apperrors.NotFound("submission has no file attached")
	}

	rc, err := s.store.Open(ctx, submission.ArtifactRef)
	if err != nil {
		return nil, "", err
	}
	return rc, submission.ArtifactRef, nil
}
