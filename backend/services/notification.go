package services

import (
	"classhub/backend/models"

	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify создает уведомление для пользователя. Ошибка не роняет основную
// операцию — вызывающие её игнорируют.
func (s *NotificationService) Notify(userID uint, message, kind string, referenceID uint) error {
	notification := models.Notification{
		UserID:      userID,
		Message:     message,
		Kind:        kind,
		ReferenceID: referenceID,
	}
	return s.db.Create(&notification).Error
}

// List возвращает уведомления пользователя, новые первыми, и помечает
// непрочитанные как прочитанные.
func (s *NotificationService) List(actor models.User) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.ID, false).
		Update("is_read", true).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

func (s *NotificationService) UnreadCount(actor models.User) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.ID, false).
		Count(&count).Error
	return count, err
}
