package controllers

import (
	"classhub/backend/middleware"
	"classhub/backend/services"
	"classhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationsController struct {
	Notifications *services.NotificationService
}

func NewNotificationsController(db *gorm.DB) *NotificationsController {
	return &NotificationsController{Notifications: services.NewNotificationService(db)}
}

// List возвращает уведомления пользователя и помечает их прочитанными.
func (nc *NotificationsController) List(c *fiber.Ctx) error {
	notifications, err := nc.Notifications.List(middleware.CurrentUser(c))
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(notifications)
}

func (nc *NotificationsController) UnreadCount(c *fiber.Ctx) error {
	count, err := nc.Notifications.UnreadCount(middleware.CurrentUser(c))
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{"unread_count": count})
}
