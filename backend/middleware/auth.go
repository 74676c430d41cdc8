package middleware

import (
	"errors"

	"classhub/backend/config"
	"classhub/backend/models"
	"classhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserKey — ключ в c.Locals, под которым AuthMiddleware кладет текущего пользователя.
const UserKey = "user"

// AuthMiddleware проверяет JWT и загружает пользователя из базы.
// Роль и владение сущностями проверяются дальше, в policy, при каждом вызове.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Unauthorized",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not query database",
			})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser достает пользователя, положенного AuthMiddleware.
func CurrentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals(UserKey).(models.User)
	return user
}
