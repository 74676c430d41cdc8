package utils

import (
	"errors"
	"net/http"

	"classhub/backend/apperrors"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse структура для успешных ответов
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success создает успешный JSON ответ
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// Error создает JSON ответ с ошибкой
func Error(c *fiber.Ctx, status int, err error, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// HandleError отображает доменную ошибку в HTTP-статус. Всё, что не входит
// в таксономию apperrors, считается внутренней ошибкой сервера.
func HandleError(c *fiber.Ctx, err error) error {
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		status := fiber.StatusInternalServerError
		switch ae.Kind {
		case apperrors.KindValidation:
			status = fiber.StatusUnprocessableEntity
		case apperrors.KindConflict:
			status = fiber.StatusConflict
		case apperrors.KindAuthorization:
			status = fiber.StatusForbidden
		case apperrors.KindNotFound:
			status = fiber.StatusNotFound
		}
		if ae.Fields != nil {
			return Error(c, status, ae, ae.Fields)
		}
		return Error(c, status, ae)
	}

	return Error(c, fiber.StatusInternalServerError, errors.New("internal server error"))
}

// Unauthorized отправляет ответ 401 Unauthorized
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, fiber.NewError(fiber.StatusUnauthorized, message))
}

// BadRequest отправляет ответ 400 Bad Request
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, fiber.NewError(fiber.StatusBadRequest, message))
}

// NoContent отправляет ответ 204 No Content
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
