package controllers

import (
	"errors"
	"strconv"

	"classhub/backend/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseBody разбирает JSON-тело и прогоняет его через validator.
// Ошибки полей собираются в ValidationError c картой поле -> правило.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.Validation("cannot parse request body")
	}

	if err := validate.Struct(dst); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.ValidationFields("invalid request body", fields)
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid " + name + " parameter")
	}
	return uint(id), nil
}
