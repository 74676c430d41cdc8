package controllers

import (
	"errors"

	"classhub/backend/config"
	"classhub/backend/middleware"
	"classhub/backend/models"
	"classhub/backend/services"
	"classhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{Auth: services.NewAuthService(db, cfg)}
}

type registerInput struct {
	Username  string `json:"username" validate:"required,min=4,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required"`
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a user account with a fixed organizer or participant role
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := parseBody(c, &input); err != nil {
		return utils.HandleError(c, err)
	}

	user, token, err := ac.Auth.Register(services.RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  userView(user),
	})
}

// [+] Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type loginInput struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var input loginInput
	if err := parseBody(c, &input); err != nil {
		return utils.HandleError(c, err)
	}

	user, token, err := ac.Auth.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  userView(user),
	})
}

func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	return c.JSON(userView(middleware.CurrentUser(c)))
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	type profileInput struct {
		Email     string `json:"email" validate:"omitempty,email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	var input profileInput
	if err := parseBody(c, &input); err != nil {
		return utils.HandleError(c, err)
	}

	user, err := ac.Auth.UpdateProfile(middleware.CurrentUser(c), services.ProfileInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(userView(user))
}

func userView(user models.User) fiber.Map {
	return fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"role":       user.Role,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}
}
