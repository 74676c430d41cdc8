package controllers

import (
	"classhub/backend/middleware"
	"classhub/backend/services"
	"classhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AssignmentsController struct {
	Assignments *services.AssignmentService
}

func NewAssignmentsController(db *gorm.DB) *AssignmentsController {
	return &AssignmentsController{Assignments: services.NewAssignmentService(db)}
}

type assignmentInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD
}

func (ac *AssignmentsController) Create(c *fiber.Ctx) error {
	programID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	var input assignmentInput
	if err := parseBody(c, &input); err != nil {
		return utils.HandleError(c, err)
	}

	assignment, err := ac.Assignments.Create(middleware.CurrentUser(c), programID, services.AssignmentInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Assignment created",
		"assignment": assignment,
	})
}

func (ac *AssignmentsController) Update(c *fiber.Ctx) error {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	var input assignmentInput
	if err := parseBody(c, &input); err != nil {
		return utils.HandleError(c, err)
	}

	assignment, err := ac.Assignments.Update(middleware.CurrentUser(c), assignmentID, services.AssignmentInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Assignment updated",
		"assignment": assignment,
	})
}

func (ac *AssignmentsController) Get(c *fiber.Ctx) error {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	detail, err := ac.Assignments.Get(middleware.CurrentUser(c), assignmentID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(detail)
}

func (ac *AssignmentsController) List(c *fiber.Ctx) error {
	programID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	assignments, err := ac.Assignments.ListForProgram(middleware.CurrentUser(c), programID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(assignments)
}

func (ac *AssignmentsController) Delete(c *fiber.Ctx) error {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := ac.Assignments.Delete(middleware.CurrentUser(c), assignmentID); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.NoContent(c)
}
