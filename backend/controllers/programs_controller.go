package controllers

import (
	"classhub/backend/middleware"
	"classhub/backend/models"
	"classhub/backend/services"
	"classhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgramsController struct {
	Programs *services.ProgramService
}

func NewProgramsController(db *gorm.DB) *ProgramsController {
	return &ProgramsController{Programs: services.NewProgramService(db)}
}

func (pc *ProgramsController) Create(c *fiber.Ctx) error {
	type programInput struct {
		Name    string `json:"name" validate:"required,max=100"`
		Subject string `json:"subject" validate:"required,max=100"`
	}

	var input programInput
	if err := parseBody(c, &input); err != nil {
		return utils.HandleError(c, err)
	}

	program, err := pc.Programs.Create(middleware.CurrentUser(c), input.Name, input.Subject)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Program created",
		"program": program,
	})
}

// List возвращает организатору его программы, участнику — программы,
// в которые он зачислен.
func (pc *ProgramsController) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var (
		programs []models.Program
		err      error
	)
	if actor.Role == models.RoleOrganizer {
		programs, err = pc.Programs.ListOwned(actor)
	} else {
		programs, err = pc.Programs.ListEnrolled(actor)
	}
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(programs)
}

func (pc *ProgramsController) Detail(c *fiber.Ctx) error {
	programID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	detail, err := pc.Programs.Detail(middleware.CurrentUser(c), programID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(detail)
}

func (pc *ProgramsController) Delete(c *fiber.Ctx) error {
	programID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := pc.Programs.Delete(middleware.CurrentUser(c), programID); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.NoContent(c)
}

func (pc *ProgramsController) Enroll(c *fiber.Ctx) error {
	programID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	type enrollInput struct {
		ParticipantID uint `json:"participant_id" validate:"required"`
	}

	var input enrollInput
	if err := parseBody(c, &input); err != nil {
		return utils.HandleError(c, err)
	}

	enrollment, err := pc.Programs.Enroll(middleware.CurrentUser(c), programID, input.ParticipantID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Participant enrolled",
		"enrollment": enrollment,
	})
}

func (pc *ProgramsController) Unenroll(c *fiber.Ctx) error {
	programID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	participantID, err := paramID(c, "participantId")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := pc.Programs.Unenroll(middleware.CurrentUser(c), programID, participantID); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.NoContent(c)
}
