package controllers

import (
	"classhub/backend/middleware"
	"classhub/backend/services"
	"classhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GradesController struct {
	Grades *services.GradeService
}

func NewGradesController(db *gorm.DB) *GradesController {
	return &GradesController{Grades: services.NewGradeService(db)}
}

// Upsert выставляет оценку; повторный вызов с той же парой
// (assignment, participant) обновляет существующую запись.
func (gc *GradesController) Upsert(c *fiber.Ctx) error {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	type gradeInput struct {
		ParticipantID uint   `json:"participant_id" validate:"required"`
		Value         int    `json:"value" validate:"min=0,max=100"`
		Feedback      string `json:"feedback"`
	}

	var input gradeInput
	if err := parseBody(c, &input); err != nil {
		return utils.HandleError(c, err)
	}

	grade, err := gc.Grades.Upsert(middleware.CurrentUser(c), assignmentID, input.ParticipantID, input.Value, input.Feedback)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Grade saved",
		"grade":   grade,
	})
}

func (gc *GradesController) OwnGrades(c *fiber.Ctx) error {
	grades, err := gc.Grades.OwnGrades(middleware.CurrentUser(c))
	if err != nil {
		return utils.HandleError(c, err)
	}

	var result []fiber.Map
	for _, grade := range grades {
		result = append(result, fiber.Map{
			"id":         grade.ID,
			"assignment": grade.Assignment.Title,
			"category":   grade.Assignment.Category,
			"value":      grade.Value,
			"feedback":   grade.Feedback,
			"graded_at":  grade.UpdatedAt,
		})
	}

	return c.JSON(result)
}

func (gc *GradesController) ProgramGrades(c *fiber.Ctx) error {
	programID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	grades, err := gc.Grades.ProgramGrades(middleware.CurrentUser(c), programID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var result []fiber.Map
	for _, grade := range grades {
		result = append(result, fiber.Map{
			"id":          grade.ID,
			"assignment":  grade.Assignment.Title,
			"participant": grade.Participant.Username,
			"value":       grade.Value,
			"feedback":    grade.Feedback,
			"graded_at":   grade.UpdatedAt,
		})
	}

	return c.JSON(result)
}
