package controllers

import (
	"io"

	"classhub/backend/middleware"
	"classhub/backend/services"
	"classhub/backend/storage"
	"classhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubmissionsController struct {
	Submissions *services.SubmissionService
}

func NewSubmissionsController(db *gorm.DB, store storage.Store) *SubmissionsController {
	return &SubmissionsController{Submissions: services.NewSubmissionService(db, store)}
}

// Submit принимает multipart-форму с необязательным файлом "file" и
// необязательным полем "text". Хотя бы одно должно присутствовать.
func (sc *SubmissionsController) Submit(c *fiber.Ctx) error {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	text := c.FormValue("text")

	var (
		file     io.Reader
		filename string
	)
	if header, err := c.FormFile("file"); err == nil && header != nil {
		f, err := header.Open()
		if err != nil {
			return utils.BadRequest(c, "Cannot read uploaded file")
		}
		defer f.Close()
		file = f
		filename = header.Filename
	}

	submission, err := sc.Submissions.Submit(c.Context(), middleware.CurrentUser(c), assignmentID, filename, file, text)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Submission saved",
		"submission": submission,
	})
}

func (sc *SubmissionsController) Own(c *fiber.Ctx) error {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	submission, err := sc.Submissions.Own(middleware.CurrentUser(c), assignmentID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(submission)
}

func (sc *SubmissionsController) ListForAssignment(c *fiber.Ctx) error {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	submissions, err := sc.Submissions.ListForAssignment(middleware.CurrentUser(c), assignmentID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(submissions)
}

func (sc *SubmissionsController) DownloadArtifact(c *fiber.Ctx) error {
	submissionID, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	rc, name, err := sc.Submissions.OpenArtifact(c.Context(), middleware.CurrentUser(c), submissionID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	defer rc.Close()

	c.Attachment(name)
	return c.SendStream(rc)
}
