package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"classhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Сценарий из жизни: организатор создает программу, зачисляет участника,
// выдает задание, участник сдает работу, организатор оценивает, потом
// пересматривает оценку.
func TestFullWorkflow(t *testing.T) {
	app, db := newTestApp(t)

	orgToken, _ := registerUser(t, app, "olga", models.RoleOrganizer)
	partToken, partID := registerUser(t, app, "pavel", models.RoleParticipant)

	// Организатор создает программу.
	resp := doJSON(t, app, "POST", "/api/programs/", orgToken, map[string]string{
		"name":    "Algebra",
		"subject": "Math",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	programID := uint(decode(t, resp)["program"].(map[string]interface{})["ID"].(float64))

	// Зачисляет участника.
	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/enrollments", programID), orgToken,
		map[string]uint{"participant_id": partID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Выдает задание со сроком через неделю.
	due := time.Now().UTC().Add(7 * 24 * time.Hour).Format("2006-01-02")
	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/assignments", programID), orgToken,
		map[string]string{
			"title":       "HW1",
			"description": "solve the equations",
			"due_date":    due,
		})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assignmentID := uint(decode(t, resp)["assignment"].(map[string]interface{})["ID"].(float64))

	// Участник видит программу в своем списке.
	resp = doJSON(t, app, "GET", "/api/programs/", partToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	programs := decodeList(t, resp)
	require.Len(t, programs, 1)
	assert.Equal(t, "Algebra", programs[0]["Name"])

	// Сдает работу файлом.
	resp = submitFile(t, app, partToken, assignmentID, "hw1.pdf", "my solution", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	submission := decode(t, resp)["submission"].(map[string]interface{})
	assert.NotEmpty(t, submission["ArtifactRef"])
	assert.Equal(t, false, submission["IsLate"])

	// Организатор видит сдачу и выставляет оценку.
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/assignments/%d/submissions", assignmentID), orgToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decodeList(t, resp), 1)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/assignments/%d/grades", assignmentID), orgToken,
		map[string]interface{}{
			"participant_id": partID,
			"value":          85,
			"feedback":       "good work",
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// У участника ровно одна оценка.
	resp = doJSON(t, app, "GET", "/api/grades", partToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	grades := decodeList(t, resp)
	require.Len(t, grades, 1)
	assert.Equal(t, "HW1", grades[0]["assignment"])
	assert.EqualValues(t, 85, grades[0]["value"])
	assert.Equal(t, "good work", grades[0]["feedback"])

	// Повторная оценка обновляет ту же запись.
	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/assignments/%d/grades", assignmentID), orgToken,
		map[string]interface{}{
			"participant_id": partID,
			"value":          90,
			"feedback":       "revised",
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/grades", partToken, nil)
	grades = decodeList(t, resp)
	require.Len(t, grades, 1)
	assert.EqualValues(t, 90, grades[0]["value"])
	assert.Equal(t, "revised", grades[0]["feedback"])

	var count int64
	db.Model(&models.Grade{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestOutsiderDenied(t *testing.T) {
	app, db := newTestApp(t)

	orgToken, _ := registerUser(t, app, "olga", models.RoleOrganizer)
	_, enrolledID := registerUser(t, app, "pavel", models.RoleParticipant)
	outsiderToken, _ := registerUser(t, app, "quentin", models.RoleParticipant)

	resp := doJSON(t, app, "POST", "/api/programs/", orgToken, map[string]string{
		"name":    "Algebra",
		"subject": "Math",
	})
	programID := uint(decode(t, resp)["program"].(map[string]interface{})["ID"].(float64))

	doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/enrollments", programID), orgToken,
		map[string]uint{"participant_id": enrolledID})

	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/assignments", programID), orgToken,
		map[string]string{"title": "HW1"})
	assignmentID := uint(decode(t, resp)["assignment"].(map[string]interface{})["ID"].(float64))

	// Незачисленный участник не видит программу и не может сдать работу.
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/programs/%d", programID), outsiderToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = submitFile(t, app, outsiderToken, assignmentID, "hw1.pdf", "sneaky", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var count int64
	db.Model(&models.Submission{}).Count(&count)
	assert.Zero(t, count)

	// Несуществующее задание — 404, а не 403.
	resp = submitFile(t, app, outsiderToken, 9999, "hw1.pdf", "sneaky", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDuplicateEnrollmentConflict(t *testing.T) {
	app, _ := newTestApp(t)

	orgToken, _ := registerUser(t, app, "olga", models.RoleOrganizer)
	_, partID := registerUser(t, app, "pavel", models.RoleParticipant)

	resp := doJSON(t, app, "POST", "/api/programs/", orgToken, map[string]string{
		"name":    "Algebra",
		"subject": "Math",
	})
	programID := uint(decode(t, resp)["program"].(map[string]interface{})["ID"].(float64))

	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/enrollments", programID), orgToken,
		map[string]uint{"participant_id": partID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/enrollments", programID), orgToken,
		map[string]uint{"participant_id": partID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestForeignOrganizerDenied(t *testing.T) {
	app, _ := newTestApp(t)

	ownerToken, _ := registerUser(t, app, "olga", models.RoleOrganizer)
	strangerToken, _ := registerUser(t, app, "oleg", models.RoleOrganizer)

	resp := doJSON(t, app, "POST", "/api/programs/", ownerToken, map[string]string{
		"name":    "Algebra",
		"subject": "Math",
	})
	programID := uint(decode(t, resp)["program"].(map[string]interface{})["ID"].(float64))

	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/assignments", programID), strangerToken,
		map[string]string{"title": "HW1"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/programs/%d/grades", programID), strangerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/programs/%d", programID), strangerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestNotificationsFlow(t *testing.T) {
	app, _ := newTestApp(t)

	orgToken, _ := registerUser(t, app, "olga", models.RoleOrganizer)
	partToken, partID := registerUser(t, app, "pavel", models.RoleParticipant)

	resp := doJSON(t, app, "POST", "/api/programs/", orgToken, map[string]string{
		"name":    "Algebra",
		"subject": "Math",
	})
	programID := uint(decode(t, resp)["program"].(map[string]interface{})["ID"].(float64))

	doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/enrollments", programID), orgToken,
		map[string]uint{"participant_id": partID})
	doJSON(t, app, "POST", fmt.Sprintf("/api/programs/%d/assignments", programID), orgToken,
		map[string]string{"title": "HW1"})

	// Зачисление и новое задание дают два непрочитанных уведомления.
	resp = doJSON(t, app, "GET", "/api/notifications/unread_count", partToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, decode(t, resp)["unread_count"])

	resp = doJSON(t, app, "GET", "/api/notifications", partToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)

	resp = doJSON(t, app, "GET", "/api/notifications/unread_count", partToken, nil)
	assert.EqualValues(t, 0, decode(t, resp)["unread_count"])
}
