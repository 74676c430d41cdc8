package services

import (
	"testing"
	"time"

	"classhub/backend/config"
	"classhub/backend/models"
	"classhub/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Одно соединение: каждая новая связь с ":memory:" — отдельная база.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "testsecret"}
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		FirstName:    "Test",
		LastName:     "User",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProgram(t *testing.T, db *gorm.DB, organizer models.User, name string) models.Program {
	t.Helper()

	program := models.Program{
		Name:        name,
		Subject:     "Mathematics",
		OrganizerID: organizer.ID,
	}
	require.NoError(t, db.Create(&program).Error)
	return program
}

func enrollParticipant(t *testing.T, db *gorm.DB, program models.Program, participant models.User) {
	t.Helper()

	require.NoError(t, db.Create(&models.Enrollment{
		ParticipantID: participant.ID,
		ProgramID:     program.ID,
	}).Error)
}

func createAssignment(t *testing.T, db *gorm.DB, program models.Program, due *time.Time) models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		ProgramID:   program.ID,
		OrganizerID: program.OrganizerID,
		Title:       "HW1",
		Category:    models.CategoryHomework,
		DueDate:     due,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}
