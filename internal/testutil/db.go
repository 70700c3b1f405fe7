// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"learnhub/database"
	"learnhub/logger"
	"learnhub/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), logger.Nop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateStudent stores a student account.
func CreateStudent(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Student", Email: email, Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateCourse stores a course with one lesson per title and the given
// quiz answer key.
func CreateCourse(t *testing.T, db *gorm.DB, price float64, published bool, lessonTitles []string, answerKey []int) models.Course {
	t.Helper()
	course := models.Course{
		Title:       "Course",
		Description: "Description",
		Price:       price,
		IsPublished: published,
	}
	require.NoError(t, db.Create(&course).Error)
	for i, title := range lessonTitles {
		lesson := models.Lesson{CourseID: course.ID, Title: title, OrderIndex: i}
		require.NoError(t, db.Create(&lesson).Error)
		course.Lessons = append(course.Lessons, lesson)
	}
	for i, correct := range answerKey {
		q := models.QuizQuestion{
			CourseID:     course.ID,
			Question:     fmt.Sprintf("Q%d", i+1),
			Options:      []string{"a", "b", "c"},
			CorrectIndex: correct,
			OrderIndex:   i,
		}
		require.NoError(t, db.Create(&q).Error)
		course.Quiz = append(course.Quiz, q)
	}
	return course
}

// Enroll writes the enrollment and empty progress pair directly.
func Enroll(t *testing.T, db *gorm.DB, studentID, courseID uint) models.Progress {
	t.Helper()
	require.NoError(t, db.Create(&models.Enrollment{StudentID: studentID, CourseID: courseID}).Error)
	progress := models.Progress{StudentID: studentID, CourseID: courseID, Status: models.ProgressInProgress}
	require.NoError(t, db.Create(&progress).Error)
	return progress
}
