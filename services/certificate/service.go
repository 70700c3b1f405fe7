// Package certificate issues one certificate per completed course.
package certificate

import (
	"context"
	"errors"
	"strings"
	"time"

	"learnhub/apperrors"
	"learnhub/logger"
	"learnhub/models"
	"learnhub/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	mailer utils.Mailer
	log    *logger.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, mailer utils.Mailer, log *logger.Logger) *Service {
	return &Service{db: db, mailer: mailer, log: log.With("service", "certificate"), now: time.Now}
}

// NewNumber returns a certificate number of the form LH-YYYYMMDD-XXXXXXXX.
func NewNumber(issuedAt time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "LH-" + issuedAt.UTC().Format("20060102") + "-" + id[:12]
}

// Issue returns the student's certificate for the course, creating it when
// the course is completed and none exists yet.
func (s *Service) Issue(ctx context.Context, studentID, courseID uint) (*models.Certificate, bool, error) {
	db := s.db.WithContext(ctx)

	var progress models.Progress
	err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&progress).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.FromDB(err, "")
	}
	if err != nil || progress.Status != models.ProgressCompleted {
		return nil, false, apperrors.InvalidState("Course not completed")
	}

	existing, err := s.find(db, studentID, courseID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return nil, false, apperrors.FromDB(err, "Course not found")
	}

	issuedAt := s.now()
	cert := models.Certificate{
		StudentID:         studentID,
		CourseID:          courseID,
		CertificateNumber: NewNumber(issuedAt),
		IssuedAt:          issuedAt,
	}
	if err := db.Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent request issued it first
			winner, findErr := s.find(db, studentID, courseID)
			if findErr == nil && winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, apperrors.FromDB(err, "")
	}
	cert.Course = &course

	s.log.Info("Certificate issued", "course_id", courseID, "certificate", cert.CertificateNumber)
	s.notify(db, studentID, course.Title, cert.CertificateNumber)
	return &cert, true, nil
}

// ListForStudent returns the student's certificates with their courses,
// newest first.
func (s *Service) ListForStudent(ctx context.Context, studentID uint) ([]models.Certificate, error) {
	certs := []models.Certificate{}
	err := s.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("issued_at DESC, id DESC").
		Find(&certs).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return certs, nil
}

func (s *Service) find(db *gorm.DB, studentID, courseID uint) (*models.Certificate, error) {
	var cert models.Certificate
	err := db.Preload("Course").Where("student_id = ? AND course_id = ?", studentID, courseID).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return &cert, nil
}

func (s *Service) notify(db *gorm.DB, studentID uint, courseTitle, number string) {
	if s.mailer == nil {
		return
	}
	var student models.User
	if err := db.Select("id", "name", "email").First(&student, studentID).Error; err != nil {
		s.log.Warn("Certificate email skipped", "student_id", studentID, "error", err)
		return
	}
	utils.SendAsync(s.mailer, s.log, utils.CertificateIssuedEmail(student.Name, courseTitle, number), student.Email)
}
