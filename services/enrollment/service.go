// Package enrollment gates course access behind a paid order and creates the
// enrollment and progress pair once per student and course.
//
// Only the NONE and ENROLLED states are stored. Between Initiate and Confirm
// the order lives at the payment gateway.
package enrollment

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"learnhub/apperrors"
	"learnhub/logger"
	"learnhub/models"
	"learnhub/payment"
	"learnhub/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	gateway  payment.Gateway
	currency string
	mailer   utils.Mailer
	log      *logger.Logger
	now      func() time.Time
}

func NewService(db *gorm.DB, gateway payment.Gateway, currency string, mailer utils.Mailer, log *logger.Logger) *Service {
	return &Service{
		db:       db,
		gateway:  gateway,
		currency: currency,
		mailer:   mailer,
		log:      log.With("service", "enrollment"),
		now:      time.Now,
	}
}

// Checkout is what the client needs to open the gateway's payment widget.
type Checkout struct {
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Key         string `json:"key"`
	CourseID    uint   `json:"courseId"`
	Gateway     string `json:"gateway"`
	Token       string `json:"token,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// Customer is who the gateway bills.
type Customer struct {
	StudentID uint
	Name      string
	Email     string
}

// AmountInMinorUnits converts a price to the smallest currency unit.
func AmountInMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Initiate checks the course can be bought by the student and asks the
// gateway for an order. Nothing is written locally.
func (s *Service) Initiate(ctx context.Context, customer Customer, courseID uint) (*Checkout, error) {
	db := s.db.WithContext(ctx)

	var course models.Course
	if err := db.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
		return nil, apperrors.FromDB(err, "Course not found")
	}

	enrolled, err := s.isEnrolled(ctx, customer.StudentID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, apperrors.Conflict("Already enrolled")
	}

	amount := AmountInMinorUnits(course.Price)
	if amount <= 0 {
		return nil, apperrors.InvalidState("Course price must be greater than zero")
	}

	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:        amount,
		Currency:      s.currency,
		Receipt:       utils.ReceiptID(s.now()),
		CourseID:      course.ID,
		CourseTitle:   course.Title,
		StudentID:     customer.StudentID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
	})
	if err != nil {
		s.log.Error("Payment order creation failed", "course_id", courseID, "error", err)
		return nil, apperrors.Unavailable("Payment initialization failed", err)
	}

	return &Checkout{
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Key:         order.Key,
		CourseID:    course.ID,
		Gateway:     s.gateway.Name(),
		Token:       order.Token,
		RedirectURL: order.RedirectURL,
	}, nil
}

// Confirm verifies the payment proof and stores enrollment, progress and
// payment in one transaction. The verified order must have been created for
// this course at its current price. A retry after success returns the
// existing enrollment with created=false.
func (s *Service) Confirm(ctx context.Context, customer Customer, courseID uint, proof payment.Proof) (*models.Enrollment, bool, error) {
	existing, err := s.find(ctx, customer.StudentID, courseID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	var course models.Course
	if err := s.db.WithContext(ctx).Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
		return nil, false, apperrors.FromDB(err, "Course not found")
	}

	verification, err := s.gateway.Verify(ctx, proof)
	if err != nil {
		if errors.Is(err, payment.ErrVerificationFailed) {
			s.log.Warn("Payment verification failed", "course_id", courseID, "order_id", proof.OrderID)
			return nil, false, apperrors.InvalidState("Payment verification failed")
		}
		return nil, false, apperrors.Unavailable("Payment verification unavailable", err)
	}

	price := AmountInMinorUnits(course.Price)
	if verification.CourseID != courseID || verification.Amount != price {
		s.log.Warn("Payment does not match course",
			"course_id", courseID, "order_id", verification.OrderID,
			"paid_course_id", verification.CourseID, "paid_amount", verification.Amount, "price", price)
		return nil, false, apperrors.InvalidState("Payment does not match course")
	}

	raw, err := json.Marshal(verification.Raw)
	if err != nil {
		return nil, false, apperrors.Internal("Failed to record payment", err)
	}
	enrollment := models.Enrollment{StudentID: customer.StudentID, CourseID: courseID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		progress := models.Progress{
			StudentID: customer.StudentID,
			CourseID:  courseID,
			Status:    models.ProgressInProgress,
		}
		if err := tx.Create(&progress).Error; err != nil {
			return err
		}
		return tx.Create(&models.Payment{
			EnrollmentID: enrollment.ID,
			StudentID:    customer.StudentID,
			CourseID:     courseID,
			Gateway:      s.gateway.Name(),
			OrderID:      verification.OrderID,
			PaymentID:    verification.PaymentID,
			Signature:    verification.Signature,
			Amount:       verification.Amount,
			Currency:     s.currency,
			Status:       models.PaymentStatusPaid,
			Raw:          datatypes.JSON(raw),
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, s.duplicate(ctx, customer.StudentID, courseID)
		}
		return nil, false, apperrors.FromDB(err, "")
	}

	s.log.Info("Student enrolled", "course_id", courseID, "enrollment_id", enrollment.ID)
	if customer.Email != "" {
		utils.SendAsync(s.mailer, s.log, utils.EnrollmentConfirmationEmail(customer.Name, course.Title), customer.Email)
	}
	return &enrollment, true, nil
}

// ListForStudent returns the student's enrollments with their courses.
func (s *Service) ListForStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error) {
	enrollments := []models.Enrollment{}
	err := s.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return enrollments, nil
}

// ListAll returns every enrollment with course and student name/email.
func (s *Service) ListAll(ctx context.Context) ([]models.Enrollment, error) {
	enrollments := []models.Enrollment{}
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "role")
		}).
		Order("created_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return enrollments, nil
}

func (s *Service) find(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return &enrollment, nil
}

// duplicate tells a concurrent enrollment apart from an order id that was
// already spent on another enrollment.
func (s *Service) duplicate(ctx context.Context, studentID, courseID uint) error {
	existing, err := s.find(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.Conflict("Already enrolled")
	}
	return apperrors.InvalidState("Payment already used")
}

func (s *Service) isEnrolled(ctx context.Context, studentID, courseID uint) (bool, error) {
	e, err := s.find(ctx, studentID, courseID)
	return e != nil, err
}
