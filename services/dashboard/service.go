// Package dashboard aggregates the admin back-office figures.
package dashboard

import (
	"context"
	"time"

	"learnhub/apperrors"
	"learnhub/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

type Stats struct {
	TotalCourses         int64 `json:"totalCourses"`
	PublishedCourses     int64 `json:"publishedCourses"`
	TotalStudents        int64 `json:"totalStudents"`
	TotalEnrollments     int64 `json:"totalEnrollments"`
	EnrollmentsToday     int64 `json:"enrollmentsToday"`
	EnrollmentsThisMonth int64 `json:"enrollmentsThisMonth"`
	CompletedCourses     int64 `json:"completedCourses"`
	CertificatesIssued   int64 `json:"certificatesIssued"`
	RevenueThisMonth     int64 `json:"revenueThisMonth"` // minor units
	TotalRevenue         int64 `json:"totalRevenue"`
}

type RecentEnrollment struct {
	StudentName string    `json:"studentName"`
	CourseTitle string    `json:"courseTitle"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}

type Summary struct {
	Stats             Stats              `json:"stats"`
	RecentEnrollments []RecentEnrollment `json:"recentEnrollments"`
}

// Summary counts catalog, enrollment and revenue figures. Day and month
// windows follow the server's local time.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	db := s.db.WithContext(ctx)
	t := now.With(s.now())
	dayStart, monthStart := t.BeginningOfDay(), t.BeginningOfMonth()

	var st Stats
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&st.TotalCourses, db.Model(&models.Course{})},
		{&st.PublishedCourses, db.Model(&models.Course{}).Where("is_published = ?", true)},
		{&st.TotalStudents, db.Model(&models.User{}).Where("role = ?", models.RoleStudent)},
		{&st.TotalEnrollments, db.Model(&models.Enrollment{})},
		{&st.EnrollmentsToday, db.Model(&models.Enrollment{}).Where("created_at >= ?", dayStart)},
		{&st.EnrollmentsThisMonth, db.Model(&models.Enrollment{}).Where("created_at >= ?", monthStart)},
		{&st.CompletedCourses, db.Model(&models.Progress{}).Where("status = ?", models.ProgressCompleted)},
		{&st.CertificatesIssued, db.Model(&models.Certificate{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, apperrors.FromDB(err, "")
		}
	}

	paid := db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusPaid)
	if err := paid.Session(&gorm.Session{}).Select("COALESCE(SUM(amount), 0)").Scan(&st.TotalRevenue).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	if err := paid.Session(&gorm.Session{}).Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&st.RevenueThisMonth).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}

	var latest []models.Enrollment
	err := db.Preload("Course").
		Preload("Student", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Order("created_at DESC").
		Limit(5).
		Find(&latest).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	recent := make([]RecentEnrollment, 0, len(latest))
	for _, e := range latest {
		r := RecentEnrollment{EnrolledAt: e.CreatedAt}
		if e.Student != nil {
			r.StudentName = e.Student.Name
		}
		if e.Course != nil {
			r.CourseTitle = e.Course.Title
		}
		recent = append(recent, r)
	}

	return &Summary{Stats: st, RecentEnrollments: recent}, nil
}
