package models

import (
	"gorm.io/datatypes"
)

const (
	PaymentStatusPaid = "PAID"
)

// Payment records the settled gateway transaction behind an enrollment.
type Payment struct {
	Base
	EnrollmentID uint           `gorm:"not null;index" json:"enrollmentId"`
	StudentID    uint           `gorm:"not null;index" json:"studentId"`
	CourseID     uint           `gorm:"not null;index" json:"courseId"`
	Gateway      string         `gorm:"type:varchar(50);not null" json:"gateway"`
	OrderID      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"orderId"`
	PaymentID    string         `gorm:"type:varchar(100);index" json:"paymentId"`
	Signature    string         `gorm:"type:varchar(255)" json:"-"`
	Amount       int64          `gorm:"not null" json:"amount"`
	Currency     string         `gorm:"type:varchar(10);not null" json:"currency"`
	Status       string         `gorm:"type:varchar(20);not null" json:"status"`
	Raw          datatypes.JSON `json:"-"`
}
