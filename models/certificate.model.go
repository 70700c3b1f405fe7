package models

import "time"

type Certificate struct {
	Base
	StudentID         uint      `gorm:"not null;uniqueIndex:idx_certificate_student_course" json:"studentId"`
	CourseID          uint      `gorm:"not null;uniqueIndex:idx_certificate_student_course;index" json:"courseId"`
	CertificateNumber string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"certificateNumber"`
	IssuedAt          time.Time `gorm:"not null" json:"issuedAt"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
