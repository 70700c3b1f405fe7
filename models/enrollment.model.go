package models

// Enrollment asserts that a student paid for a course. The compound unique
// index is what keeps a (student, course) pair from enrolling twice.
type Enrollment struct {
	Base
	StudentID uint `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"studentId"`
	CourseID  uint `gorm:"not null;uniqueIndex:idx_enrollment_student_course;index" json:"courseId"`

	Course  *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Student *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}
