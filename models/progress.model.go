package models

import "time"

const (
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

type Progress struct {
	Base
	StudentID   uint       `gorm:"not null;uniqueIndex:idx_progress_student_course" json:"studentId"`
	CourseID    uint       `gorm:"not null;uniqueIndex:idx_progress_student_course;index" json:"courseId"`
	Status      string     `gorm:"type:varchar(20);not null;default:'in_progress'" json:"status"`
	Score       int        `gorm:"not null;default:0" json:"score"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Completions      []LessonCompletion `gorm:"foreignKey:ProgressID" json:"-"`
	LessonsCompleted []uint             `gorm:"-" json:"lessonsCompleted"`
}

func (Progress) TableName() string {
	return "progress"
}

// LessonCompletion is one member of a progress record's completed-lesson set.
type LessonCompletion struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ProgressID uint      `gorm:"not null;uniqueIndex:idx_completion_progress_lesson" json:"progressId"`
	LessonID   uint      `gorm:"not null;uniqueIndex:idx_completion_progress_lesson" json:"lessonId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FillLessonsCompleted copies the preloaded completion rows into LessonsCompleted.
func (p *Progress) FillLessonsCompleted() {
	p.LessonsCompleted = make([]uint, 0, len(p.Completions))
	for _, c := range p.Completions {
		p.LessonsCompleted = append(p.LessonsCompleted, c.LessonID)
	}
}
