package models

import (
	"gorm.io/datatypes"
)

type Course struct {
	Base
	LegacyID    *string `gorm:"type:varchar(64);uniqueIndex" json:"legacyId,omitempty"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Thumbnail   string  `gorm:"type:text" json:"thumbnail"`
	Instructor  string  `gorm:"type:varchar(255)" json:"instructor"`
	Category    string  `gorm:"type:varchar(100);index" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	Rating      float64 `gorm:"default:0" json:"rating"`
	Students    int     `gorm:"default:0" json:"students"`
	Duration    string  `gorm:"type:varchar(50)" json:"duration"`
	Level       string  `gorm:"type:varchar(50)" json:"level"`
	IsPublished bool    `gorm:"index" json:"isPublished"`
	CreatedByID *uint   `json:"createdBy,omitempty"`

	Sections []Section      `gorm:"foreignKey:CourseID" json:"sections"`
	Lessons  []Lesson       `gorm:"foreignKey:CourseID" json:"lessons"`
	Quiz     []QuizQuestion `gorm:"foreignKey:CourseID" json:"quiz,omitempty"`
}

// Section groups lessons inside a course.
type Section struct {
	Base
	CourseID   uint     `gorm:"not null;index" json:"courseId"`
	Title      string   `gorm:"type:varchar(255);not null" json:"title"`
	OrderIndex int      `gorm:"default:0" json:"orderIndex"`
	Lessons    []Lesson `gorm:"foreignKey:SectionID" json:"lessons"`
}

// Lesson belongs to a course and optionally to one of its sections. VideoRef
// is either an absolute URL or an object key in the media bucket.
type Lesson struct {
	Base
	CourseID   uint                        `gorm:"not null;index" json:"courseId"`
	SectionID  *uint                       `gorm:"index" json:"sectionId,omitempty"`
	Title      string                      `gorm:"type:varchar(255);not null" json:"title"`
	VideoRef   string                      `gorm:"type:text" json:"videoUrl"`
	Content    string                      `gorm:"type:text" json:"content"`
	Duration   string                      `gorm:"type:varchar(50)" json:"duration"`
	Resources  datatypes.JSONSlice[string] `json:"resources"`
	OrderIndex int                         `gorm:"default:0" json:"orderIndex"`
}

type QuizQuestion struct {
	Base
	CourseID     uint                        `gorm:"not null;index" json:"courseId"`
	Question     string                      `gorm:"type:text;not null" json:"question"`
	Options      datatypes.JSONSlice[string] `json:"options"`
	CorrectIndex int                         `json:"correctIndex"`
	OrderIndex   int                         `gorm:"default:0" json:"orderIndex"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
