package courseValidator

import (
	"learnhub/services/catalog"
	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

const requestKey = "validatedCourse"

type CreateCourseRequest struct {
	LegacyID    *string `json:"legacyId" validate:"omitempty,max=64"`
	Title       string  `json:"title" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"required,min=2"`
	Thumbnail   string  `json:"thumbnail" validate:"required,min=2"`
	Instructor  string  `json:"instructor" validate:"required,min=2,max=100"`
	Category    string  `json:"category" validate:"required,min=2,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Level       string  `json:"level" validate:"omitempty,max=50"`
	Duration    string  `json:"duration" validate:"omitempty,max=50"`
}

func (r *CreateCourseRequest) Input() catalog.CourseInput {
	return catalog.CourseInput{
		LegacyID:    r.LegacyID,
		Title:       r.Title,
		Description: r.Description,
		Thumbnail:   r.Thumbnail,
		Instructor:  r.Instructor,
		Category:    r.Category,
		Price:       r.Price,
		Level:       r.Level,
		Duration:    r.Duration,
	}
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,min=2"`
	Thumbnail   *string  `json:"thumbnail" validate:"omitempty,min=2"`
	Instructor  *string  `json:"instructor" validate:"omitempty,min=2,max=100"`
	Category    *string  `json:"category" validate:"omitempty,min=2,max=100"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Level       *string  `json:"level" validate:"omitempty,max=50"`
	Duration    *string  `json:"duration" validate:"omitempty,max=50"`
	IsPublished *bool    `json:"isPublished"`
}

func (r *UpdateCourseRequest) Update() catalog.CourseUpdate {
	return catalog.CourseUpdate{
		Title:       r.Title,
		Description: r.Description,
		Thumbnail:   r.Thumbnail,
		Instructor:  r.Instructor,
		Category:    r.Category,
		Price:       r.Price,
		Level:       r.Level,
		Duration:    r.Duration,
		IsPublished: r.IsPublished,
	}
}

type SectionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

type LessonRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=200"`
	VideoURL  string   `json:"videoUrl"`
	Content   string   `json:"content"`
	Duration  string   `json:"duration" validate:"omitempty,max=50"`
	Resources []string `json:"resources"`
}

func (r *LessonRequest) Input() catalog.LessonInput {
	return catalog.LessonInput{
		Title:     r.Title,
		VideoURL:  r.VideoURL,
		Content:   r.Content,
		Duration:  r.Duration,
		Resources: r.Resources,
	}
}

type UpdateLessonRequest struct {
	Title     *string  `json:"title" validate:"omitempty,min=1,max=200"`
	VideoURL  *string  `json:"videoUrl"`
	Content   *string  `json:"content"`
	Duration  *string  `json:"duration" validate:"omitempty,max=50"`
	Resources []string `json:"resources"`
}

func (r *UpdateLessonRequest) Update() catalog.LessonUpdate {
	return catalog.LessonUpdate{
		Title:     r.Title,
		VideoURL:  r.VideoURL,
		Content:   r.Content,
		Duration:  r.Duration,
		Resources: r.Resources,
	}
}

type QuestionRequest struct {
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0"`
}

type QuizRequest struct {
	Questions []QuestionRequest `json:"questions" validate:"required,dive"`
}

func (r *QuizRequest) Input() []catalog.QuestionInput {
	out := make([]catalog.QuestionInput, len(r.Questions))
	for i, q := range r.Questions {
		out[i] = catalog.QuestionInput{Question: q.Question, Options: q.Options, CorrectIndex: q.CorrectIndex}
	}
	return out
}

func CreateCourse() fiber.Handler { return body[CreateCourseRequest]() }
func UpdateCourse() fiber.Handler { return body[UpdateCourseRequest]() }
func Section() fiber.Handler      { return body[SectionRequest]() }
func Lesson() fiber.Handler       { return body[LessonRequest]() }
func UpdateLesson() fiber.Handler { return body[UpdateLessonRequest]() }
func Quiz() fiber.Handler         { return body[QuizRequest]() }

func body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals(requestKey, reqData)
		return c.Next()
	}
}

// Request returns the body stored by one of the validators above.
func Request[T any](c *fiber.Ctx) *T {
	req, _ := c.Locals(requestKey).(*T)
	return req
}
