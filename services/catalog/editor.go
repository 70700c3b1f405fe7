package catalog

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"learnhub/apperrors"
	"learnhub/models"

	"gorm.io/gorm"
)

const maxPriceDigits = 9

type CourseInput struct {
	LegacyID    *string
	Title       string
	Description string
	Thumbnail   string
	Instructor  string
	Category    string
	Price       float64
	Level       string
	Duration    string
}

// CourseUpdate carries only the fields the admin sent.
type CourseUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
	Instructor  *string
	Category    *string
	Price       *float64
	Level       *string
	Duration    *string
	IsPublished *bool
}

type LessonInput struct {
	Title     string
	VideoURL  string
	Content   string
	Duration  string
	Resources []string
}

type LessonUpdate struct {
	Title     *string
	VideoURL  *string
	Content   *string
	Duration  *string
	Resources []string
}

type QuestionInput struct {
	Question     string
	Options      []string
	CorrectIndex int
}

// ValidatePrice requires a positive finite price of at most nine digits.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return apperrors.Invalid("Price must be a positive number")
	}
	digits := 0
	for _, r := range strconv.FormatFloat(price, 'f', -1, 64) {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits > maxPriceDigits {
		return apperrors.Invalid("Price cannot exceed 9 digits")
	}
	return nil
}

func validateCourseInput(in CourseInput) error {
	for _, field := range []string{in.Title, in.Description, in.Thumbnail, in.Instructor, in.Category} {
		if len(strings.TrimSpace(field)) < 2 {
			return apperrors.Invalid("All fields are required, must be at least 2 characters, and price must be a positive number")
		}
	}
	return ValidatePrice(in.Price)
}

// ValidateQuiz checks every question has at least two options and an
// answer index that points at one of them.
func ValidateQuiz(questions []QuestionInput) error {
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return apperrors.Invalid("Question " + strconv.Itoa(i+1) + " is empty")
		}
		if len(q.Options) < 2 {
			return apperrors.Invalid("Question " + strconv.Itoa(i+1) + " needs at least 2 options")
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return apperrors.Invalid("Question " + strconv.Itoa(i+1) + " has an out of range correct answer")
		}
	}
	return nil
}

// Create stores a course. New courses are published immediately.
func (s *Service) Create(ctx context.Context, in CourseInput, createdBy *uint) (*models.Course, error) {
	if err := validateCourseInput(in); err != nil {
		return nil, err
	}
	course := models.Course{
		LegacyID:    in.LegacyID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Thumbnail:   strings.TrimSpace(in.Thumbnail),
		Instructor:  strings.TrimSpace(in.Instructor),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Level:       in.Level,
		Duration:    in.Duration,
		IsPublished: true,
		CreatedByID: createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Course already exists")
		}
		return nil, apperrors.FromDB(err, "")
	}
	s.invalidate(ctx)
	s.log.Info("Course created", "course_id", course.ID)
	return &course, nil
}

func (s *Service) Update(ctx context.Context, id uint, upd CourseUpdate) (*models.Course, error) {
	course, err := s.mustCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	setText := func(column string, v *string) {
		if v != nil {
			changes[column] = strings.TrimSpace(*v)
		}
	}
	setText("title", upd.Title)
	setText("description", upd.Description)
	setText("thumbnail", upd.Thumbnail)
	setText("instructor", upd.Instructor)
	setText("category", upd.Category)
	setText("level", upd.Level)
	setText("duration", upd.Duration)
	if upd.Price != nil {
		if err := ValidatePrice(*upd.Price); err != nil {
			return nil, err
		}
		changes["price"] = *upd.Price
	}
	if upd.IsPublished != nil {
		changes["is_published"] = *upd.IsPublished
	}
	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(course).Updates(changes).Error; err != nil {
			return nil, apperrors.FromDB(err, "")
		}
		s.invalidate(ctx)
	}
	return s.find(ctx, strconv.FormatUint(uint64(id), 10))
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Course{}, id)
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Course not found")
	}
	s.invalidate(ctx)
	s.log.Info("Course deleted", "course_id", id)
	return nil
}

func (s *Service) Publish(ctx context.Context, id uint) (*models.Course, error) {
	published := true
	return s.Update(ctx, id, CourseUpdate{IsPublished: &published})
}

func (s *Service) AddSection(ctx context.Context, courseID uint, title string) (*models.Section, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.Invalid("Section title is required")
	}
	if _, err := s.mustCourse(ctx, courseID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Section{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	section := models.Section{CourseID: courseID, Title: title, OrderIndex: int(count)}
	if err := s.db.WithContext(ctx).Create(&section).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	section.Lessons = []models.Lesson{}
	s.invalidate(ctx)
	return &section, nil
}

func (s *Service) UpdateSection(ctx context.Context, courseID, sectionID uint, title *string) (*models.Section, error) {
	section, err := s.mustSection(ctx, courseID, sectionID)
	if err != nil {
		return nil, err
	}
	if title != nil {
		if err := s.db.WithContext(ctx).Model(section).Update("title", strings.TrimSpace(*title)).Error; err != nil {
			return nil, apperrors.FromDB(err, "")
		}
		s.invalidate(ctx)
	}
	return section, nil
}

// DeleteSection removes a section together with its lessons.
func (s *Service) DeleteSection(ctx context.Context, courseID, sectionID uint) error {
	section, err := s.mustSection(ctx, courseID, sectionID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", section.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(section).Error
	})
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	s.invalidate(ctx)
	return nil
}

// AddLesson appends a lesson to the course, or to one of its sections when
// sectionID is set.
func (s *Service) AddLesson(ctx context.Context, courseID uint, sectionID *uint, in LessonInput) (*models.Lesson, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.Invalid("Lesson title is required")
	}
	if _, err := s.mustCourse(ctx, courseID); err != nil {
		return nil, err
	}
	if sectionID != nil {
		if _, err := s.mustSection(ctx, courseID, *sectionID); err != nil {
			return nil, err
		}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	lesson := models.Lesson{
		CourseID:   courseID,
		SectionID:  sectionID,
		Title:      title,
		VideoRef:   strings.TrimSpace(in.VideoURL),
		Content:    strings.TrimSpace(in.Content),
		Duration:   strings.TrimSpace(in.Duration),
		Resources:  in.Resources,
		OrderIndex: int(count),
	}
	if lesson.Resources == nil {
		lesson.Resources = []string{}
	}
	if err := s.db.WithContext(ctx).Create(&lesson).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	s.invalidate(ctx)
	return &lesson, nil
}

func (s *Service) UpdateLesson(ctx context.Context, courseID, lessonID uint, upd LessonUpdate) (*models.Lesson, error) {
	lesson, err := s.mustLesson(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		lesson.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.VideoURL != nil {
		lesson.VideoRef = strings.TrimSpace(*upd.VideoURL)
	}
	if upd.Content != nil {
		lesson.Content = strings.TrimSpace(*upd.Content)
	}
	if upd.Duration != nil {
		lesson.Duration = strings.TrimSpace(*upd.Duration)
	}
	if upd.Resources != nil {
		lesson.Resources = upd.Resources
	}
	if err := s.db.WithContext(ctx).Save(lesson).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	s.invalidate(ctx)
	return lesson, nil
}

func (s *Service) DeleteLesson(ctx context.Context, courseID, lessonID uint) error {
	lesson, err := s.mustLesson(ctx, courseID, lessonID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(lesson).Error; err != nil {
		return apperrors.FromDB(err, "")
	}
	s.invalidate(ctx)
	return nil
}

// ReplaceQuiz swaps the whole question list of a course.
func (s *Service) ReplaceQuiz(ctx context.Context, courseID uint, questions []QuestionInput) ([]models.QuizQuestion, error) {
	if err := ValidateQuiz(questions); err != nil {
		return nil, err
	}
	if _, err := s.mustCourse(ctx, courseID); err != nil {
		return nil, err
	}

	quiz := make([]models.QuizQuestion, 0, len(questions))
	for i, q := range questions {
		quiz = append(quiz, models.QuizQuestion{
			CourseID:     courseID,
			Question:     strings.TrimSpace(q.Question),
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			OrderIndex:   i,
		})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		if len(quiz) == 0 {
			return nil
		}
		return tx.Create(&quiz).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	s.invalidate(ctx)
	return quiz, nil
}

func (s *Service) mustCourse(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "Course not found")
	}
	return &course, nil
}

func (s *Service) mustSection(ctx context.Context, courseID, sectionID uint) (*models.Section, error) {
	var section models.Section
	if err := s.db.WithContext(ctx).Where("id = ? AND course_id = ?", sectionID, courseID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if _, cErr := s.mustCourse(ctx, courseID); cErr != nil {
				return nil, cErr
			}
		}
		return nil, apperrors.FromDB(err, "Section not found")
	}
	return &section, nil
}

func (s *Service) mustLesson(ctx context.Context, courseID, lessonID uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.db.WithContext(ctx).Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if _, cErr := s.mustCourse(ctx, courseID); cErr != nil {
				return nil, cErr
			}
		}
		return nil, apperrors.FromDB(err, "Lesson not found")
	}
	return &lesson, nil
}
