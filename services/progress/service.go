// Package progress records lesson completions and quiz scores and derives
// course completion.
package progress

import (
	"context"
	"errors"
	"time"

	"learnhub/apperrors"
	"learnhub/logger"
	"learnhub/models"
	"learnhub/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db     *gorm.DB
	policy CompletionPolicy
	media  storage.Store
	log    *logger.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, policy CompletionPolicy, media storage.Store, log *logger.Logger) *Service {
	if media == nil {
		media = storage.Passthrough{}
	}
	return &Service{db: db, policy: policy, media: media, log: log.With("service", "progress"), now: time.Now}
}

func (s *Service) Get(ctx context.Context, studentID, courseID uint) (*models.Progress, error) {
	return s.load(s.db.WithContext(ctx), studentID, courseID)
}

// CompleteLesson adds the lesson to the completed set and re-evaluates
// completion. Completing a lesson twice changes nothing and a completed
// course stays completed.
func (s *Service) CompleteLesson(ctx context.Context, studentID, courseID, lessonID uint) (*models.Progress, error) {
	db := s.db.WithContext(ctx)

	progress, err := s.load(db, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if err := db.Select("id").First(&models.Course{}, courseID).Error; err != nil {
		return nil, apperrors.FromDB(err, "Course not found")
	}

	var lessonIDs []uint
	if err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Order("id").Pluck("id", &lessonIDs).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	if s.policy == PolicyContainment && !contains(lessonIDs, lessonID) {
		return nil, apperrors.NotFound("Lesson not found")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		completion := models.LessonCompletion{ProgressID: progress.ID, LessonID: lessonID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error; err != nil {
			return err
		}
		if progress.Status == models.ProgressCompleted {
			return nil
		}

		var completed []uint
		if err := tx.Model(&models.LessonCompletion{}).Where("progress_id = ?", progress.ID).Pluck("lesson_id", &completed).Error; err != nil {
			return err
		}
		if !IsComplete(s.policy, completed, lessonIDs) {
			return nil
		}
		return tx.Model(&models.Progress{}).
			Where("id = ? AND status <> ?", progress.ID, models.ProgressCompleted).
			Updates(map[string]any{"status": models.ProgressCompleted, "completed_at": s.now()}).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}

	updated, err := s.load(db, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if progress.Status != updated.Status {
		s.log.Info("Course completed", "course_id", courseID, "progress_id", updated.ID)
	}
	return updated, nil
}

// SubmitQuiz scores the answers against the course quiz and overwrites the
// stored score. Status is left alone.
func (s *Service) SubmitQuiz(ctx context.Context, studentID, courseID uint, answers []any) (int, *models.Progress, error) {
	db := s.db.WithContext(ctx)

	var course models.Course
	err := db.Preload("Quiz", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC, id ASC")
	}).First(&course, courseID).Error
	if err != nil {
		return 0, nil, apperrors.FromDB(err, "Course not found")
	}

	progress, err := s.load(db, studentID, courseID)
	if err != nil {
		return 0, nil, err
	}

	score := Score(course.Quiz, answers)
	if err := db.Model(&models.Progress{}).Where("id = ?", progress.ID).Update("score", score).Error; err != nil {
		return 0, nil, apperrors.FromDB(err, "")
	}
	progress.Score = score
	return score, progress, nil
}

// VideoURL resolves the lesson's stored video reference for an enrolled student.
func (s *Service) VideoURL(ctx context.Context, studentID, courseID, lessonID uint) (*storage.SignedURL, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.load(db, studentID, courseID); err != nil {
		return nil, err
	}

	var lesson models.Lesson
	if err := db.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		return nil, apperrors.FromDB(err, "Lesson not found")
	}
	if lesson.VideoRef == "" {
		return nil, apperrors.NotFound("Lesson has no video")
	}

	url, err := s.media.ResolveURL(ctx, lesson.VideoRef)
	if err != nil {
		s.log.Error("Failed to resolve lesson video", "lesson_id", lessonID, "error", err)
		return nil, apperrors.Unavailable("Video temporarily unavailable", err)
	}
	return url, nil
}

func (s *Service) load(db *gorm.DB, studentID, courseID uint) (*models.Progress, error) {
	var progress models.Progress
	err := db.Preload("Completions", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("student_id = ? AND course_id = ?", studentID, courseID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Progress not found")
		}
		return nil, apperrors.FromDB(err, "")
	}
	progress.FillLessonsCompleted()
	return &progress, nil
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
