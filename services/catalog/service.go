// Package catalog serves course reads and the admin course editor.
package catalog

import (
	"context"
	"errors"
	"strconv"

	"learnhub/apperrors"
	"learnhub/cache"
	"learnhub/logger"
	"learnhub/models"

	"gorm.io/gorm"
)

const cachePrefix = "catalog:"

type Service struct {
	db    *gorm.DB
	cache cache.Cache
	log   *logger.Logger
}

func NewService(db *gorm.DB, c cache.Cache, log *logger.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{db: db, cache: c, log: log.With("service", "catalog")}
}

// PublicQuestion is a quiz question without its answer.
type PublicQuestion struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// CourseDetail is the student view of a published course.
type CourseDetail struct {
	models.Course
	Quiz []PublicQuestion `json:"quiz"`
}

func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC, id ASC")
}

func withContent(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sections", ordered).
		Preload("Sections.Lessons", ordered).
		Preload("Lessons", ordered)
}

// ListPublished returns every published course, newest first, without quizzes.
func (s *Service) ListPublished(ctx context.Context) ([]models.Course, error) {
	key := cachePrefix + "list"
	var courses []models.Course
	if err := s.cache.Get(ctx, key, &courses); err == nil {
		return courses, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Catalog cache read failed", "key", key, "error", err)
	}

	courses = []models.Course{}
	err := withContent(s.db.WithContext(ctx)).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	s.store(ctx, key, courses)
	return courses, nil
}

// GetPublished looks a course up by numeric id or legacy id. Unpublished
// courses are reported as missing.
func (s *Service) GetPublished(ctx context.Context, ref string) (*CourseDetail, error) {
	key := cachePrefix + "course:" + ref
	var detail CourseDetail
	if err := s.cache.Get(ctx, key, &detail); err == nil {
		return &detail, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Catalog cache read failed", "key", key, "error", err)
	}

	course, err := s.find(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, apperrors.NotFound("Course not found")
	}

	detail = CourseDetail{Course: *course, Quiz: make([]PublicQuestion, 0, len(course.Quiz))}
	for _, q := range course.Quiz {
		detail.Quiz = append(detail.Quiz, PublicQuestion{ID: q.ID, Question: q.Question, Options: q.Options})
	}
	detail.Course.Quiz = nil
	s.store(ctx, key, detail)
	return &detail, nil
}

// GetForAdmin returns any course, published or not, with its answer key.
func (s *Service) GetForAdmin(ctx context.Context, ref string) (*models.Course, error) {
	return s.find(ctx, ref)
}

func (s *Service) find(ctx context.Context, ref string) (*models.Course, error) {
	q := withContent(s.db.WithContext(ctx)).Preload("Quiz", ordered)

	var course models.Course
	var err error
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		err = q.First(&course, uint(id)).Error
	} else {
		err = q.Where("legacy_id = ?", ref).First(&course).Error
	}
	if err != nil {
		return nil, apperrors.FromDB(err, "Course not found")
	}
	return &course, nil
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.log.Warn("Catalog cache write failed", "key", key, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, cachePrefix); err != nil {
		s.log.Warn("Catalog cache invalidation failed", "error", err)
	}
}
