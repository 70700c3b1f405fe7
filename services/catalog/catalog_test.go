package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"learnhub/apperrors"
	"learnhub/cache"
	"learnhub/internal/testutil"
	"learnhub/logger"
	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	data        map[string][]byte
	invalidated int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (m *mapCache) Get(_ context.Context, key string, dst any) error {
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dst)
}

func (m *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	m.data[key] = raw
	return err
}

func (m *mapCache) DeletePrefix(_ context.Context, _ string) error {
	m.data = map[string][]byte{}
	m.invalidated++
	return nil
}

func validInput() CourseInput {
	return CourseInput{
		Title:       "Go Basics",
		Description: "Learn Go",
		Thumbnail:   "https://img/go.png",
		Instructor:  "Rob",
		Category:    "Programming",
		Price:       499,
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc := NewService(testutil.NewDB(t), nil, logger.Nop())
	ctx := context.Background()

	in := validInput()
	in.Title = "G"
	_, err := svc.Create(ctx, in, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))

	in = validInput()
	in.Price = 0
	_, err = svc.Create(ctx, in, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))

	in = validInput()
	in.Price = 1234567890
	_, err = svc.Create(ctx, in, nil)
	assert.Equal(t, "Price cannot exceed 9 digits", apperrors.MessageOf(err))

	course, err := svc.Create(ctx, validInput(), nil)
	require.NoError(t, err)
	assert.True(t, course.IsPublished)
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(123456789))
	assert.NoError(t, ValidatePrice(1234567.89))
	assert.Error(t, ValidatePrice(12345678.91))
	assert.Error(t, ValidatePrice(-1))
}

func TestPublicReadsHideAnswersAndUnpublished(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, nil, logger.Nop())
	ctx := context.Background()

	published := testutil.CreateCourse(t, db, 50, true, []string{"L1", "L2"}, []int{1, 0})
	hidden := testutil.CreateCourse(t, db, 50, false, nil, nil)

	list, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, published.ID, list[0].ID)
	assert.Len(t, list[0].Lessons, 2)
	assert.Empty(t, list[0].Quiz)

	detail, err := svc.GetPublished(ctx, strconv.Itoa(int(published.ID)))
	require.NoError(t, err)
	require.Len(t, detail.Quiz, 2)
	raw, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correctIndex")

	_, err = svc.GetPublished(ctx, strconv.Itoa(int(hidden.ID)))
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	admin, err := svc.GetForAdmin(ctx, strconv.Itoa(int(hidden.ID)))
	require.NoError(t, err)
	assert.False(t, admin.IsPublished)
}

func TestGetPublishedByLegacyID(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, nil, logger.Nop())
	ctx := context.Background()

	legacy := "course-1"
	in := validInput()
	in.LegacyID = &legacy
	created, err := svc.Create(ctx, in, nil)
	require.NoError(t, err)

	detail, err := svc.GetPublished(ctx, "course-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)

	_, err = svc.GetPublished(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCacheIsInvalidatedOnWrites(t *testing.T) {
	db := testutil.NewDB(t)
	c := newMapCache()
	svc := NewService(db, c, logger.Nop())
	ctx := context.Background()

	course, err := svc.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	list, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, c.data, "catalog:list")

	_, err = svc.Update(ctx, course.ID, CourseUpdate{IsPublished: new(bool)})
	require.NoError(t, err)
	assert.NotContains(t, c.data, "catalog:list")

	list, err = svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCachedDetailHidesAnswers(t *testing.T) {
	db := testutil.NewDB(t)
	c := newMapCache()
	svc := NewService(db, c, logger.Nop())
	ctx := context.Background()

	course := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, []int{1, 0, 2})
	ref := strconv.Itoa(int(course.ID))

	_, err := svc.GetPublished(ctx, ref)
	require.NoError(t, err)
	stored, ok := c.data["catalog:course:"+ref]
	require.True(t, ok)
	assert.NotContains(t, string(stored), "correctIndex")

	// served from the cache from here on
	require.NoError(t, db.Model(&models.Course{}).Where("id = ?", course.ID).Update("title", "Renamed").Error)

	detail, err := svc.GetPublished(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, course.Title, detail.Title)
	assert.Nil(t, detail.Course.Quiz)
	require.Len(t, detail.Quiz, 3)
	for _, q := range detail.Quiz {
		assert.NotZero(t, q.ID)
		assert.NotEmpty(t, q.Options)
	}
	raw, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correctIndex")
}

func TestSectionsAndLessons(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, nil, logger.Nop())
	ctx := context.Background()

	course, err := svc.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	section, err := svc.AddSection(ctx, course.ID, " Intro ")
	require.NoError(t, err)
	assert.Equal(t, "Intro", section.Title)

	inSection, err := svc.AddLesson(ctx, course.ID, &section.ID, LessonInput{Title: "Welcome", VideoURL: "videos/welcome.mp4"})
	require.NoError(t, err)
	loose, err := svc.AddLesson(ctx, course.ID, nil, LessonInput{Title: "Extra"})
	require.NoError(t, err)
	assert.Equal(t, 1, loose.OrderIndex)

	newTitle := "Welcome!"
	updated, err := svc.UpdateLesson(ctx, course.ID, inSection.ID, LessonUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Welcome!", updated.Title)

	full, err := svc.GetForAdmin(ctx, strconv.Itoa(int(course.ID)))
	require.NoError(t, err)
	assert.Len(t, full.Lessons, 2)
	require.Len(t, full.Sections, 1)
	assert.Len(t, full.Sections[0].Lessons, 1)

	require.NoError(t, svc.DeleteSection(ctx, course.ID, section.ID))
	full, err = svc.GetForAdmin(ctx, strconv.Itoa(int(course.ID)))
	require.NoError(t, err)
	assert.Len(t, full.Lessons, 1)
	assert.Empty(t, full.Sections)

	err = svc.DeleteLesson(ctx, course.ID, inSection.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	err = svc.DeleteLesson(ctx, course.ID+100, loose.ID)
	assert.Equal(t, "Course not found", apperrors.MessageOf(err))
	require.NoError(t, svc.DeleteLesson(ctx, course.ID, loose.ID))
}

func TestReplaceQuiz(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, nil, logger.Nop())
	ctx := context.Background()
	course := testutil.CreateCourse(t, db, 10, true, nil, []int{0, 1, 2})

	_, err := svc.ReplaceQuiz(ctx, course.ID, []QuestionInput{{Question: "Q", Options: []string{"only"}, CorrectIndex: 0}})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))
	_, err = svc.ReplaceQuiz(ctx, course.ID, []QuestionInput{{Question: "Q", Options: []string{"a", "b"}, CorrectIndex: 2}})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalid))

	quiz, err := svc.ReplaceQuiz(ctx, course.ID, []QuestionInput{{Question: "Q", Options: []string{"a", "b"}, CorrectIndex: 1}})
	require.NoError(t, err)
	require.Len(t, quiz, 1)

	var count int64
	require.NoError(t, db.Model(&models.QuizQuestion{}).Where("course_id = ?", course.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.ReplaceQuiz(ctx, 9999, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestPublishAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, nil, logger.Nop())
	ctx := context.Background()
	course := testutil.CreateCourse(t, db, 10, false, nil, nil)

	published, err := svc.Publish(ctx, course.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	require.NoError(t, svc.Delete(ctx, course.ID))
	assert.True(t, apperrors.Is(svc.Delete(ctx, course.ID), apperrors.KindNotFound))
	_, err = svc.Publish(ctx, course.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
