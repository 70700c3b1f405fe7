package progress

import (
	"context"
	"errors"
	"testing"

	"learnhub/apperrors"
	"learnhub/internal/testutil"
	"learnhub/logger"
	"learnhub/models"
	"learnhub/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T, policy CompletionPolicy) (*gorm.DB, *Service) {
	t.Helper()
	db := testutil.NewDB(t)
	return db, NewService(db, policy, nil, logger.Nop())
}

func TestGetWithoutEnrollment(t *testing.T) {
	db, svc := newService(t, PolicyContainment)
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, nil)

	_, err := svc.Get(context.Background(), student.ID, course.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCompleteLessonContainment(t *testing.T) {
	db, svc := newService(t, PolicyContainment)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1", "L2"}, nil)
	testutil.Enroll(t, db, student.ID, course.ID)
	l1, l2 := course.Lessons[0].ID, course.Lessons[1].ID

	p, err := svc.CompleteLesson(ctx, student.ID, course.ID, l1)
	require.NoError(t, err)
	assert.Equal(t, []uint{l1}, p.LessonsCompleted)
	assert.Equal(t, models.ProgressInProgress, p.Status)

	p, err = svc.CompleteLesson(ctx, student.ID, course.ID, l1)
	require.NoError(t, err)
	assert.Len(t, p.LessonsCompleted, 1)

	_, err = svc.CompleteLesson(ctx, student.ID, course.ID, 9999)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	p, err = svc.CompleteLesson(ctx, student.ID, course.ID, l2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{l1, l2}, p.LessonsCompleted)
	assert.Equal(t, models.ProgressCompleted, p.Status)
	require.NotNil(t, p.CompletedAt)
}

func TestCompletedStatusIsIrreversible(t *testing.T) {
	db, svc := newService(t, PolicyContainment)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, nil)
	testutil.Enroll(t, db, student.ID, course.ID)

	p, err := svc.CompleteLesson(ctx, student.ID, course.ID, course.Lessons[0].ID)
	require.NoError(t, err)
	require.Equal(t, models.ProgressCompleted, p.Status)
	completedAt := *p.CompletedAt

	extra := models.Lesson{CourseID: course.ID, Title: "L2"}
	require.NoError(t, db.Create(&extra).Error)

	p, err = svc.CompleteLesson(ctx, student.ID, course.ID, course.Lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, p.Status)
	assert.True(t, completedAt.Equal(*p.CompletedAt))
}

func TestContainmentIgnoresRemovedLessons(t *testing.T) {
	db, svc := newService(t, PolicyContainment)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1", "L2", "L3"}, nil)
	testutil.Enroll(t, db, student.ID, course.ID)

	_, err := svc.CompleteLesson(ctx, student.ID, course.ID, course.Lessons[0].ID)
	require.NoError(t, err)
	require.NoError(t, db.Delete(&course.Lessons[2]).Error)

	p, err := svc.CompleteLesson(ctx, student.ID, course.ID, course.Lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, p.Status)
}

func TestCompleteLessonCountPolicy(t *testing.T) {
	db, svc := newService(t, PolicyCount)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1", "L2"}, nil)
	testutil.Enroll(t, db, student.ID, course.ID)

	// lesson ids outside the course are accepted and counted
	p, err := svc.CompleteLesson(ctx, student.ID, course.ID, 9001)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressInProgress, p.Status)

	p, err = svc.CompleteLesson(ctx, student.ID, course.ID, 9001)
	require.NoError(t, err)
	assert.Len(t, p.LessonsCompleted, 1)

	p, err = svc.CompleteLesson(ctx, student.ID, course.ID, 9002)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, p.Status)
}

func TestCompleteLessonErrors(t *testing.T) {
	db, svc := newService(t, PolicyCount)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, nil)

	_, err := svc.CompleteLesson(ctx, student.ID, course.ID, course.Lessons[0].ID)
	assert.Equal(t, "Progress not found", apperrors.MessageOf(err))

	testutil.Enroll(t, db, student.ID, course.ID)
	require.NoError(t, db.Delete(&models.Course{}, course.ID).Error)
	_, err = svc.CompleteLesson(ctx, student.ID, course.ID, course.Lessons[0].ID)
	assert.Equal(t, "Course not found", apperrors.MessageOf(err))
}

func TestSubmitQuiz(t *testing.T) {
	db, svc := newService(t, PolicyContainment)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, []int{1, 0, 2})

	_, _, err := svc.SubmitQuiz(ctx, student.ID, course.ID, []any{1.0})
	assert.Equal(t, "Progress not found", apperrors.MessageOf(err))
	_, _, err = svc.SubmitQuiz(ctx, student.ID, 9999, []any{1.0})
	assert.Equal(t, "Course not found", apperrors.MessageOf(err))

	testutil.Enroll(t, db, student.ID, course.ID)

	score, p, err := svc.SubmitQuiz(ctx, student.ID, course.ID, []any{1.0, 0.0, 2.0})
	require.NoError(t, err)
	assert.Equal(t, 3, score)
	assert.Equal(t, 3, p.Score)

	score, p, err = svc.SubmitQuiz(ctx, student.ID, course.ID, []any{0.0, 0.0, 0.0})
	require.NoError(t, err)
	assert.Equal(t, 1, score)
	assert.Equal(t, models.ProgressInProgress, p.Status)

	score, _, err = svc.SubmitQuiz(ctx, student.ID, course.ID, []any{})
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	stored, err := svc.Get(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Score)
}

type failingStore struct{}

func (failingStore) ResolveURL(context.Context, string) (*storage.SignedURL, error) {
	return nil, errors.New("signing failed")
}

func TestVideoURL(t *testing.T) {
	db, svc := newService(t, PolicyContainment)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1", "L2"}, nil)
	require.NoError(t, db.Model(&course.Lessons[0]).Update("video_ref", "videos/l1.mp4").Error)

	_, err := svc.VideoURL(ctx, student.ID, course.ID, course.Lessons[0].ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	testutil.Enroll(t, db, student.ID, course.ID)
	u, err := svc.VideoURL(ctx, student.ID, course.ID, course.Lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "videos/l1.mp4", u.URL)

	_, err = svc.VideoURL(ctx, student.ID, course.ID, course.Lessons[1].ID)
	assert.Equal(t, "Lesson has no video", apperrors.MessageOf(err))

	svc.media = failingStore{}
	_, err = svc.VideoURL(ctx, student.ID, course.ID, course.Lessons[0].ID)
	assert.True(t, apperrors.Is(err, apperrors.KindUnavailable))
}
