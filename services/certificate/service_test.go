package certificate

import (
	"context"
	"sync"
	"testing"
	"time"

	"learnhub/apperrors"
	"learnhub/internal/testutil"
	"learnhub/logger"
	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func setup(t *testing.T) (*gorm.DB, *Service, *recordingMailer) {
	t.Helper()
	db := testutil.NewDB(t)
	mailer := &recordingMailer{}
	return db, NewService(db, mailer, logger.Nop()), mailer
}

func complete(t *testing.T, db *gorm.DB, p models.Progress) {
	t.Helper()
	require.NoError(t, db.Model(&p).Updates(map[string]any{
		"status":       models.ProgressCompleted,
		"completed_at": time.Now(),
	}).Error)
}

func TestIssueRequiresCompletion(t *testing.T) {
	db, svc, _ := setup(t)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, nil)

	_, _, err := svc.Issue(ctx, student.ID, course.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidState))

	testutil.Enroll(t, db, student.ID, course.ID)
	_, _, err = svc.Issue(ctx, student.ID, course.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidState))
	assert.Equal(t, "Course not completed", apperrors.MessageOf(err))
}

func TestIssueIsIdempotent(t *testing.T) {
	db, svc, mailer := setup(t)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, nil)
	complete(t, db, testutil.Enroll(t, db, student.ID, course.ID))

	first, created, err := svc.Issue(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Regexp(t, `^LH-\d{8}-[0-9A-F]{12}$`, first.CertificateNumber)
	require.NotNil(t, first.Course)
	assert.Equal(t, course.ID, first.Course.ID)

	second, created, err := svc.Issue(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)

	var n int64
	require.NoError(t, db.Model(&models.Certificate{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	assert.Eventually(t, func() bool { return mailer.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestIssueForDeletedCourse(t *testing.T) {
	db, svc, _ := setup(t)
	student := testutil.CreateStudent(t, db, "s@example.com")
	course := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, nil)
	complete(t, db, testutil.Enroll(t, db, student.ID, course.ID))
	require.NoError(t, db.Delete(&models.Course{}, course.ID).Error)

	_, _, err := svc.Issue(context.Background(), student.ID, course.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Course not found", apperrors.MessageOf(err))
}

func TestListForStudent(t *testing.T) {
	db, svc, _ := setup(t)
	ctx := context.Background()
	student := testutil.CreateStudent(t, db, "s@example.com")
	other := testutil.CreateStudent(t, db, "o@example.com")
	c1 := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, nil)
	c2 := testutil.CreateCourse(t, db, 50, true, []string{"L1"}, nil)
	complete(t, db, testutil.Enroll(t, db, student.ID, c1.ID))
	complete(t, db, testutil.Enroll(t, db, student.ID, c2.ID))
	complete(t, db, testutil.Enroll(t, db, other.ID, c1.ID))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	_, _, err := svc.Issue(ctx, student.ID, c1.ID)
	require.NoError(t, err)
	svc.now = func() time.Time { return base.Add(time.Hour) }
	_, _, err = svc.Issue(ctx, student.ID, c2.ID)
	require.NoError(t, err)
	_, _, err = svc.Issue(ctx, other.ID, c1.ID)
	require.NoError(t, err)

	certs, err := svc.ListForStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, c2.ID, certs[0].CourseID)
	assert.Equal(t, c1.ID, certs[1].CourseID)
	require.NotNil(t, certs[0].Course)

	empty, err := svc.ListForStudent(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNewNumber(t *testing.T) {
	at := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	a, b := NewNumber(at), NewNumber(at)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "LH-20240309-", a[:12])
}
