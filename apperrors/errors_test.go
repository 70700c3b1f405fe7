package apperrors

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("Course not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Course not found", MessageOf(err))

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, "Internal server error", MessageOf(errors.New("boom")))
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, FromDB(nil, "x"))
	assert.True(t, Is(FromDB(gorm.ErrRecordNotFound, "Progress not found"), KindNotFound))
	assert.Equal(t, "Progress not found", MessageOf(FromDB(gorm.ErrRecordNotFound, "Progress not found")))
	assert.True(t, Is(FromDB(gorm.ErrDuplicatedKey, "x"), KindConflict))
	assert.True(t, Is(FromDB(driver.ErrBadConn, "x"), KindUnavailable))
	assert.True(t, Is(FromDB(errors.New("dial tcp: connection refused"), "x"), KindUnavailable))
	assert.True(t, Is(FromDB(errors.New("syntax error"), "x"), KindInternal))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Unavailable("Payment gateway unavailable", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Payment gateway unavailable: cause", err.Error())
}
