package catalog

import (
	"context"
	"strings"
	"testing"

	"learnhub/internal/testutil"
	"learnhub/logger"
	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `legacyId,title,description,thumbnail,instructor,category,price,level
web-101,Web Basics,Learn HTML and CSS,web.png,Ada,Web,49.5,Beginner
go-201,Go Services,Build services in Go,go.png,Rob,Backend,120,Intermediate
bad-1,X,too short title,x.png,Ann,Misc,10,
,No Key,Missing legacy id,n.png,Nobody,Misc,5,
`

func TestParseCourseCSV(t *testing.T) {
	rows, err := ParseCourseCSV(strings.NewReader(catalogCSV))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "web-101", *rows[0].Input.LegacyID)
	assert.Equal(t, 49.5, rows[0].Input.Price)
	assert.Equal(t, "Beginner", rows[0].Input.Level)
	assert.Nil(t, rows[3].Input.LegacyID)

	_, err = ParseCourseCSV(strings.NewReader("legacyId,title,price\n"))
	assert.Error(t, err)

	_, err = ParseCourseCSV(strings.NewReader("title,price\nA,1\n"))
	assert.ErrorContains(t, err, "legacyid")
}

func TestImport(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, nil, logger.Nop())
	ctx := context.Background()

	rows, err := ParseCourseCSV(strings.NewReader(catalogCSV))
	require.NoError(t, err)

	res, err := svc.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Zero(t, res.Updated)
	assert.Len(t, res.Skipped, 2)

	// re-import updates in place
	rows[0].Input.Price = 59
	res, err = svc.Import(ctx, rows[:2])
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated)

	var courses []models.Course
	require.NoError(t, db.Order("id").Find(&courses).Error)
	require.Len(t, courses, 2)
	assert.Equal(t, 59.0, courses[0].Price)
	assert.True(t, courses[0].IsPublished)

	detail, err := svc.GetPublished(ctx, "go-201")
	require.NoError(t, err)
	assert.Equal(t, "Go Services", detail.Title)
}
