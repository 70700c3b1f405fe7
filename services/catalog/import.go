package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"learnhub/apperrors"
	"learnhub/models"

	"gorm.io/gorm"
)

// ImportRow is one parsed catalog CSV line. Line is 1-based and counts the
// header.
type ImportRow struct {
	Line  int
	Input CourseInput
}

type ImportResult struct {
	Inserted int
	Updated  int
	Skipped  []string
}

// ParseCourseCSV reads a catalog CSV with a header row. Columns are matched
// by name: legacyId, title, description, thumbnail, instructor, category,
// price, level, duration. Rows without a legacyId are rejected since the
// import is keyed on it.
func ParseCourseCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("csv file is empty or has only headers")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"legacyid", "title", "price"} {
		if _, ok := headerIndex[required]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", required)
		}
	}

	rows := make([]ImportRow, 0, len(records)-1)
	for i, row := range records[1:] {
		legacyID := getField(row, headerIndex, "legacyid")
		in := CourseInput{
			Title:       getField(row, headerIndex, "title"),
			Description: getField(row, headerIndex, "description"),
			Thumbnail:   getField(row, headerIndex, "thumbnail"),
			Instructor:  getField(row, headerIndex, "instructor"),
			Category:    getField(row, headerIndex, "category"),
			Price:       parseFloat(getField(row, headerIndex, "price")),
			Level:       getField(row, headerIndex, "level"),
			Duration:    getField(row, headerIndex, "duration"),
		}
		if legacyID != "" {
			in.LegacyID = &legacyID
		}
		rows = append(rows, ImportRow{Line: i + 2, Input: in})
	}
	return rows, nil
}

// Import inserts or updates courses by legacy id. Invalid rows are skipped
// and reported, they never abort the import.
func (s *Service) Import(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	res := &ImportResult{}
	db := s.db.WithContext(ctx)

	for _, row := range rows {
		if row.Input.LegacyID == nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("line %d: legacyId is required", row.Line))
			continue
		}
		if err := validateCourseInput(row.Input); err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("line %d: %s", row.Line, apperrors.MessageOf(err)))
			continue
		}

		var existing models.Course
		err := db.Where("legacy_id = ?", *row.Input.LegacyID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if _, err := s.Create(ctx, row.Input, nil); err != nil {
				return res, err
			}
			res.Inserted++
		case err != nil:
			return res, apperrors.FromDB(err, "")
		default:
			in := row.Input
			upd := CourseUpdate{
				Title: &in.Title, Description: &in.Description, Thumbnail: &in.Thumbnail,
				Instructor: &in.Instructor, Category: &in.Category, Price: &in.Price,
				Level: &in.Level, Duration: &in.Duration,
			}
			if _, err := s.Update(ctx, existing.ID, upd); err != nil {
				return res, err
			}
			res.Updated++
		}
	}
	s.log.Info("Catalog import finished", "inserted", res.Inserted, "updated", res.Updated, "skipped", len(res.Skipped))
	return res, nil
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseFloat(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val
}
