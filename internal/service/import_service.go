package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

type studentBulkWriter interface {
	ExistsByNIS(ctx context.Context, nis, excludeID string) (bool, error)
	BulkCreate(ctx context.Context, students []models.Student) error
}

// ImportResult summarises a completed roster import.
type ImportResult struct {
	Imported int `json:"imported"`
}

// ImportService loads student rosters from uploaded CSV files. Headers are
// matched case-insensitively and accept both English and Indonesian names
// (nis, name/nama, class/kelas). The whole batch is validated before any row
// is written; one bad row aborts the upload.
type ImportService struct {
	students studentBulkWriter
	maxRows  int
	logger   *zap.Logger
}

// NewImportService constructs an ImportService. maxRows bounds the accepted
// upload size; zero or negative falls back to 1000.
func NewImportService(students studentBulkWriter, maxRows int, logger *zap.Logger) *ImportService {
	if maxRows <= 0 {
		maxRows = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{students: students, maxRows: maxRows, logger: logger}
}

var importHeaderAliases = map[string]string{
	"nis":   "nis",
	"name":  "name",
	"nama":  "name",
	"class": "class",
	"kelas": "class",
}

// ImportStudents parses and validates a CSV roster, then writes it in one
// batch.
func (s *ImportService) ImportStudents(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "csv file is empty or unreadable")
	}

	columns := map[string]int{}
	for i, raw := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF")))
		if canonical, ok := importHeaderAliases[key]; ok {
			columns[canonical] = i
		}
	}
	for _, required := range []string{"nis", "name", "class"} {
		if _, ok := columns[required]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("missing required column %q", required))
		}
	}

	var students []models.Student
	seen := map[string]bool{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: malformed csv", line))
		}
		if len(students) >= s.maxRows {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("import exceeds %d row limit", s.maxRows))
		}

		nis := strings.TrimSpace(record[columns["nis"]])
		name := strings.TrimSpace(record[columns["name"]])
		class := strings.TrimSpace(record[columns["class"]])

		if nis == "" || name == "" || class == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: nis, name and class are all required", line))
		}
		if !isDigits(nis) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: nis %q must be numeric", line, nis))
		}
		if seen[nis] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: duplicate nis %q in file", line, nis))
		}
		seen[nis] = true

		exists, err := s.students.ExistsByNIS(ctx, nis, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check NIS uniqueness")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("row %d: nis %q already registered", line, nis))
		}

		students = append(students, models.Student{NIS: nis, Name: name, Class: class})
	}

	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "csv file has no data rows")
	}

	if err := s.students.BulkCreate(ctx, students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import students")
	}
	s.logger.Info("student roster imported", zap.Int("rows", len(students)))
	return &ImportResult{Imported: len(students)}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
