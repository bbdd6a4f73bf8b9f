package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bank-sampah-api/internal/models"
)

type mockStudentBulkWriter struct {
	existing map[string]bool
	batches  [][]models.Student
}

func (m *mockStudentBulkWriter) ExistsByNIS(ctx context.Context, nis, excludeID string) (bool, error) {
	return m.existing[nis], nil
}

func (m *mockStudentBulkWriter) BulkCreate(ctx context.Context, students []models.Student) error {
	m.batches = append(m.batches, students)
	return nil
}

func TestImportStudentsAcceptsEnglishHeaders(t *testing.T) {
	writer := &mockStudentBulkWriter{}
	svc := NewImportService(writer, 0, nil)

	result, err := svc.ImportStudents(context.Background(), strings.NewReader(
		"nis,name,class\n12345,Siswa Satu,7A\n12346,Siswa Dua,7B\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	require.Len(t, writer.batches, 1)
	assert.Equal(t, "Siswa Satu", writer.batches[0][0].Name)
}

func TestImportStudentsAcceptsIndonesianHeaders(t *testing.T) {
	writer := &mockStudentBulkWriter{}
	svc := NewImportService(writer, 0, nil)

	result, err := svc.ImportStudents(context.Background(), strings.NewReader(
		"NIS,Nama,Kelas\n12345,Siswa Satu,7A\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
}

func TestImportStudentsMissingColumnAbortsBatch(t *testing.T) {
	writer := &mockStudentBulkWriter{}
	svc := NewImportService(writer, 0, nil)

	_, err := svc.ImportStudents(context.Background(), strings.NewReader(
		"nis,name\n12345,Siswa Satu\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class")
	assert.Empty(t, writer.batches)
}

func TestImportStudentsNonNumericNISAbortsBatch(t *testing.T) {
	writer := &mockStudentBulkWriter{}
	svc := NewImportService(writer, 0, nil)

	_, err := svc.ImportStudents(context.Background(), strings.NewReader(
		"nis,name,class\n12345,Siswa Satu,7A\nABC99,Siswa Dua,7B\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric")
	assert.Empty(t, writer.batches, "one bad row must abort the whole upload")
}

func TestImportStudentsDuplicateNISInFileAbortsBatch(t *testing.T) {
	writer := &mockStudentBulkWriter{}
	svc := NewImportService(writer, 0, nil)

	_, err := svc.ImportStudents(context.Background(), strings.NewReader(
		"nis,name,class\n12345,Siswa Satu,7A\n12345,Siswa Dua,7B\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
	assert.Empty(t, writer.batches)
}

func TestImportStudentsExistingNISAbortsBatch(t *testing.T) {
	writer := &mockStudentBulkWriter{existing: map[string]bool{"12345": true}}
	svc := NewImportService(writer, 0, nil)

	_, err := svc.ImportStudents(context.Background(), strings.NewReader(
		"nis,name,class\n12345,Siswa Satu,7A\n"))
	require.Error(t, err)
	assert.Empty(t, writer.batches)
}

func TestImportStudentsEnforcesRowLimit(t *testing.T) {
	writer := &mockStudentBulkWriter{}
	svc := NewImportService(writer, 2, nil)

	_, err := svc.ImportStudents(context.Background(), strings.NewReader(
		"nis,name,class\n1,A,7A\n2,B,7A\n3,C,7A\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
	assert.Empty(t, writer.batches)
}

func TestImportStudentsRejectsEmptyFile(t *testing.T) {
	writer := &mockStudentBulkWriter{}
	svc := NewImportService(writer, 0, nil)

	_, err := svc.ImportStudents(context.Background(), strings.NewReader("nis,name,class\n"))
	require.Error(t, err)
}
