package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/gradebook/gradebook"
)

func importString(t *testing.T, course *gradebook.Course, kind Kind, data string) (ImportResult, error) {
	t.Helper()
	return ImportData(course, ImportConfig{Kind: kind}, csv.NewReader(strings.NewReader(data)))
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"students": KindStudents,
		" Items ":  KindItems,
		"GRADES":   KindGrades,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("teachers")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestImportStudents(t *testing.T) {
	course := gradebook.NewCourse()
	data := "First Name,Last Name,Student ID\nAna,Lee,1\nBen,Okafor,2\n"

	result, err := importString(t, course, KindStudents, data)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailedCount)

	roster, err := course.RosterListing()
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, gradebook.RosterEntry{LastName: "Lee", FirstName: "Ana", StudentID: 1}, roster[0])
	assert.Equal(t, 2, roster[1].StudentID)
}

func TestImportStudents_BadRowsSkipped(t *testing.T) {
	course := gradebook.NewCourse()
	data := "first_name,last_name,student_id\nAna,Lee,abc\n,Okafor,2\nCy,Diaz,3\nDee,Eze\n"

	result, err := importString(t, course, KindStudents, data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 3, result.FailedCount)
	require.Len(t, result.Errors, 3)

	var impErr *ImportError
	require.True(t, errors.As(result.Errors[0], &impErr))
	assert.Equal(t, CodeInvalidStudentID, impErr.Code)
	assert.Equal(t, 2, impErr.Row)

	require.True(t, errors.As(result.Errors[1], &impErr))
	assert.Equal(t, CodeMissingField, impErr.Code)

	require.True(t, errors.As(result.Errors[2], &impErr))
	assert.Equal(t, CodeMissingField, impErr.Code)
	assert.Equal(t, 5, impErr.Row)

	assert.Equal(t, 1, course.StudentCount())
}

func TestImportItems_FuzzyHeader(t *testing.T) {
	course := gradebook.NewCourse()
	data := "name,total_point\nQuiz1,10\nMidterm,oops\n"

	result, err := importString(t, course, KindItems, data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, 1, course.GradeItemCount())

	var impErr *ImportError
	require.True(t, errors.As(result.Errors[0], &impErr))
	assert.Equal(t, CodeInvalidPoints, impErr.Code)
}

func TestImport_MissingColumns(t *testing.T) {
	course := gradebook.NewCourse()

	_, err := importString(t, course, KindStudents, "given,family,number\nAna,Lee,1\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Equal(t, 0, course.StudentCount())
}

func TestImport_EmptyInput(t *testing.T) {
	_, err := importString(t, gradebook.NewCourse(), KindStudents, "")
	assert.Error(t, err)
}

func TestImport_UnknownKind(t *testing.T) {
	_, err := importString(t, gradebook.NewCourse(), Kind("teachers"), "a,b\n")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestImportGrades(t *testing.T) {
	course := gradebook.NewCourse()
	_, err := importString(t, course, KindGrades, "item_name,student_id,grade\nQuiz1,1,8\n")
	require.NoError(t, err)

	_, err = importString(t, course, KindStudents, "first_name,last_name,student_id\nAna,Lee,1\n")
	require.NoError(t, err)
	_, err = importString(t, course, KindItems, "name,total_points\nQuiz1,10\n")
	require.NoError(t, err)

	data := "item_name,student_id,grade\nQuiz1,1,8.5\nQuiz1,9,7\nFinal,1,60\nQuiz1,1,x\n"
	result, err := importString(t, course, KindGrades, data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 3, result.FailedCount)

	codes := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		var impErr *ImportError
		require.True(t, errors.As(e, &impErr))
		codes = append(codes, impErr.Code)
	}
	assert.Equal(t, []string{CodeStudentNotFound, CodeGradeItemNotFound, CodeInvalidGrade}, codes)
	assert.ErrorIs(t, result.Errors[0], gradebook.ErrStudentNotFound)

	grades, err := course.GradesForStudent(1)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 8.5, grades[0].Score.Float64)
}

func TestImportGrades_EmptyRoster(t *testing.T) {
	course := gradebook.NewCourse()
	result, err := importString(t, course, KindGrades, "item_name,student_id,grade\nQuiz1,1,8\n")
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], gradebook.ErrEmptyRoster)
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte("first_name,last_name,student_id\nAna,Lee,1\n"), 0o600))

	course := gradebook.NewCourse()
	result, err := ImportFile(course, ImportConfig{Kind: KindStudents, SourceFile: path})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)

	_, err = ImportFile(course, ImportConfig{Kind: KindStudents, SourceFile: filepath.Join(t.TempDir(), "nope.csv")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindBestColumnMatch(t *testing.T) {
	matches := findBestColumnMatch("grade", []string{"student", "grades", "item"})
	require.NotEmpty(t, matches)
	assert.Equal(t, "grades", matches[0].SourceColumn)
	assert.Greater(t, matches[0].Confidence, AutoAcceptConfidence)
}

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"grade", "grade", 0},
		{"grade", "grades", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, levenshteinDistance(tc.a, tc.b), "%s/%s", tc.a, tc.b)
	}
}

func TestImportStats(t *testing.T) {
	s := NewImportStats()
	s.AddError(CodeMissingField)
	s.AddError(CodeMissingField)
	s.AddError(CodeInvalidGrade)

	assert.Equal(t, 3, s.SkippedRecords)
	assert.Equal(t, 2, s.ErrorsByType[CodeMissingField])
}

var errDiskGone = errors.New("disk gone")

// failingReader serves data once, then fails every read.
type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errDiskGone
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestImport_ReadErrorStopsImport(t *testing.T) {
	course := gradebook.NewCourse()
	reader := csv.NewReader(&failingReader{data: "first_name,last_name,student_id\nAna,Lee,1\n"})

	result, err := ImportData(course, ImportConfig{Kind: KindStudents}, reader)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskGone)
	assert.Contains(t, err.Error(), "error reading record")
	assert.Equal(t, 1, result.SuccessCount)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, course.StudentCount())
}

func TestImport_ParseErrorSkipsRow(t *testing.T) {
	course := gradebook.NewCourse()
	data := "first_name,last_name,student_id\nAna,Le\"e,1\nBen,Okafor,2\n"

	result, err := importString(t, course, KindStudents, data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)

	var parseErr *csv.ParseError
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.As(result.Errors[0], &parseErr))

	roster, err := course.RosterListing()
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, 2, roster[0].StudentID)
}

func TestImportStats_PrintSummary(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := NewImportStats()
	s.TotalProcessed = 4
	s.ValidRecords = 3
	s.AddError(CodeInvalidGrade)
	s.PrintSummary()

	out := buf.String()
	assert.Contains(t, out, "Total Records Processed: 4")
	assert.Contains(t, out, "Successfully Imported: 3 (75.00%)")
	assert.Contains(t, out, "Skipped Records: 1 (25.00%)")
	assert.Contains(t, out, "- INVALID_GRADE: 1 occurrences")
}

func TestImportStats_PrintSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	NewImportStats().PrintSummary()
	assert.Contains(t, buf.String(), "Total Records Processed: 0")
	assert.NotContains(t, buf.String(), "Skipped Records")
}
