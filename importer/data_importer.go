package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nonsonwune/gradebook/gradebook"
	"github.com/nonsonwune/gradebook/models"
)

// AutoAcceptConfidence is the score above which a fuzzy header match is
// accepted without asking.
const AutoAcceptConfidence = 0.8

// Kind selects what a CSV file contains.
type Kind string

const (
	KindStudents Kind = "students"
	KindItems    Kind = "items"
	KindGrades   Kind = "grades"
)

// Error codes attached to rejected rows.
const (
	CodeParseError        = "PARSE_ERROR"
	CodeMissingField      = "MISSING_FIELD"
	CodeInvalidStudentID  = "INVALID_STUDENT_ID"
	CodeInvalidPoints     = "INVALID_TOTAL_POINTS"
	CodeInvalidGrade      = "INVALID_GRADE"
	CodeEmptyRoster       = "EMPTY_ROSTER"
	CodeStudentNotFound   = "STUDENT_NOT_FOUND"
	CodeGradeItemNotFound = "GRADE_ITEM_NOT_FOUND"
)

var ErrUnknownKind = errors.New("unknown import kind")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindStudents, KindItems, KindGrades:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// RequiredColumns returns the header names a file of this kind must carry.
func (k Kind) RequiredColumns() []string {
	switch k {
	case KindStudents:
		return []string{"first_name", "last_name", "student_id"}
	case KindItems:
		return []string{"name", "total_points"}
	case KindGrades:
		return []string{"item_name", "student_id", "grade"}
	}
	return nil
}

// ImportConfig holds the configuration for a single import.
type ImportConfig struct {
	Kind       Kind
	SourceFile string
}

// ImportResult summarises an import.
type ImportResult struct {
	SuccessCount int
	FailedCount  int
	Errors       []error
}

// ImportError describes a rejected row.
type ImportError struct {
	Row     int
	Code    string
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("row %d: [%s] %s", e.Row, e.Code, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// ColumnMatch represents a potential column match with confidence score
type ColumnMatch struct {
	SourceColumn      string
	DestinationColumn string
	Confidence        float64
}

// DataImporter feeds CSV rows into a course.
type DataImporter struct {
	course        *gradebook.Course
	config        ImportConfig
	columnMapping map[string]int
	stats         *ImportStats
}

func NewDataImporter(course *gradebook.Course, config ImportConfig) *DataImporter {
	return &DataImporter{
		course: course,
		config: config,
		stats:  NewImportStats(),
	}
}

// ImportFile opens config.SourceFile and imports it into course.
func ImportFile(course *gradebook.Course, config ImportConfig) (ImportResult, error) {
	file, err := os.Open(config.SourceFile)
	if err != nil {
		return ImportResult{}, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	return ImportData(course, config, csv.NewReader(file))
}

func ImportData(course *gradebook.Course, config ImportConfig, reader *csv.Reader) (ImportResult, error) {
	return NewDataImporter(course, config).ImportData(reader)
}

// ImportData reads the header row, then applies every data row to the course.
// Bad rows are counted and reported; only header problems abort the import.
func (d *DataImporter) ImportData(reader *csv.Reader) (ImportResult, error) {
	var result ImportResult

	required := d.config.Kind.RequiredColumns()
	if required == nil {
		return result, fmt.Errorf("%w: %q", ErrUnknownKind, d.config.Kind)
	}

	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("error reading headers: %w", err)
	}
	if err := d.validateHeaders(headers, required); err != nil {
		return result, fmt.Errorf("header validation failed: %w", err)
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		d.stats.TotalProcessed++
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return result, fmt.Errorf("error reading record: %w", err)
			}
			log.Printf("Error parsing record: %v", err)
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Errorf("row %d: %w", row, err))
			d.stats.AddError(CodeParseError)
			continue
		}

		if err := d.processRecord(row, record); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, err)
			var impErr *ImportError
			if errors.As(err, &impErr) {
				d.stats.AddError(impErr.Code)
			}
			continue
		}
		result.SuccessCount++
		d.stats.ValidRecords++
	}

	d.printImportSummary(result)
	return result, nil
}

func (d *DataImporter) processRecord(row int, record []string) error {
	switch d.config.Kind {
	case KindStudents:
		first, err := d.field(row, record, "first_name")
		if err != nil {
			return err
		}
		last, err := d.field(row, record, "last_name")
		if err != nil {
			return err
		}
		id, err := d.intField(row, record, "student_id", CodeInvalidStudentID)
		if err != nil {
			return err
		}
		d.course.AddStudent(models.NewStudent(first, last, id))

	case KindItems:
		name, err := d.field(row, record, "name")
		if err != nil {
			return err
		}
		total, err := d.intField(row, record, "total_points", CodeInvalidPoints)
		if err != nil {
			return err
		}
		d.course.AddGradeItem(models.NewGradeItem(name, total))

	case KindGrades:
		itemName, err := d.field(row, record, "item_name")
		if err != nil {
			return err
		}
		id, err := d.intField(row, record, "student_id", CodeInvalidStudentID)
		if err != nil {
			return err
		}
		raw, err := d.field(row, record, "grade")
		if err != nil {
			return err
		}
		grade, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return &ImportError{Row: row, Code: CodeInvalidGrade, Message: fmt.Sprintf("grade %q is not a number", raw), Err: err}
		}
		if err := d.course.RecordGrade(itemName, id, grade); err != nil {
			return &ImportError{Row: row, Code: courseErrorCode(err), Message: err.Error(), Err: err}
		}
	}
	return nil
}

func courseErrorCode(err error) string {
	switch {
	case errors.Is(err, gradebook.ErrEmptyRoster):
		return CodeEmptyRoster
	case errors.Is(err, gradebook.ErrStudentNotFound):
		return CodeStudentNotFound
	case errors.Is(err, gradebook.ErrGradeItemNotFound):
		return CodeGradeItemNotFound
	}
	return "UNKNOWN"
}

func (d *DataImporter) field(row int, record []string, column string) (string, error) {
	idx := d.columnMapping[column]
	if idx >= len(record) || strings.TrimSpace(record[idx]) == "" {
		return "", &ImportError{Row: row, Code: CodeMissingField, Message: fmt.Sprintf("missing value for %s", column)}
	}
	return strings.TrimSpace(record[idx]), nil
}

func (d *DataImporter) intField(row int, record []string, column, code string) (int, error) {
	raw, err := d.field(row, record, column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ImportError{Row: row, Code: code, Message: fmt.Sprintf("%s %q is not an integer", column, raw), Err: err}
	}
	return v, nil
}

// validateHeaders maps every required column to a header index, falling back
// to fuzzy matching when no normalised header matches exactly.
func (d *DataImporter) validateHeaders(headers, required []string) error {
	missingColumns := make([]string, 0)
	d.columnMapping = make(map[string]int, len(required))

	for _, column := range required {
		if idx := getColumnIndex(headers, column); idx != -1 {
			d.columnMapping[column] = idx
			continue
		}

		matches := findBestColumnMatch(column, headers)
		if len(matches) > 0 && matches[0].Confidence > AutoAcceptConfidence {
			d.columnMapping[column] = getColumnIndex(headers, matches[0].SourceColumn)
			log.Printf("Automatically mapped '%s' to '%s' (%.2f%% confidence)",
				column, matches[0].SourceColumn, matches[0].Confidence*100)
			continue
		}
		missingColumns = append(missingColumns, column)
	}

	if len(missingColumns) > 0 {
		return fmt.Errorf("missing required columns: %v", missingColumns)
	}
	return nil
}

func normalizeColumn(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, " ", "")
}

// findBestColumnMatch scores every header against column, best first.
func findBestColumnMatch(column string, headers []string) []ColumnMatch {
	matches := make([]ColumnMatch, 0)
	normalizedColumn := normalizeColumn(column)

	for _, header := range headers {
		normalizedHeader := normalizeColumn(header)
		maxLen := max(len(normalizedColumn), len(normalizedHeader))
		if maxLen == 0 {
			continue
		}

		distance := levenshteinDistance(normalizedColumn, normalizedHeader)
		confidence := 1.0 - float64(distance)/float64(maxLen)
		if confidence > 0.6 {
			matches = append(matches, ColumnMatch{
				SourceColumn:      header,
				DestinationColumn: column,
				Confidence:        confidence,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// getColumnIndex returns the index of a column in headers
func getColumnIndex(headers []string, columnName string) int {
	want := normalizeColumn(columnName)
	for i, header := range headers {
		if normalizeColumn(header) == want {
			return i
		}
	}
	return -1
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			if s1[i-1] == s2[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
			} else {
				matrix[i][j] = min(
					matrix[i-1][j]+1,   // deletion
					matrix[i][j-1]+1,   // insertion
					matrix[i-1][j-1]+1, // substitution
				)
			}
		}
	}

	return matrix[len(s1)][len(s2)]
}

func (d *DataImporter) printImportSummary(result ImportResult) {
	log.Printf("Import Summary (%s):", d.config.Kind)
	d.stats.PrintSummary()

	if len(result.Errors) > 0 {
		log.Printf("Sample of Import Errors (up to 10):")
		for i := 0; i < min(10, len(result.Errors)); i++ {
			log.Printf("- %v", result.Errors[i])
		}
	}
}
