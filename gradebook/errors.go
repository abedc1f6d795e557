package gradebook

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRoster is returned by every lookup when no students are enrolled.
	ErrEmptyRoster = errors.New("course roster is empty")

	// ErrStudentNotFound matches any *StudentNotFoundError via errors.Is.
	ErrStudentNotFound = errors.New("student not found")

	// ErrGradeItemNotFound matches any *GradeItemNotFoundError via errors.Is.
	ErrGradeItemNotFound = errors.New("grade item not found")
)

// StudentNotFoundError reports a student id missing from a non-empty roster.
type StudentNotFoundError struct {
	StudentID int
}

func (e *StudentNotFoundError) Error() string {
	return fmt.Sprintf("student (%d) not found", e.StudentID)
}

func (e *StudentNotFoundError) Is(target error) bool {
	return target == ErrStudentNotFound
}

// GradeItemNotFoundError reports a grade item name that matches no item.
type GradeItemNotFoundError struct {
	ItemName string
}

func (e *GradeItemNotFoundError) Error() string {
	return fmt.Sprintf("grade item (%s) not found", e.ItemName)
}

func (e *GradeItemNotFoundError) Is(target error) bool {
	return target == ErrGradeItemNotFound
}
