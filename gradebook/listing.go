package gradebook

import (
	"database/sql"

	"github.com/nonsonwune/gradebook/models"
)

// RosterEntry is one line of the course roster.
type RosterEntry struct {
	LastName  string
	FirstName string
	StudentID int
}

// GradeEntry is a student's standing on one grade item.
// Score.Valid is false when the student has not been graded.
type GradeEntry struct {
	ItemName    string
	Score       sql.NullFloat64
	TotalPoints int
}

// StudentGrades pairs a student with a GradeEntry per grade item.
type StudentGrades struct {
	Student models.Student
	Grades  []GradeEntry
}

func (c *Course) projectGrades(studentID int) []GradeEntry {
	entries := make([]GradeEntry, 0, len(c.gradeItems))
	for _, item := range c.gradeItems {
		entry := GradeEntry{
			ItemName:    item.Name(),
			TotalPoints: item.TotalPoints(),
		}
		if score, ok := item.ScoreFor(studentID); ok {
			entry.Score = sql.NullFloat64{Float64: score, Valid: true}
		}
		entries = append(entries, entry)
	}
	return entries
}

// GradesForStudent returns the student's entry for every grade item, in the
// order the items were added.
func (c *Course) GradesForStudent(studentID int) ([]GradeEntry, error) {
	if _, err := c.findStudent(studentID); err != nil {
		return nil, err
	}
	return c.projectGrades(studentID), nil
}

// RosterListing returns every student in enrollment order.
func (c *Course) RosterListing() ([]RosterEntry, error) {
	if len(c.roster) == 0 {
		return nil, ErrEmptyRoster
	}

	entries := make([]RosterEntry, 0, len(c.roster))
	for _, s := range c.roster {
		entries = append(entries, RosterEntry{
			LastName:  s.LastName(),
			FirstName: s.FirstName(),
			StudentID: s.StudentID(),
		})
	}
	return entries, nil
}

// AllGradesListing returns the grades of every student in enrollment order.
func (c *Course) AllGradesListing() ([]StudentGrades, error) {
	if len(c.roster) == 0 {
		return nil, ErrEmptyRoster
	}

	listing := make([]StudentGrades, 0, len(c.roster))
	for _, s := range c.roster {
		listing = append(listing, StudentGrades{
			Student: s,
			Grades:  c.projectGrades(s.StudentID()),
		})
	}
	return listing, nil
}
