// Package gradebook holds the Course aggregate: an enrollment roster, the
// course's grade items, and the per-student scores recorded on those items.
//
// Lookups are linear scans in insertion order. Duplicate student ids and
// duplicate grade item names are accepted on add; only the first match is
// ever found afterwards.
package gradebook

import "github.com/nonsonwune/gradebook/models"

// Course is the aggregate root for students and grade items.
// A Course is not safe for concurrent use.
type Course struct {
	roster     []models.Student
	gradeItems []*models.GradeItem
}

func NewCourse() *Course {
	return &Course{
		roster:     make([]models.Student, 0),
		gradeItems: make([]*models.GradeItem, 0),
	}
}

// AddStudent appends s to the roster.
func (c *Course) AddStudent(s models.Student) {
	c.roster = append(c.roster, s)
}

// AddGradeItem appends item to the course. A nil item is ignored.
func (c *Course) AddGradeItem(item *models.GradeItem) {
	if item == nil {
		return
	}
	c.gradeItems = append(c.gradeItems, item)
}

// RecordGrade stores grade for studentID on the item named itemName.
// Checks run in order: empty roster, unknown student, unknown item.
// Nothing is modified unless all three pass.
func (c *Course) RecordGrade(itemName string, studentID int, grade float64) error {
	if _, err := c.findStudent(studentID); err != nil {
		return err
	}

	item, err := c.findGradeItem(itemName)
	if err != nil {
		return err
	}

	item.RecordGrade(studentID, grade)
	return nil
}

// StudentCount returns the number of roster entries, duplicates included.
func (c *Course) StudentCount() int {
	return len(c.roster)
}

// GradeItemCount returns the number of grade items.
func (c *Course) GradeItemCount() int {
	return len(c.gradeItems)
}

// Student returns the first roster entry with studentID.
func (c *Course) Student(studentID int) (models.Student, error) {
	return c.findStudent(studentID)
}

func (c *Course) findStudent(studentID int) (models.Student, error) {
	if len(c.roster) == 0 {
		return models.Student{}, ErrEmptyRoster
	}
	for _, s := range c.roster {
		if s.StudentID() == studentID {
			return s, nil
		}
	}
	return models.Student{}, &StudentNotFoundError{StudentID: studentID}
}

func (c *Course) findGradeItem(name string) (*models.GradeItem, error) {
	for _, item := range c.gradeItems {
		if item.Name() == name {
			return item, nil
		}
	}
	return nil, &GradeItemNotFoundError{ItemName: name}
}
