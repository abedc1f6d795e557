package models

// Student represents an enrolled student. Fields are fixed at construction.
type Student struct {
	firstName string
	lastName  string
	studentID int
}

func NewStudent(firstName, lastName string, studentID int) Student {
	return Student{
		firstName: firstName,
		lastName:  lastName,
		studentID: studentID,
	}
}

func (s Student) FirstName() string { return s.firstName }

func (s Student) LastName() string { return s.lastName }

func (s Student) StudentID() int { return s.studentID }
