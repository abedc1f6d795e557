// Package shell runs the interactive gradebook menu.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/nonsonwune/gradebook/gradebook"
	"github.com/nonsonwune/gradebook/importer"
	"github.com/nonsonwune/gradebook/models"
)

var (
	headingColor = color.New(color.FgCyan)
	titleColor   = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// MaxLineSize bounds a single line of input.
const MaxLineSize = 16 * 1024 * 1024

// errInputClosed is returned by the prompt helpers when input ends mid-command.
var errInputClosed = errors.New("input closed")

// Shell reads menu choices from in and writes results to out.
type Shell struct {
	course  *gradebook.Course
	title   string
	scanner *bufio.Scanner
	out     io.Writer
}

func New(course *gradebook.Course, title string, in io.Reader, out io.Writer) *Shell {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	return &Shell{
		course:  course,
		title:   title,
		scanner: scanner,
		out:     out,
	}
}

// Run shows the menu and processes choices until 'q', 'quit' or end of input.
func (s *Shell) Run() error {
	s.displayMenu()

	for {
		fmt.Fprint(s.out, ":> ")
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.scanner.Err()
		}

		choice := strings.ToLower(line)
		if choice == "q" || choice == "quit" {
			successColor.Fprintln(s.out, "Goodbye!")
			return nil
		}

		if err := s.dispatch(choice); err != nil {
			if errors.Is(err, errInputClosed) {
				fmt.Fprintln(s.out)
				return s.scanner.Err()
			}
			s.printError(err)
		}
	}
}

func (s *Shell) dispatch(choice string) error {
	switch choice {
	case "1":
		return s.addStudent()
	case "2":
		return s.addGradeItem()
	case "3":
		return s.addStudentGrade()
	case "4":
		return s.printStudentGrades()
	case "5":
		return s.printRoster()
	case "6":
		return s.printClassGrades()
	case "7":
		return s.importCSV()
	default:
		errorColor.Fprintln(s.out, "Invalid option. Please enter 1-7, or 'q' to quit.")
		return nil
	}
}

func (s *Shell) displayMenu() {
	headingColor.Fprintf(s.out, "Welcome to the %s!\n", s.title)
	fmt.Fprintln(s.out, "Please choose one of the following options:")
	fmt.Fprintln(s.out, "1) Add a Student")
	fmt.Fprintln(s.out, "2) Add a Grade Item")
	fmt.Fprintln(s.out, "3) Add a Student's Grade")
	fmt.Fprintln(s.out, "4) Print a Student's Grades")
	fmt.Fprintln(s.out, "5) Print Course Roster")
	fmt.Fprintln(s.out, "6) Print Class Grades")
	fmt.Fprintln(s.out, "7) Import from CSV")
	fmt.Fprintln(s.out, "Enter 'q' or 'quit' to exit")
}

func (s *Shell) addStudent() error {
	first, err := s.prompt("Enter First Name: ")
	if err != nil {
		return err
	}
	last, err := s.prompt("Enter Last Name: ")
	if err != nil {
		return err
	}
	id, err := s.promptInt("Enter Student ID: ", "Enter an integer Student ID")
	if err != nil {
		return err
	}

	s.course.AddStudent(models.NewStudent(first, last, id))
	successColor.Fprintf(s.out, "Added %s, %s (%d)\n", last, first, id)
	return nil
}

func (s *Shell) addGradeItem() error {
	name, err := s.prompt("Enter grade item name: ")
	if err != nil {
		return err
	}
	total, err := s.promptInt("Enter the total points for the grade item: ", "Enter a numeric value for total points.")
	if err != nil {
		return err
	}

	s.course.AddGradeItem(models.NewGradeItem(name, total))
	successColor.Fprintf(s.out, "Added grade item %s (%d)\n", name, total)
	return nil
}

func (s *Shell) addStudentGrade() error {
	itemName, err := s.prompt("Enter grade item name: ")
	if err != nil {
		return err
	}
	id, err := s.promptInt("Enter Student ID: ", "Enter an integer Student ID")
	if err != nil {
		return err
	}
	raw, err := s.prompt("Enter Student Grade: ")
	if err != nil {
		return err
	}
	grade, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return inputError("Enter a numeric grade.")
	}

	return s.course.RecordGrade(itemName, id, grade)
}

func (s *Shell) printStudentGrades() error {
	id, err := s.promptInt("Enter Student ID: ", "Enter an integer Student ID")
	if err != nil {
		return err
	}

	student, err := s.course.Student(id)
	if err != nil {
		return err
	}
	grades, err := s.course.GradesForStudent(id)
	if err != nil {
		return err
	}

	titleColor.Fprintf(s.out, "\n%s, %s (%d)\n", student.LastName(), student.FirstName(), student.StudentID())

	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Grade Item", "Score", "Total Points"})
	for _, g := range grades {
		table.Append([]string{g.ItemName, formatScore(g), strconv.Itoa(g.TotalPoints)})
	}
	table.Render()
	return nil
}

func (s *Shell) printRoster() error {
	roster, err := s.course.RosterListing()
	if err != nil {
		return err
	}

	titleColor.Fprintln(s.out, "\nCourse Roster:")
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Last Name", "First Name", "Student ID"})
	for _, r := range roster {
		table.Append([]string{r.LastName, r.FirstName, strconv.Itoa(r.StudentID)})
	}
	table.Render()
	return nil
}

func (s *Shell) printClassGrades() error {
	listing, err := s.course.AllGradesListing()
	if err != nil {
		return err
	}

	header := []string{"Student", "Student ID"}
	if len(listing) > 0 {
		for _, g := range listing[0].Grades {
			header = append(header, fmt.Sprintf("%s (%d)", g.ItemName, g.TotalPoints))
		}
	}

	titleColor.Fprintln(s.out, "\nClass Grades:")
	table := tablewriter.NewWriter(s.out)
	table.SetHeader(header)
	for _, sg := range listing {
		row := []string{
			fmt.Sprintf("%s, %s", sg.Student.LastName(), sg.Student.FirstName()),
			strconv.Itoa(sg.Student.StudentID()),
		}
		for _, g := range sg.Grades {
			row = append(row, formatScore(g))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func (s *Shell) importCSV() error {
	rawKind, err := s.prompt("Enter import type (students/items/grades): ")
	if err != nil {
		return err
	}
	kind, err := importer.ParseKind(rawKind)
	if err != nil {
		return inputError("Enter one of students, items or grades.")
	}
	path, err := s.prompt("Enter the CSV file path: ")
	if err != nil {
		return err
	}

	result, err := importer.ImportFile(s.course, importer.ImportConfig{Kind: kind, SourceFile: path})
	if err != nil {
		return err
	}

	successColor.Fprintf(s.out, "Import completed: %d imported, %d failed\n", result.SuccessCount, result.FailedCount)
	for i := 0; i < min(10, len(result.Errors)); i++ {
		errorColor.Fprintf(s.out, "- %v\n", result.Errors[i])
	}
	return nil
}

func (s *Shell) printError(err error) {
	errorColor.Fprintf(s.out, "Error: %v\n", err)
}

func (s *Shell) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, ok := s.readLine()
	if !ok {
		return "", errInputClosed
	}
	return line, nil
}

func (s *Shell) promptInt(label, invalid string) (int, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, inputError(invalid)
	}
	return v, nil
}

// inputError is a coercion failure; its message is shown as-is.
type inputError string

func (e inputError) Error() string { return string(e) }

func formatScore(g gradebook.GradeEntry) string {
	if !g.Score.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", g.Score.Float64)
}
