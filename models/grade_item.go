package models

// GradeItem represents a gradable assignment or exam with a point ceiling.
// Scores are kept per student id; a missing entry means the student has not
// been graded, which is different from a recorded score of zero.
type GradeItem struct {
	name        string
	totalPoints int
	grades      map[int]float64
}

func NewGradeItem(name string, totalPoints int) *GradeItem {
	return &GradeItem{
		name:        name,
		totalPoints: totalPoints,
		grades:      make(map[int]float64),
	}
}

func (g *GradeItem) Name() string { return g.name }

func (g *GradeItem) TotalPoints() int { return g.totalPoints }

// RecordGrade sets the score for studentID, replacing any earlier score.
// Scores are not checked against the item's total points.
func (g *GradeItem) RecordGrade(studentID int, score float64) {
	if g.grades == nil {
		g.grades = make(map[int]float64)
	}
	g.grades[studentID] = score
}

// ScoreFor returns the recorded score and whether one exists.
func (g *GradeItem) ScoreFor(studentID int) (float64, bool) {
	score, ok := g.grades[studentID]
	return score, ok
}

// GradedCount returns how many students have a recorded score.
func (g *GradeItem) GradedCount() int {
	return len(g.grades)
}
