package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentAccessors(t *testing.T) {
	s := NewStudent("Ana", "Lee", 1)

	assert.Equal(t, "Ana", s.FirstName())
	assert.Equal(t, "Lee", s.LastName())
	assert.Equal(t, 1, s.StudentID())
}

func TestGradeItemAccessors(t *testing.T) {
	item := NewGradeItem("Quiz1", 10)

	assert.Equal(t, "Quiz1", item.Name())
	assert.Equal(t, 10, item.TotalPoints())
}

func TestGradeItem_ScoreForUngraded(t *testing.T) {
	item := NewGradeItem("Quiz1", 10)

	score, ok := item.ScoreFor(1)
	assert.False(t, ok)
	assert.Zero(t, score)
	assert.Equal(t, 0, item.GradedCount())
}

func TestGradeItem_ZeroIsNotAbsent(t *testing.T) {
	item := NewGradeItem("Quiz1", 10)
	item.RecordGrade(1, 0)

	score, ok := item.ScoreFor(1)
	assert.True(t, ok)
	assert.Equal(t, 0.0, score)

	_, ok = item.ScoreFor(2)
	assert.False(t, ok)
}

func TestGradeItem_RecordGradeOverwrites(t *testing.T) {
	item := NewGradeItem("Quiz1", 100)
	item.RecordGrade(7, 85)
	item.RecordGrade(7, 85)

	score, ok := item.ScoreFor(7)
	assert.True(t, ok)
	assert.Equal(t, 85.0, score)
	assert.Equal(t, 1, item.GradedCount())

	item.RecordGrade(7, 40)
	score, _ = item.ScoreFor(7)
	assert.Equal(t, 40.0, score)
}

func TestGradeItem_NoBoundsCheck(t *testing.T) {
	item := NewGradeItem("Quiz1", 10)
	item.RecordGrade(1, 12.5)
	item.RecordGrade(2, -3)

	score, _ := item.ScoreFor(1)
	assert.Equal(t, 12.5, score)
	score, _ = item.ScoreFor(2)
	assert.Equal(t, -3.0, score)
}

func TestGradeItem_ZeroValueRecords(t *testing.T) {
	item := &GradeItem{name: "Lab", totalPoints: 5}
	item.RecordGrade(3, 4)

	score, ok := item.ScoreFor(3)
	assert.True(t, ok)
	assert.Equal(t, 4.0, score)
}
