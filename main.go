package main

import (
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/nonsonwune/gradebook/config"
	"github.com/nonsonwune/gradebook/gradebook"
	"github.com/nonsonwune/gradebook/importer"
	"github.com/nonsonwune/gradebook/shell"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	course := gradebook.NewCourse()
	seedCourse(course, cfg)

	if err := shell.New(course, cfg.CourseName, os.Stdin, os.Stdout).Run(); err != nil {
		log.Fatal(err)
	}
}

// seedCourse imports the configured CSV files. Students and items load before
// grades so grade rows can resolve them.
func seedCourse(course *gradebook.Course, cfg config.Config) {
	seeds := []importer.ImportConfig{
		{Kind: importer.KindStudents, SourceFile: cfg.StudentsFile},
		{Kind: importer.KindItems, SourceFile: cfg.ItemsFile},
		{Kind: importer.KindGrades, SourceFile: cfg.GradesFile},
	}

	for _, seed := range seeds {
		if seed.SourceFile == "" {
			continue
		}
		result, err := importer.ImportFile(course, seed)
		if err != nil {
			log.Printf("Warning: could not import %s from %s: %v", seed.Kind, seed.SourceFile, err)
			continue
		}
		log.Printf("Imported %d %s from %s (%d failed)", result.SuccessCount, seed.Kind, seed.SourceFile, result.FailedCount)
	}
}
