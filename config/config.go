package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultCourseName = "Gradebook System"

// Config holds the gradebook's runtime settings.
type Config struct {
	CourseName string

	// Optional CSV files imported before the menu starts.
	StudentsFile string
	ItemsFile    string
	GradesFile   string

	NoColor bool
}

// Load reads envFile (when it exists) into the environment and builds a Config.
// A missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	cfg := Config{
		CourseName:   getEnv("GRADEBOOK_NAME", DefaultCourseName),
		StudentsFile: strings.TrimSpace(os.Getenv("GRADEBOOK_STUDENTS_FILE")),
		ItemsFile:    strings.TrimSpace(os.Getenv("GRADEBOOK_ITEMS_FILE")),
		GradesFile:   strings.TrimSpace(os.Getenv("GRADEBOOK_GRADES_FILE")),
	}

	if v := os.Getenv("GRADEBOOK_NO_COLOR"); v != "" {
		noColor, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GRADEBOOK_NO_COLOR %q: %w", v, err)
		}
		cfg.NoColor = noColor
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
