package importer

import (
	"log"
	"sort"
)

type ImportStats struct {
	TotalProcessed int
	ValidRecords   int
	SkippedRecords int
	ErrorsByType   map[string]int
}

func NewImportStats() *ImportStats {
	return &ImportStats{
		ErrorsByType: make(map[string]int),
	}
}

func (s *ImportStats) AddError(errType string) {
	s.ErrorsByType[errType]++
	s.SkippedRecords++
}

func (s *ImportStats) PrintSummary() {
	log.Printf("Total Records Processed: %d", s.TotalProcessed)
	if s.TotalProcessed == 0 {
		return
	}
	log.Printf("Successfully Imported: %d (%.2f%%)",
		s.ValidRecords, float64(s.ValidRecords)/float64(s.TotalProcessed)*100)
	log.Printf("Skipped Records: %d (%.2f%%)",
		s.SkippedRecords, float64(s.SkippedRecords)/float64(s.TotalProcessed)*100)

	if len(s.ErrorsByType) == 0 {
		return
	}

	type typeCount struct {
		code  string
		count int
	}
	counts := make([]typeCount, 0, len(s.ErrorsByType))
	for code, count := range s.ErrorsByType {
		counts = append(counts, typeCount{code, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].code < counts[j].code
	})

	log.Printf("Errors by Type:")
	for _, c := range counts {
		log.Printf("- %s: %d occurrences", c.code, c.count)
	}
}
