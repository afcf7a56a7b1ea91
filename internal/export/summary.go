package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/garyjia/docsynth/internal/models"
)

// WriteSummary prints a human-readable summary of md
func WriteSummary(w io.Writer, md *Metadata) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "DOCUMENT GENERATION SUMMARY")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\nGenerated Documents:")
	for _, class := range summaryOrder(md.Counts) {
		line := fmt.Sprintf("  %s: %d documents", strings.ToUpper(class), md.Counts[class])
		if failed := md.Failed[class]; failed > 0 {
			line += fmt.Sprintf(" (%d failed)", failed)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "  TOTAL: %d documents\n", md.Total())

	if md.OutputDirectory != "" {
		fmt.Fprintf(w, "\nOutput Directory: %s\n", md.OutputDirectory)
	}
	fmt.Fprintf(w, "Generation Time: %.2f seconds\n", md.GenerationTime)

	if s := md.SplitInfo; s.Total > 0 {
		fmt.Fprintln(w, "\nDataset Split:")
		fmt.Fprintf(w, "  Training: %d (%.1f%%)\n", s.Train, percent(s.Train, s.Total))
		fmt.Fprintf(w, "  Validation: %d (%.1f%%)\n", s.Validation, percent(s.Validation, s.Total))
		fmt.Fprintf(w, "  Test: %d (%.1f%%)\n", s.Test, percent(s.Test, s.Total))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
}

// summaryOrder lists known classes in batch order, then anything else sorted
func summaryOrder(counts map[string]int) []string {
	var out []string
	known := make(map[string]bool)
	for _, c := range models.AllClasses {
		known[string(c)] = true
		if _, ok := counts[string(c)]; ok {
			out = append(out, string(c))
		}
	}
	var rest []string
	for c := range counts {
		if !known[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
