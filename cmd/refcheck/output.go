package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/LyzardKing/refchecker/internal/compare"
	"github.com/LyzardKing/refchecker/internal/report"
)

// TitleMaxLen truncates titles in human-readable summaries.
const TitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// printHumanReport renders a verification report for terminal reading.
func printHumanReport(rep report.Report) {
	for i, entry := range rep.Entries {
		fmt.Printf("[%d] %s\n", i+1, entryTitle(entry))

		switch {
		case entry.Canonical != nil && len(entry.Discrepancies) == 0:
			fmt.Printf("    OK  matched via %s (score %.2f)\n", entry.Canonical.Provider, entry.Score)
		case entry.Canonical != nil:
			fmt.Printf("    matched via %s (score %.2f)\n", entry.Canonical.Provider, entry.Score)
		}

		for _, d := range entry.Discrepancies {
			label := "WARN"
			if d.Severity == compare.SeverityError {
				label = "ERROR"
			}
			fmt.Printf("    [%s] %s: %s\n", label, d.Field, d.Message)
			if d.Claimed != "" || d.Canonical != "" {
				fmt.Printf("            claimed:   %s\n", d.Claimed)
				fmt.Printf("            canonical: %s\n", d.Canonical)
			}
		}
		fmt.Println()
	}

	s := rep.Summary
	fmt.Printf("%d references: %d errors, %d warnings, %d unresolved\n",
		s.References, s.Errors, s.Warnings, s.Unresolved)
}

func entryTitle(entry report.Entry) string {
	title := entry.Claim.Title
	if title == "" {
		title = entry.Claim.RawText
	}
	title = strings.Join(strings.Fields(title), " ")
	if len(title) > TitleMaxLen {
		title = title[:TitleMaxLen-3] + "..."
	}
	return title
}
