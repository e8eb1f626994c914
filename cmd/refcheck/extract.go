package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LyzardKing/refchecker/internal/reference"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract bibliography entries without verifying them",
	Long: `Extract bibliography entries from text or PDF input and print the
parsed claims as JSON. Useful for inspecting what verify would check, or
for editing claims before feeding them back in as a .json file.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

// ExtractResult is the response for the extract command.
type ExtractResult struct {
	Claims []reference.Claim `json:"claims"`
	Count  int               `json:"count"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	claims, err := loadClaims(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if claims == nil {
		claims = []reference.Claim{}
	}

	if humanOutput {
		for i, claim := range claims {
			fmt.Printf("[%d] %s\n", i+1, claimSummary(claim))
		}
		fmt.Printf("\n%d entries\n", len(claims))
		return nil
	}

	return outputJSON(ExtractResult{Claims: claims, Count: len(claims)})
}

func claimSummary(claim reference.Claim) string {
	title := claim.Title
	if title == "" {
		title = claim.RawText
	}
	if len(title) > TitleMaxLen {
		title = title[:TitleMaxLen-3] + "..."
	}

	var tags []string
	if claim.Year != 0 {
		tags = append(tags, fmt.Sprintf("%d", claim.Year))
	}
	if claim.DOI != "" {
		tags = append(tags, "doi:"+claim.DOI)
	}
	if claim.ArXivID != "" {
		tags = append(tags, "arXiv:"+claim.ArXivID)
	}
	if len(tags) == 0 {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, strings.Join(tags, ", "))
}
