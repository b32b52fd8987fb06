// Package display renders user-facing warning blocks on the CLI.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/harrison/vaultcopy/internal/models"
)

// Warning represents a user-facing warning message.
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related items, one per line (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes a formatted warning block in yellow.
func (w Warning) Display(out io.Writer) {
	yellow := color.New(color.FgYellow)

	yellow.Fprintf(out, "⚠ Warning: %s\n", w.Title)
	if w.Message != "" {
		yellow.Fprintf(out, "    %s\n", w.Message)
	}
	for i, item := range w.Items {
		yellow.Fprintf(out, "      %d. %s\n", i+1, item)
	}
	if w.Suggestion != "" {
		yellow.Fprintf(out, "    Suggestion: %s\n", w.Suggestion)
	}
}

// UnresolvedReferences builds the warning block for references whose
// targets were not found in the vault.
func UnresolvedReferences(refs []models.UnresolvedReference) Warning {
	items := make([]string, 0, len(refs))
	for _, ref := range refs {
		items = append(items, fmt.Sprintf("%s -> %s", ref.Source, ref.Target))
	}
	return Warning{
		Title:      fmt.Sprintf("%d reference(s) could not be resolved", len(refs)),
		Message:    "The referencing files are still copied; only the missing targets are skipped.",
		Items:      items,
		Suggestion: "Fix or remove the broken links to silence this warning.",
	}
}

// FrontMatterFailures builds the warning block for files whose front
// matter failed to decode.
func FrontMatterFailures(warnings []models.FrontMatterWarning) Warning {
	items := make([]string, 0, len(warnings))
	for _, fw := range warnings {
		items = append(items, fw.Path)
	}
	return Warning{
		Title:   fmt.Sprintf("%d file(s) with malformed front matter", len(warnings)),
		Message: "These files were processed as if they had no front matter.",
		Items:   items,
	}
}
