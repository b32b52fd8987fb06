// Package config holds the run configuration assembled from CLI flags.
package config

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents one vaultcopy run.
type Config struct {
	// Root is the vault root directory to read from.
	Root string
	// Destination is the directory the selection is copied into.
	Destination string
	// IncludeTags and ExcludeTags hold the tag filter, already split
	// and trimmed.
	IncludeTags []string
	ExcludeTags []string
	// ExcludeDirs lists extra directory names skipped during traversal.
	ExcludeDirs []string
	// LogLevel controls console verbosity (trace..error).
	LogLevel string
	// DryRun computes and prints the manifest without copying.
	DryRun bool
}

// Validate checks the configuration. An overlapping or self-defeating
// tag filter is deliberately NOT an error; it just selects little or
// nothing.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required, validation.By(isDirectory)),
		validation.Field(&c.Destination, validation.Required.When(!c.DryRun).Error("cannot be blank unless --dry-run is set")),
	)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// isDirectory is an ozzo rule asserting the value names an existing
// directory.
func isDirectory(value any) error {
	path, _ := value.(string)
	if path == "" {
		return nil // Required handles the empty case.
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("does not exist")
	}
	if !info.IsDir() {
		return fmt.Errorf("is not a directory")
	}
	return nil
}

// SplitTagValues flattens repeated and comma-delimited flag values into
// a trimmed tag list: ["a,b", "c"] -> ["a", "b", "c"].
func SplitTagValues(values []string) []string {
	var tags []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				tags = append(tags, part)
			}
		}
	}
	return tags
}
