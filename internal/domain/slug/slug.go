// Package slug derives the per-scope uniqueness key from a title.
package slug

import "strings"

// Make lowercases and trims title, then turns every space into a dash.
// Runs of spaces are not collapsed.
func Make(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
}
