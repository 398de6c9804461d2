package render

import (
	"fmt"
	"strings"
)

// Text renders items as plain text, one row per line. Content rows show the
// name, id and category; placeholders show a sponsored marker.
func Text(items []Item) string {
	var b strings.Builder
	n := 0
	for _, item := range items {
		if item.IsPlaceholder() {
			b.WriteString("   -- sponsored --\n")
			continue
		}
		n++
		fmt.Fprintf(&b, "%2d. %s (%s)", n, item.Entry.Name, item.Entry.ID)
		if category := strings.TrimSpace(item.Entry.Category); category != "" {
			fmt.Fprintf(&b, " [%s]", category)
		}
		b.WriteString("\n")
	}
	return b.String()
}
