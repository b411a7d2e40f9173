package guard

import (
	"sort"
	"strings"
)

// dedent strips the longest common leading whitespace from every non-blank
// line and trims surrounding blank space, so multiline messages written as
// indented raw strings read cleanly.
func dedent(s string) string {
	lines := strings.Split(s, "\n")

	margin := ""
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		if !found {
			margin = indent
			found = true
			continue
		}
		margin = commonPrefix(margin, indent)
	}

	if margin != "" {
		for i, line := range lines {
			lines[i] = strings.TrimPrefix(line, margin)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// sortedKeys returns the map's keys in deterministic order for rendering.
func sortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
