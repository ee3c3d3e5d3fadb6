package analysis

import (
	"regexp"
	"strings"
)

// field maps a record field to the label prefixes that may introduce it.
type field struct {
	name   string
	labels []string
}

var listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•#>]+)\s*`)

// splitLabel splits "1. **Summary**: text" into ("summary", "text").
func splitLabel(line string) (label, value string, ok bool) {
	line = listMarker.ReplaceAllString(line, "")
	idx := strings.IndexByte(line, ':')
	if idx <= 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.Trim(line[:idx], " \t*_"))
	value = strings.TrimSpace(strings.TrimLeft(line[idx+1:], "*_"))
	return label, value, label != ""
}

func matchField(label string, fields []field) (string, bool) {
	for _, f := range fields {
		for _, l := range f.labels {
			if strings.HasPrefix(label, l) {
				return f.name, true
			}
		}
	}
	return "", false
}

// parseLabels scans text line by line and returns the first non-empty value
// seen for each field. Lines without a known label are ignored.
func parseLabels(text string, fields []field) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		label, value, ok := splitLabel(line)
		if !ok || isBlank(value) {
			continue
		}
		name, ok := matchField(label, fields)
		if !ok {
			continue
		}
		if _, seen := out[name]; !seen {
			out[name] = value
		}
	}
	return out
}

// isBlank treats template echoes like "[brief]" and "n/a" as no value.
func isBlank(v string) bool {
	v = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(v), "."))
	if v == "" {
		return true
	}
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		return true
	}
	switch strings.ToLower(v) {
	case "none", "n/a", "na", "-", "nothing", "no", "null":
		return true
	}
	return false
}

// splitList splits a comma or semicolon separated value into trimmed items.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' }) {
		item = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(item), "."))
		if !isBlank(item) {
			out = append(out, item)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func listOrDefault(v, def []string) []string {
	if len(v) == 0 {
		return append([]string(nil), def...)
	}
	return v
}
