package diffanalyzer

import "regexp"

// suppressionPatterns matches lint/type-checker silencing comments
// across several ecosystems: Python, JS/TS, Go, Rust.
var suppressionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"python-noqa", regexp.MustCompile(`#\s*noqa\b`)},
	{"python-type-ignore", regexp.MustCompile(`#\s*type:\s*ignore\b`)},
	{"python-pylint-disable", regexp.MustCompile(`#\s*pylint:\s*disable`)},
	{"eslint-disable", regexp.MustCompile(`//\s*eslint-disable`)},
	{"ts-ignore", regexp.MustCompile(`//\s*@ts-(?:ignore|expect-error|nocheck)\b`)},
	{"go-nolint", regexp.MustCompile(`//\s*nolint\b`)},
	{"rust-allow", regexp.MustCompile(`#\[allow\(`)},
}

// FindSuppressions scans added lines for lint/type-checker silencing
// comments. One violation per matching line.
func FindSuppressions(lines []AddedLine) []Violation {
	var violations []Violation
	for _, l := range lines {
		for _, p := range suppressionPatterns {
			if p.re.MatchString(l.Content) {
				violations = append(violations, Violation{
					File: l.File, LineNumber: l.LineNumber,
					Rule: p.name, Content: l.Content,
				})
				break
			}
		}
	}
	return violations
}
