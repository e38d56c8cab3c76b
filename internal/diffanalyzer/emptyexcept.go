package diffanalyzer

import (
	"regexp"
	"strings"
)

// emptyExceptPatterns enumerate the exact Python shapes §4.4 flags:
// a trailing "pass" or "..." body, a bare "except:", or a lone
// Exception/BaseException catch with no narrower type.
var emptyExceptPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"trailing-pass", regexp.MustCompile(`:\s*pass\s*$`)},
	{"trailing-ellipsis", regexp.MustCompile(`:\s*\.\.\.\s*$`)},
	{"bare-except", regexp.MustCompile(`^\s*except\s*:\s*$`)},
	{"broad-except", regexp.MustCompile(`^\s*except\s+(Exception|BaseException)\s*:\s*$`)},
}

// pythonFileExtensions are the file suffixes the empty-except detector
// applies to.
var pythonFileExtensions = []string{".py", ".pyx"}

// FindEmptyExcepts scans added lines in Python files for the
// empty-except and trailing-pass/ellipsis shapes §4.4 names. Non-Python
// files are skipped entirely.
func FindEmptyExcepts(lines []AddedLine) []Violation {
	var violations []Violation
	for _, l := range lines {
		if !isPythonFile(l.File) {
			continue
		}
		for _, p := range emptyExceptPatterns {
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

func isPythonFile(path string) bool {
	for _, ext := range pythonFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
