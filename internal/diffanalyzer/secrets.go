package diffanalyzer

import (
	"regexp"
	"strings"
)

// Violation is one detector hit against an added line.
type Violation struct {
	File       string
	LineNumber int
	Rule       string
	Content    string
}

// secretPatterns matches well-known token shapes that should never
// appear in a diff, regardless of surrounding context.
var secretPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"github-pat", regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`)},
	{"aws-access-key", regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)},
	{"slack-token", regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`)},
	{"openai-key", regexp.MustCompile(`\bsk-[A-Za-z0-9]{20,}\b`)},
	{"google-api-key", regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}\b`)},
	{"stripe-key", regexp.MustCompile(`\b(?:sk|pk)_(?:live|test)_[A-Za-z0-9]{16,}\b`)},
}

// genericSecretPattern catches the common "api_key = '...'" shape
// across languages (=, :, or =>), suppressed per-file below.
var genericSecretPattern = regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password)\s*(=|:|=>)\s*["'][^"'\s]{8,}["']`)

// suppressedSecretPathMarkers turns off the generic pattern (but never
// the well-known token-shape patterns) for paths that plausibly
// contain fixture or test credentials.
var suppressedSecretPathMarkers = []string{"test", "spec", "mock", "fixture"}

// credentialsDirMarker excludes an entire path from every secret check:
// it is the canonical place real per-project secrets live and diffing
// it is expected.
const credentialsDirMarker = ".credentials/"

// FindSecrets scans added lines for hard-coded credentials. One
// violation is reported per matching line, even if multiple patterns
// would match it.
func FindSecrets(lines []AddedLine) []Violation {
	var violations []Violation
	for _, l := range lines {
		if strings.Contains(l.File, credentialsDirMarker) {
			continue
		}

		if v, ok := matchSecretPatterns(l); ok {
			violations = append(violations, v)
			continue
		}

		if genericSecretPattern.MatchString(l.Content) && !isSuppressedSecretPath(l.File) {
			violations = append(violations, Violation{
				File: l.File, LineNumber: l.LineNumber,
				Rule: "hardcoded-secret", Content: l.Content,
			})
		}
	}
	return violations
}

func matchSecretPatterns(l AddedLine) (Violation, bool) {
	for _, p := range secretPatterns {
		if p.re.MatchString(l.Content) {
			return Violation{
				File: l.File, LineNumber: l.LineNumber,
				Rule: p.name, Content: l.Content,
			}, true
		}
	}
	return Violation{}, false
}

func isSuppressedSecretPath(path string) bool {
	lower := strings.ToLower(path)
	for _, marker := range suppressedSecretPathMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
