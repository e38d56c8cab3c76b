package diffanalyzer

import "regexp"

// todoMarkerPattern matches a TODO-family comment marker introduced by
// either a "#" or "//" comment prefix.
var todoMarkerPattern = regexp.MustCompile(`(?i)(#|//)\s*(TODO|FIXME|HACK|XXX)\b`)

// issueReferencePattern matches an issue tracker reference of the form
// "#PROJECT-123"; its presence on the same line suppresses the TODO
// finding, since the marker is tracked elsewhere.
var issueReferencePattern = regexp.MustCompile(`#[A-Za-z]+-[A-Za-z0-9]+`)

// FindTODOs scans added lines for untracked TODO/FIXME/HACK/XXX
// markers, suppressing any line that also carries an issue reference.
func FindTODOs(lines []AddedLine) []Violation {
	var violations []Violation
	for _, l := range lines {
		if !todoMarkerPattern.MatchString(l.Content) {
			continue
		}
		if issueReferencePattern.MatchString(l.Content) {
			continue
		}
		violations = append(violations, Violation{
			File: l.File, LineNumber: l.LineNumber,
			Rule: "untracked-todo", Content: l.Content,
		})
	}
	return violations
}
