package diffanalyzer

// Report bundles every detector's findings over one diff, plus the
// separate file-size pass.
type Report struct {
	Secrets      []Violation
	Suppressions []Violation
	EmptyExcepts []Violation
	TODOs        []Violation
	LargeFiles   []Violation
}

// Empty reports whether no detector found anything.
func (r Report) Empty() bool {
	return len(r.Secrets) == 0 && len(r.Suppressions) == 0 &&
		len(r.EmptyExcepts) == 0 && len(r.TODOs) == 0 && len(r.LargeFiles) == 0
}

// Analyze runs every line-content detector over diff and the
// file-size pass over sizes, returning a combined report.
func Analyze(diff string, sizes []FileSize) Report {
	lines := ParseAddedLines(diff)
	return Report{
		Secrets:      FindSecrets(lines),
		Suppressions: FindSuppressions(lines),
		EmptyExcepts: FindEmptyExcepts(lines),
		TODOs:        FindTODOs(lines),
		LargeFiles:   FindLargeFiles(sizes, 0),
	}
}
