package diffanalyzer

import "fmt"

// FileSize pairs a path with its size in bytes, the input to the
// large-files pass, which runs over file sizes rather than line
// content.
type FileSize struct {
	Path  string
	Bytes int64
}

// DefaultLargeFileThreshold is the size above which a staged file is
// reported, chosen to flag accidental binary or data-dump commits
// without tripping on ordinary generated code.
const DefaultLargeFileThreshold = 1 << 20 // 1 MiB

// FindLargeFiles reports every file at or above threshold, a separate
// pass from the line-content detectors since it needs only file sizes.
// A threshold of zero or less uses DefaultLargeFileThreshold.
func FindLargeFiles(files []FileSize, threshold int64) []Violation {
	if threshold <= 0 {
		threshold = DefaultLargeFileThreshold
	}
	var violations []Violation
	for _, f := range files {
		if f.Bytes >= threshold {
			violations = append(violations, Violation{
				File:    f.Path,
				Rule:    "large-file",
				Content: fmt.Sprintf("%d bytes", f.Bytes),
			})
		}
	}
	return violations
}
