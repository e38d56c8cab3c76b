package diffanalyzer

import "testing"

const sampleDiff = `diff --git a/pkg/foo.go b/pkg/foo.go
index 1234567..89abcde 100644
--- a/pkg/foo.go
+++ b/pkg/foo.go
@@ -10,6 +10,8 @@ func Foo() {
 	x := 1
 	y := 2
-	z := 3
+	z := 4
+	w := 5
 	fmt.Println(x, y, z)
+	// TODO: remove this
 }
`

func TestParseAddedLines(t *testing.T) {
	lines := ParseAddedLines(sampleDiff)

	want := []AddedLine{
		{File: "pkg/foo.go", LineNumber: 12, Content: "\tz := 4"},
		{File: "pkg/foo.go", LineNumber: 13, Content: "\tw := 5"},
		{File: "pkg/foo.go", LineNumber: 15, Content: "\t// TODO: remove this"},
	}

	if len(lines) != len(want) {
		t.Fatalf("got %d added lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i, l := range lines {
		if l != want[i] {
			t.Errorf("line %d: got %+v, want %+v", i, l, want[i])
		}
	}
}

func TestParseAddedLinesIsIdempotent(t *testing.T) {
	// Re-running the parser over its own output's content lines (each
	// re-wrapped as an addition) must reproduce the same triples,
	// matching the round-trip property in the specification.
	first := ParseAddedLines(sampleDiff)

	var rebuilt string
	rebuilt += "diff --git a/pkg/foo.go b/pkg/foo.go\n"
	rebuilt += "--- a/pkg/foo.go\n+++ b/pkg/foo.go\n"
	rebuilt += "@@ -1,0 +12,4 @@\n"
	for _, l := range first {
		rebuilt += "+" + l.Content + "\n"
	}

	second := ParseAddedLines(rebuilt)
	if len(second) != len(first) {
		t.Fatalf("got %d lines after re-parse, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i].Content != second[i].Content {
			t.Errorf("content mismatch at %d: %q vs %q", i, first[i].Content, second[i].Content)
		}
	}
}

func TestParseAddedLinesNoHeader(t *testing.T) {
	lines := ParseAddedLines("not a diff\njust text\n")
	if lines != nil {
		t.Errorf("expected no added lines for non-diff input, got %+v", lines)
	}
}

func TestParseAddedLinesMultipleFiles(t *testing.T) {
	diff := `diff --git a/a.py b/a.py
--- a/a.py
+++ b/a.py
@@ -1,1 +1,2 @@
 existing
+new in a
diff --git a/b.py b/b.py
--- a/b.py
+++ b/b.py
@@ -1,1 +1,2 @@
 existing
+new in b
`
	lines := ParseAddedLines(diff)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %+v", len(lines), lines)
	}
	if lines[0].File != "a.py" || lines[1].File != "b.py" {
		t.Errorf("file attribution wrong: %+v", lines)
	}
}
