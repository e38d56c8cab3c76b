package idgen

import "testing"

func TestSlugifyBasic(t *testing.T) {
	cases := map[string]string{
		"Fix the Bug!!!":        "fix-the-bug",
		"  leading and trailing  ": "leading-and-trailing",
		"already-slug":           "already-slug",
		"Multiple   Spaces":      "multiple-spaces",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugifyEmptyBecomesTask(t *testing.T) {
	if got := Slugify("!!!"); got != "task" {
		t.Errorf("Slugify(%q) = %q, want %q", "!!!", got, "task")
	}
	if got := Slugify(""); got != "task" {
		t.Errorf("Slugify(\"\") = %q, want %q", got, "task")
	}
}

func TestSlugifyTruncatesWithoutTrailingDash(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "word "
	}
	got := Slugify(long)
	if len(got) > maxSlugLength {
		t.Fatalf("slug length %d exceeds max %d: %q", len(got), maxSlugLength, got)
	}
	if got[len(got)-1] == '-' {
		t.Errorf("slug %q ends in a dash", got)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Fix the Bug!!!", "  messy -- input  ", "", "already-slug-ish"}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestNewWorkItemIDHasSlugAndSuffix(t *testing.T) {
	id := NewWorkItemID("Fix the Bug")
	want := "fix-the-bug-"
	if len(id) != len(want)+4 {
		t.Fatalf("id %q has unexpected length", id)
	}
	if id[:len(want)] != want {
		t.Errorf("id %q does not start with %q", id, want)
	}
}

func TestNewWorkItemIDUniqueAcrossCalls(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewWorkItemID("same title")
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
