package naming

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFileName_Format(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 3, 999, time.UTC)
	if got, want := FileName(ts), "20240307090503.jpg"; got != want {
		t.Fatalf("FileName = %q, want %q", got, want)
	}
}

func TestFileName_MatchesPattern(t *testing.T) {
	times := []time.Time{
		time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2038, time.January, 19, 3, 14, 8, 0, time.Local),
		time.Now(),
	}
	for _, ts := range times {
		name := FileName(ts)
		if !Valid(name) {
			t.Fatalf("name %q for %v does not match pattern", name, ts)
		}
	}
}

func TestFileName_DistinctAcrossSeconds(t *testing.T) {
	base := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	seen := make(map[string]time.Time)
	for i := 0; i < 3600; i++ {
		ts := base.Add(time.Duration(i) * time.Second)
		name := FileName(ts)
		if prev, ok := seen[name]; ok {
			t.Fatalf("duplicate name %q for %v and %v", name, prev, ts)
		}
		seen[name] = ts
	}
}

func TestFileName_SameSecondCollides(t *testing.T) {
	ts := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	if FileName(ts) != FileName(ts.Add(500*time.Millisecond)) {
		t.Fatalf("names within one second should be equal")
	}
}

func TestPicturePath(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)
	dir := filepath.Join("tmp", "pictures")
	if got, want := PicturePath(dir, ts), filepath.Join(dir, "20240307090503.jpg"); got != want {
		t.Fatalf("PicturePath = %q, want %q", got, want)
	}
}

func TestValid_Rejects(t *testing.T) {
	for _, name := range []string{"", "2024030709050.jpg", "20240307090503.png", "2024-03-07.jpg", "x20240307090503.jpg"} {
		if Valid(name) {
			t.Fatalf("Valid(%q) = true", name)
		}
	}
}
