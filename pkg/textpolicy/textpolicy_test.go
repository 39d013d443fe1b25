package textpolicy

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{
			name: "short string unchanged",
			in:   "hello",
			max:  10,
			want: "hello",
		},
		{
			name: "exact length unchanged",
			in:   "hello",
			max:  5,
			want: "hello",
		},
		{
			name: "cut with ellipsis",
			in:   "hello world",
			max:  8,
			want: "hello...",
		},
		{
			name: "empty string",
			in:   "",
			max:  5,
			want: "",
		},
		{
			name: "zero max",
			in:   "hello",
			max:  0,
			want: "",
		},
		{
			name: "max below ellipsis width",
			in:   "hello",
			max:  2,
			want: "..",
		},
		{
			name: "max equals ellipsis width",
			in:   "hello",
			max:  3,
			want: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

// TestTruncateOversizedSummary checks the headline scenario: a 1200
// character summary capped at 800 comes back exactly 800 characters with
// the last three being the ellipsis marker.
func TestTruncateOversizedSummary(t *testing.T) {
	in := strings.Repeat("a", 1200)

	got := Truncate(in, 800)
	if len(got) != 800 {
		t.Fatalf("len = %d, want 800", len(got))
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("result does not end with %q", Ellipsis)
	}
	if got[:797] != in[:797] {
		t.Error("truncated prefix does not match input")
	}
}

// TestTruncateIdempotent checks truncate(truncate(s,n),n) == truncate(s,n)
// for a range of strings and limits n >= 4.
func TestTruncateIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"short",
		strings.Repeat("x", 50),
		strings.Repeat("word ", 300),
		"ünïcødé çhäracters repeated " + strings.Repeat("ü", 100),
	}
	limits := []int{4, 5, 10, 100, 800}

	for _, s := range inputs {
		for _, n := range limits {
			once := Truncate(s, n)
			twice := Truncate(once, n)
			if once != twice {
				t.Errorf("Truncate not idempotent for len=%d max=%d: %q != %q",
					len(s), n, once, twice)
			}
			if utf8.RuneCountInString(once) > n {
				t.Errorf("Truncate(%d runes, %d) returned %d runes",
					utf8.RuneCountInString(s), n, utf8.RuneCountInString(once))
			}
		}
	}
}

// TestTruncateRuneSafe ensures multibyte runes are never split.
func TestTruncateRuneSafe(t *testing.T) {
	in := strings.Repeat("日本語テキスト", 40)

	got := Truncate(in, 50)
	if !utf8.ValidString(got) {
		t.Fatal("result is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != 50 {
		t.Errorf("rune count = %d, want 50", n)
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("result does not end with %q", Ellipsis)
	}
}

func TestLimit(t *testing.T) {
	tests := []struct {
		name string
		site Site
		want int
	}{
		{"title", SiteTitle, 120},
		{"headline", SiteHeadline, 200},
		{"summary", SiteSummary, 800},
		{"body", SiteBody, 800},
		{"short cell", SiteCellShort, 100},
		{"medium cell", SiteCellMedium, 150},
		{"long cell", SiteCellLong, 300},
		{"unknown site falls back to body", Site(999), 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Limit(tt.site); got != tt.want {
				t.Errorf("Limit(%v) = %d, want %d", tt.site, got, tt.want)
			}
		})
	}
}

func TestTruncateAt(t *testing.T) {
	long := strings.Repeat("j", 500)

	got := TruncateAt(long, SiteCellLong)
	if len(got) != 300 {
		t.Errorf("len = %d, want 300", len(got))
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("result does not end with %q", Ellipsis)
	}

	if got := TruncateAt("fine", SiteCellShort); got != "fine" {
		t.Errorf("TruncateAt(short input) = %q, want unchanged", got)
	}
}
