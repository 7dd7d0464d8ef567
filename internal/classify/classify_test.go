package classify

import (
	"testing"
	"time"
)

func TestByExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want Category
	}{
		{".pdf", PDF},
		{".docx", Word},
		{".DOC", Word},
		{".xlsx", Excel},
		{".pptx", PowerPoint},
		{".txt", Text},
		{".md", Text},
		{".go", Code},
		{".py", Code},
		{".jpg", Image},
		{".JPEG", Image},
		{".zip", Archive},
		{".mp3", Audio},
		{".mp4", Video},
		{".xyz", Other},
		{"", Other},
		{"pdf", PDF}, // missing dot is tolerated
	}

	for _, tc := range cases {
		if got := ByExtension(tc.ext); got != tc.want {
			t.Errorf("ByExtension(%q) = %q, want %q", tc.ext, got, tc.want)
		}
	}
}

func TestByPath(t *testing.T) {
	if got := ByPath("events/2020/report.pdf"); got != PDF {
		t.Errorf("ByPath = %q, want %q", got, PDF)
	}
	if got := ByPath("README"); got != Other {
		t.Errorf("ByPath = %q, want %q", got, Other)
	}
}

func TestYearFromPath(t *testing.T) {
	cases := []struct {
		path   string
		want   int
		wantOK bool
	}{
		{"events/2019/flyer.png", 2019, true},
		{"Protokoll_2021-03.pdf", 2021, true},
		{"2018/sub/notes_2020.txt", 2020, true}, // last match wins
		{"notes.txt", 0, false},
		{"ip-1984-3000.log", 1984, true},
		{"budget-9999.xls", 0, false}, // implausible year ignored
	}

	for _, tc := range cases {
		got, ok := YearFromPath(tc.path)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("YearFromPath(%q) = (%d, %v), want (%d, %v)",
				tc.path, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestYearPrecedence(t *testing.T) {
	mod := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	// Path hint beats metadata and mtime.
	if got := Year("archiv/2015/doc.pdf", 2010, mod); got != 2015 {
		t.Errorf("Year with path hint = %d, want 2015", got)
	}
	// Metadata beats mtime.
	if got := Year("doc.pdf", 2010, mod); got != 2010 {
		t.Errorf("Year with metadata = %d, want 2010", got)
	}
	// Mtime is the fallback.
	if got := Year("doc.pdf", 0, mod); got != 2023 {
		t.Errorf("Year fallback = %d, want 2023", got)
	}
}

func TestCategoriesClosedSet(t *testing.T) {
	cats := Categories()
	if len(cats) != 11 {
		t.Fatalf("expected 11 categories, got %d", len(cats))
	}
	seen := make(map[Category]bool)
	for _, c := range cats {
		if seen[c] {
			t.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}
}
