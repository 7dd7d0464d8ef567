package store

import "testing"

func seedQueryFixtures(t *testing.T, s *Store) {
	t.Helper()
	specs := []struct {
		path     string
		typ      string
		year     int
		summary  string
		keywords []string
	}{
		{"reports/annual_report.pdf", "PDF Document", 2020, "Annual revenue grew.", []string{"revenue", "growth"}},
		{"photos/party.jpg", "Image", 2020, "", nil},
		{"photos/old_photo.jpg", "Image", 2015, "", nil},
		{"notes/meeting.txt", "Text", 2021, "Notes about the budget meeting.", []string{"budget", "planning"}},
		{"code/main.go", "Code", 2021, "", []string{"server", "handler"}},
	}
	for _, sp := range specs {
		r := testRecord(sp.path)
		r.CategoryType = sp.typ
		r.CategoryYear = sp.year
		r.Summary = sp.summary
		r.Keywords = sp.keywords
		if err := s.Upsert(r); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}
}

func paths(records []*FileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}

func TestQueryEmptyFiltersReturnAll(t *testing.T) {
	s := openTestStore(t)
	seedQueryFixtures(t, s)

	records, err := s.Query(Filters{})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("empty filters should act as wildcards, got %d records", len(records))
	}
}

func TestQueryFilenameSubstringCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	seedQueryFixtures(t, s)

	records, err := s.Query(Filters{FilenameSubstring: "REPORT"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 1 || records[0].Path != "reports/annual_report.pdf" {
		t.Errorf("unexpected result: %v", paths(records))
	}
}

func TestQueryTypeAndYearCombineWithAND(t *testing.T) {
	s := openTestStore(t)
	seedQueryFixtures(t, s)

	records, err := s.Query(Filters{Types: []string{"Image"}, Years: []int{2020}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 1 || records[0].Path != "photos/party.jpg" {
		t.Errorf("expected only the 2020 image, got %v", paths(records))
	}
}

func TestQueryYearSetMatchesAny(t *testing.T) {
	s := openTestStore(t)
	seedQueryFixtures(t, s)

	records, err := s.Query(Filters{Years: []int{2015, 2021}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records for years {2015,2021}, got %v", paths(records))
	}
}

func TestQueryKeywordsUseORSemantics(t *testing.T) {
	s := openTestStore(t)
	seedQueryFixtures(t, s)

	// "budget" hits the meeting notes, "revenue" hits the report;
	// either keyword alone qualifies a record.
	records, err := s.Query(Filters{Keywords: []string{"budget", "revenue"}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %v", paths(records))
	}
	if records[0].Path != "notes/meeting.txt" || records[1].Path != "reports/annual_report.pdf" {
		t.Errorf("unexpected order or results: %v", paths(records))
	}
}

func TestQueryKeywordMatchesSummaryToo(t *testing.T) {
	s := openTestStore(t)
	seedQueryFixtures(t, s)

	// "grew" appears only in the report summary, not its keyword list.
	records, err := s.Query(Filters{Keywords: []string{"grew"}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 1 || records[0].Path != "reports/annual_report.pdf" {
		t.Errorf("expected summary match, got %v", paths(records))
	}
}

func TestQueryTypeCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	seedQueryFixtures(t, s)

	records, err := s.Query(Filters{Types: []string{"image"}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 images, got %v", paths(records))
	}
}

func TestQueryOrderIsStable(t *testing.T) {
	s := openTestStore(t)
	seedQueryFixtures(t, s)

	first, err := s.Query(Filters{Types: []string{"Image"}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	second, err := s.Query(Filters{Types: []string{"Image"}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("result counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Errorf("ordering not deterministic at %d: %q vs %q", i, first[i].Path, second[i].Path)
		}
	}
	// Path ascending.
	if first[0].Path != "photos/old_photo.jpg" {
		t.Errorf("expected path-ascending order, got %v", paths(first))
	}
}
