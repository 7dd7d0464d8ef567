package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(path string) *FileRecord {
	return &FileRecord{
		Path:         path,
		Filename:     filepath.Base(path),
		Extension:    filepath.Ext(path),
		SizeBytes:    1234,
		ModifiedUnix: 1700000000,
		Fingerprint:  "fp-1",
		CategoryType: "Text",
		CategoryYear: 2020,
		Summary:      "a short summary",
		Keywords:     []string{"alpha", "beta"},
		Status:       StatusIndexed,
	}
}

func TestOpenAndMigrate(t *testing.T) {
	s := openTestStore(t)

	version, err := s.getSchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("expected schema version %d, got %d", currentSchemaVersion, version)
	}

	for _, table := range []string{"files", "schema_version"} {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}

	if err := s.CheckIntegrity(); err != nil {
		t.Errorf("integrity check failed: %v", err)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	rec := testRecord("docs/notes.txt")
	if err := s.Upsert(rec); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected ID to be assigned on insert")
	}

	// Second encounter of the same path updates, never duplicates.
	again := testRecord("docs/notes.txt")
	again.Summary = "replaced summary"
	again.Keywords = []string{"gamma"}
	if err := s.Upsert(again); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	count, err := s.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 record after double upsert, got %d", count)
	}

	got, err := s.GetByPath("docs/notes.txt")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Summary != "replaced summary" {
		t.Errorf("expected overwritten summary, got %q", got.Summary)
	}
	if len(got.Keywords) != 1 || got.Keywords[0] != "gamma" {
		t.Errorf("expected overwritten keywords, got %v", got.Keywords)
	}
}

func TestUpsertBatchAndRoundTrip(t *testing.T) {
	s := openTestStore(t)

	records := []*FileRecord{
		testRecord("a/one.txt"),
		testRecord("b/two.pdf"),
		testRecord("c/three.jpg"),
	}
	records[1].CategoryType = "PDF Document"
	records[2].CategoryType = "Image"
	records[2].CategoryYear = 0 // unknown year stored as NULL

	if err := s.UpsertBatch(records); err != nil {
		t.Fatalf("batch upsert failed: %v", err)
	}

	count, _ := s.Count()
	if count != 3 {
		t.Fatalf("expected 3 records, got %d", count)
	}

	got, err := s.GetByPath("c/three.jpg")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.CategoryYear != 0 {
		t.Errorf("expected unknown year to round-trip as 0, got %d", got.CategoryYear)
	}
	if got.CategoryType != "Image" {
		t.Errorf("expected Image, got %q", got.CategoryType)
	}
}

func TestGetByPathMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetByPath("nope.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing path, got %+v", got)
	}
}

func TestGetAllPathsOrdered(t *testing.T) {
	s := openTestStore(t)

	for _, p := range []string{"z/last.txt", "a/first.txt", "m/mid.txt"} {
		if err := s.Upsert(testRecord(p)); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	paths, err := s.GetAllPaths()
	if err != nil {
		t.Fatalf("GetAllPaths failed: %v", err)
	}
	want := []string{"a/first.txt", "m/mid.txt", "z/last.txt"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d", len(want), len(paths))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestDeleteBatch(t *testing.T) {
	s := openTestStore(t)

	for _, p := range []string{"one.txt", "two.txt", "three.txt"} {
		if err := s.Upsert(testRecord(p)); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	removed, err := s.DeleteBatch([]string{"one.txt", "three.txt", "ghost.txt"})
	if err != nil {
		t.Fatalf("DeleteBatch failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	count, _ := s.Count()
	if count != 1 {
		t.Errorf("expected 1 remaining, got %d", count)
	}
	if rec, _ := s.GetByPath("two.txt"); rec == nil {
		t.Error("surviving record was removed")
	}
}

func TestDistinctTypesAndYears(t *testing.T) {
	s := openTestStore(t)

	specs := []struct {
		path string
		typ  string
		year int
	}{
		{"a.pdf", "PDF Document", 2019},
		{"b.pdf", "PDF Document", 2021},
		{"c.jpg", "Image", 2021},
		{"d.bin", "Other", 0},
	}
	for _, sp := range specs {
		r := testRecord(sp.path)
		r.CategoryType = sp.typ
		r.CategoryYear = sp.year
		if err := s.Upsert(r); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	types, err := s.DistinctTypes()
	if err != nil {
		t.Fatalf("DistinctTypes failed: %v", err)
	}
	if len(types) != 3 || types[0] != "Image" || types[1] != "Other" || types[2] != "PDF Document" {
		t.Errorf("unexpected types: %v", types)
	}

	years, err := s.DistinctYears()
	if err != nil {
		t.Fatalf("DistinctYears failed: %v", err)
	}
	// Newest first; NULL (unknown) excluded.
	if len(years) != 2 || years[0] != 2021 || years[1] != 2019 {
		t.Errorf("unexpected years: %v", years)
	}
}

func TestFingerprintMap(t *testing.T) {
	s := openTestStore(t)

	r := testRecord("x.txt")
	r.Fingerprint = "abc123"
	if err := s.Upsert(r); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	fps, err := s.GetFingerprints()
	if err != nil {
		t.Fatalf("GetFingerprints failed: %v", err)
	}
	if fps["x.txt"] != "abc123" {
		t.Errorf("expected fingerprint abc123, got %q", fps["x.txt"])
	}
}
