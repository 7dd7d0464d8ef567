package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestPruneRemovesStaleRows(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"keep/a.txt":   "still here",
		"keep/b.txt":   "still here too",
		"remove/c.txt": "doomed",
	})
	st := openTestStore(t)

	if _, err := newTestIndexer(st, root, false).Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(root, "remove", "c.txt")); err != nil {
		t.Fatal(err)
	}

	removed, err := Prune(context.Background(), st, root, false, nil)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 pruned row, got %d", removed)
	}

	if rec, _ := st.GetByPath("remove/c.txt"); rec != nil {
		t.Error("stale row survived prune")
	}
	for _, p := range []string{"keep/a.txt", "keep/b.txt"} {
		if rec, _ := st.GetByPath(p); rec == nil {
			t.Errorf("live row %s was pruned", p)
		}
	}
}

func TestPruneDryRunKeepsRows(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"doomed.txt": "x"})
	st := openTestStore(t)

	if _, err := newTestIndexer(st, root, false).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, "doomed.txt")); err != nil {
		t.Fatal(err)
	}

	found, err := Prune(context.Background(), st, root, true, nil)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if found != 1 {
		t.Errorf("expected 1 stale row reported, got %d", found)
	}
	if rec, _ := st.GetByPath("doomed.txt"); rec == nil {
		t.Error("dry run deleted a row")
	}
}

func TestPruneCleanIndexIsNoop(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.txt": "x"})
	st := openTestStore(t)

	if _, err := newTestIndexer(st, root, false).Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	removed, err := Prune(context.Background(), st, root, false, nil)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected nothing pruned, got %d", removed)
	}
}

func TestPruneMissingRoot(t *testing.T) {
	st := openTestStore(t)
	if _, err := Prune(context.Background(), st, filepath.Join(t.TempDir(), "gone"), false, nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}
