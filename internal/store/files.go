package store

import (
	"database/sql"
	"fmt"
	"sort"
)

const selectColumns = `
	id, path, filename, COALESCE(extension, ''), size_bytes, modified_unix,
	COALESCE(fingerprint, ''), COALESCE(category_type, ''), category_year,
	COALESCE(summary, ''), COALESCE(keywords, ''), status, COALESCE(error, ''),
	first_seen_at, indexed_at`

// Upsert inserts or replaces a file record keyed by path. A second
// encounter of the same path overwrites every derived column; it never
// creates a duplicate row. The single statement keeps the write atomic.
func (s *Store) Upsert(r *FileRecord) error {
	result, err := s.db.Exec(upsertSQL, upsertArgs(r)...)
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", r.Path, err)
	}

	if r.ID == 0 {
		if id, err := result.LastInsertId(); err == nil && id != 0 {
			r.ID = id
		} else if err := s.db.QueryRow("SELECT id FROM files WHERE path = ?", r.Path).Scan(&r.ID); err != nil {
			return fmt.Errorf("failed to get record ID: %w", err)
		}
	}
	return nil
}

// UpsertBatch writes a batch of records in one transaction.
func (s *Store) UpsertBatch(records []*FileRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(upsertSQL)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			if _, err := stmt.Exec(upsertArgs(r)...); err != nil {
				return fmt.Errorf("failed to upsert %s: %w", r.Path, err)
			}
		}
		return nil
	})
}

const upsertSQL = `
	INSERT INTO files (
		path, filename, extension, size_bytes, modified_unix, fingerprint,
		category_type, category_year, summary, keywords, status, error
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		filename = excluded.filename,
		extension = excluded.extension,
		size_bytes = excluded.size_bytes,
		modified_unix = excluded.modified_unix,
		fingerprint = excluded.fingerprint,
		category_type = excluded.category_type,
		category_year = excluded.category_year,
		summary = excluded.summary,
		keywords = excluded.keywords,
		status = excluded.status,
		error = excluded.error,
		indexed_at = CURRENT_TIMESTAMP
`

func upsertArgs(r *FileRecord) []any {
	var year any
	if r.CategoryYear > 0 {
		year = r.CategoryYear
	}
	return []any{
		r.Path, r.Filename, r.Extension, r.SizeBytes, r.ModifiedUnix,
		r.Fingerprint, r.CategoryType, year, r.Summary,
		r.KeywordsString(), r.Status, r.Error,
	}
}

func scanRecord(scan func(...any) error) (*FileRecord, error) {
	r := &FileRecord{}
	var year sql.NullInt64
	var keywords string
	err := scan(
		&r.ID, &r.Path, &r.Filename, &r.Extension, &r.SizeBytes, &r.ModifiedUnix,
		&r.Fingerprint, &r.CategoryType, &year,
		&r.Summary, &keywords, &r.Status, &r.Error,
		&r.FirstSeenAt, &r.IndexedAt,
	)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		r.CategoryYear = int(year.Int64)
	}
	r.Keywords = splitKeywords(keywords)
	return r, nil
}

// GetByPath retrieves a record by its path, or nil if absent.
func (s *Store) GetByPath(path string) (*FileRecord, error) {
	row := s.db.QueryRow("SELECT"+selectColumns+" FROM files WHERE path = ?", path)
	r, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return r, nil
}

// GetAllPaths returns every stored path in ascending order.
func (s *Store) GetAllPaths() ([]string, error) {
	rows, err := s.db.Query("SELECT path FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to query paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// GetFingerprints returns the stored path -> fingerprint map. The
// indexer preloads it so unchanged files can skip re-extraction
// without a per-file query.
func (s *Store) GetFingerprints() (map[string]string, error) {
	rows, err := s.db.Query("SELECT path, COALESCE(fingerprint, '') FROM files")
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprints: %w", err)
	}
	defer rows.Close()

	fps := make(map[string]string)
	for rows.Next() {
		var path, fp string
		if err := rows.Scan(&path, &fp); err != nil {
			return nil, fmt.Errorf("failed to scan fingerprint: %w", err)
		}
		fps[path] = fp
	}
	return fps, rows.Err()
}

// Delete removes the record for path. Missing paths are not an error.
func (s *Store) Delete(path string) error {
	if _, err := s.db.Exec("DELETE FROM files WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// DeleteBatch removes a batch of paths in one transaction and returns
// the number of rows actually removed.
func (s *Store) DeleteBatch(paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	removed := 0
	err := s.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("DELETE FROM files WHERE path = ?")
		if err != nil {
			return fmt.Errorf("failed to prepare delete: %w", err)
		}
		defer stmt.Close()

		for _, p := range paths {
			res, err := stmt.Exec(p)
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", p, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				removed += int(n)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Count returns the total number of records.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of records with a given status.
func (s *Store) CountByStatus(status string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM files WHERE status = ?", status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// DistinctTypes returns the distinct non-empty category types, sorted.
// The search surface uses it to populate its type filter options.
func (s *Store) DistinctTypes() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT category_type FROM files
		WHERE category_type IS NOT NULL AND category_type != ''
		ORDER BY category_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// DistinctYears returns the distinct known years, newest first.
func (s *Store) DistinctYears() ([]int, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT category_year FROM files
		WHERE category_year IS NOT NULL
		ORDER BY category_year DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// TypeCounts returns record counts per category type, sorted by type.
func (s *Store) TypeCounts() (map[string]int, []string, error) {
	rows, err := s.db.Query(`
		SELECT COALESCE(category_type, ''), COUNT(*) FROM files
		GROUP BY category_type
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query type counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		counts[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	return counts, types, nil
}

// TotalSizeBytes returns the summed size of all indexed files.
func (s *Store) TotalSizeBytes() (int64, error) {
	var total sql.NullInt64
	if err := s.db.QueryRow("SELECT SUM(size_bytes) FROM files").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sizes: %w", err)
	}
	return total.Int64, nil
}
