package store

import (
	"fmt"
	"strings"
)

// Filters describes a multi-field search. Empty fields are wildcards;
// supplied fields combine with AND across categories. Keywords use OR
// semantics within the field: a record matches if any supplied keyword
// appears in its keyword list or summary.
type Filters struct {
	FilenameSubstring string
	Years             []int
	Types             []string
	Keywords          []string
}

// IsEmpty reports whether no filter field is set.
func (f Filters) IsEmpty() bool {
	return f.FilenameSubstring == "" && len(f.Years) == 0 &&
		len(f.Types) == 0 && len(f.Keywords) == 0
}

// Query runs a filtered search and returns matching records ordered
// by path ascending, so repeated identical queries are deterministic.
func (s *Store) Query(f Filters) ([]*FileRecord, error) {
	var conditions []string
	var params []any

	if f.FilenameSubstring != "" {
		conditions = append(conditions, "LOWER(filename) LIKE ?")
		params = append(params, "%"+strings.ToLower(f.FilenameSubstring)+"%")
	}

	if len(f.Years) > 0 {
		conditions = append(conditions, "category_year IN ("+placeholders(len(f.Years))+")")
		for _, y := range f.Years {
			params = append(params, y)
		}
	}

	if len(f.Types) > 0 {
		conditions = append(conditions, "LOWER(category_type) IN ("+placeholders(len(f.Types))+")")
		for _, t := range f.Types {
			params = append(params, strings.ToLower(t))
		}
	}

	if len(f.Keywords) > 0 {
		// OR within the keyword filter: match keyword list or summary.
		var kwConds []string
		for _, kw := range f.Keywords {
			kwConds = append(kwConds, "(LOWER(keywords) LIKE ? OR LOWER(summary) LIKE ?)")
			pattern := "%" + strings.ToLower(kw) + "%"
			params = append(params, pattern, pattern)
		}
		conditions = append(conditions, "("+strings.Join(kwConds, " OR ")+")")
	}

	query := "SELECT" + selectColumns + " FROM files"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY path ASC"

	rows, err := s.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	var records []*FileRecord
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
