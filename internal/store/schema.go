package store

// Schema v1 - one row per indexed file, keyed by its path relative to
// the archive root.
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexed files
CREATE TABLE IF NOT EXISTS files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  path TEXT UNIQUE NOT NULL,
  filename TEXT NOT NULL,
  extension TEXT,
  size_bytes INTEGER,
  modified_unix INTEGER,
  fingerprint TEXT,
  category_type TEXT,
  category_year INTEGER,
  summary TEXT,
  keywords TEXT,
  status TEXT NOT NULL DEFAULT 'indexed',
  error TEXT,
  first_seen_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_files_filename ON files(filename);
CREATE INDEX IF NOT EXISTS idx_files_type ON files(category_type);
CREATE INDEX IF NOT EXISTS idx_files_year ON files(category_year);
CREATE INDEX IF NOT EXISTS idx_files_status ON files(status);
`
