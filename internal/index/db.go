package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var ErrChartNotFound = errors.New("chart not found")

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS charts (
    chart_key   TEXT PRIMARY KEY,
    file_path   TEXT NOT NULL,
    first_date  TEXT NOT NULL DEFAULT '',
    last_date   TEXT NOT NULL DEFAULT '',
    summary     TEXT NOT NULL DEFAULT '',
    mtime       INTEGER NOT NULL DEFAULT 0,
    size        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS entries (
    chart_key        TEXT NOT NULL,
    entry_id         INTEGER NOT NULL,
    date             TEXT NOT NULL,
    days_in_hospital INTEGER NOT NULL DEFAULT 0,
    department       TEXT NOT NULL DEFAULT '',
    doctor           TEXT NOT NULL DEFAULT '',
    insurance        TEXT NOT NULL DEFAULT '',
    time             TEXT NOT NULL DEFAULT '',
    soap_section     TEXT NOT NULL,
    content          TEXT NOT NULL,
    line_number      INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (chart_key, entry_id)
);

CREATE INDEX IF NOT EXISTS entries_date ON entries(date);

CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
    content,
    content=entries,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS entries_ai AFTER INSERT ON entries BEGIN
    INSERT INTO entries_fts(rowid, content) VALUES (new.rowid, new.content);
END;

CREATE TRIGGER IF NOT EXISTS entries_ad AFTER DELETE ON entries BEGIN
    INSERT INTO entries_fts(entries_fts, rowid, content) VALUES('delete', old.rowid, old.content);
END;

CREATE TRIGGER IF NOT EXISTS entries_au AFTER UPDATE ON entries BEGIN
    INSERT INTO entries_fts(entries_fts, rowid, content) VALUES('delete', old.rowid, old.content);
    INSERT INTO entries_fts(rowid, content) VALUES (new.rowid, new.content);
END;

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	if err := d.migrateSchemaVersion(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// schemaVersion should be bumped whenever chart parsing logic changes
// to force a full re-index.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() error {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err == nil && ver == schemaVersion {
		return nil
	}
	// force re-index by resetting all chart mtime/size to 0
	if _, err := d.db.Exec("UPDATE charts SET mtime = 0, size = 0"); err != nil {
		return err
	}
	_, err = d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type ChartInfo struct {
	Mtime int64
	Size  int64
}

// GetChartInfo returns nil without error when the chart is not indexed.
func (d *DB) GetChartInfo(chartKey string) (*ChartInfo, error) {
	var info ChartInfo
	err := d.db.QueryRow(
		"SELECT mtime, size FROM charts WHERE chart_key = ?",
		chartKey,
	).Scan(&info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) AllChartKeys() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT chart_key FROM charts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

func (d *DB) DeleteChart(chartKey string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries WHERE chart_key = ?", chartKey); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM charts WHERE chart_key = ?", chartKey); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) ChartCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM charts").Scan(&n)
	return n, err
}

func (d *DB) EntryCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}

// FTSCount returns the number of rows in the full-text index.
func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM entries_fts").Scan(&n)
	return n, err
}

type ChartRow struct {
	ChartKey  string
	FilePath  string
	FirstDate string
	LastDate  string
	Summary   string
}

// GetChartByKey returns ErrChartNotFound for unknown keys.
func (d *DB) GetChartByKey(chartKey string) (*ChartRow, error) {
	var c ChartRow
	err := d.db.QueryRow(
		"SELECT chart_key, file_path, first_date, last_date, summary FROM charts WHERE chart_key = ?",
		chartKey,
	).Scan(&c.ChartKey, &c.FilePath, &c.FirstDate, &c.LastDate, &c.Summary)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrChartNotFound, chartKey)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type EntryRow struct {
	ChartKey       string
	EntryID        int
	Date           string
	DaysInHospital int
	Department     string
	Doctor         string
	Insurance      string
	Time           string
	SOAPSection    string
	Content        string
	LineNumber     int
}

const entryColumns = "chart_key, entry_id, date, days_in_hospital, department, doctor, insurance, time, soap_section, content, line_number"

func scanEntry(rows *sql.Rows) (EntryRow, error) {
	var e EntryRow
	err := rows.Scan(&e.ChartKey, &e.EntryID, &e.Date, &e.DaysInHospital,
		&e.Department, &e.Doctor, &e.Insurance, &e.Time,
		&e.SOAPSection, &e.Content, &e.LineNumber)
	return e, err
}

func (d *DB) GetEntries(chartKey string) ([]EntryRow, error) {
	rows, err := d.db.Query(
		"SELECT "+entryColumns+" FROM entries WHERE chart_key = ? ORDER BY entry_id",
		chartKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []EntryRow
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetEntriesWindow returns a window of entries around a hit entry.
// It only loads the necessary rows from the database instead of all entries.
// startPos is the number of entries before the returned window.
// totalCount is the total number of entries in the chart.
func (d *DB) GetEntriesWindow(chartKey string, hitEntryID, context int) (entries []EntryRow, hitIdx int, startPos int, totalCount int, err error) {
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM entries WHERE chart_key = ?", chartKey,
	).Scan(&totalCount)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// entry ids are dense and 0-based, so the id is the position
	hitPos := -1
	if hitEntryID >= 0 && hitEntryID < totalCount {
		hitPos = hitEntryID
	}

	startPos = 0
	limit := totalCount
	if hitPos >= 0 {
		startPos = hitPos - context
		if startPos < 0 {
			startPos = 0
		}
		endPos := hitPos + context + 1
		if endPos > totalCount {
			endPos = totalCount
		}
		limit = endPos - startPos
	}

	rows, err := d.db.Query(
		"SELECT "+entryColumns+" FROM entries WHERE chart_key = ? ORDER BY entry_id LIMIT ? OFFSET ?",
		chartKey, limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer rows.Close()

	var result []EntryRow
	localHitIdx := -1
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, -1, 0, 0, err
		}
		if e.EntryID == hitEntryID {
			localHitIdx = len(result)
		}
		result = append(result, e)
	}
	return result, localHitIdx, startPos, totalCount, rows.Err()
}
