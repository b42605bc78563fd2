package index

import (
	"fmt"

	"github.com/Zuo-Peng/karte/internal/chart"
	"github.com/Zuo-Peng/karte/internal/scan"
	"github.com/rs/zerolog"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Empty   int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d empty=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Empty, s.Pruned, s.Errors)
}

// IndexAll brings the index in line with the chart files under root:
// new and changed files are parsed and stored, unchanged ones skipped,
// vanished ones pruned.
func IndexAll(db *DB, root string, exts []string, log zerolog.Logger) (Stats, error) {
	var stats Stats

	files, err := scan.ScanRoot(root, exts)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	// track which files we see, for pruning
	seenKeys := make(map[string]struct{})

	for _, fi := range files {
		key := chart.ChartKey(fi.Path, root)
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, fi.Mtime, fi.Size)
		if err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("path", fi.Path).Msg("read index state")
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		result, err := chart.ParseFile(fi.Path, root)
		if err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("path", fi.Path).Msg("parse chart")
			continue
		}
		if len(result.Entries) == 0 {
			stats.Empty++
			log.Debug().Str("path", fi.Path).Msg("no entries")
		}

		if err := indexChart(db, result); err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("path", fi.Path).Msg("index chart")
			continue
		}
		stats.Updated++
		log.Debug().Str("chart", key).Int("entries", len(result.Entries)).Msg("indexed")
	}

	pruned, err := pruneCharts(db, seenKeys)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func needsUpdate(db *DB, chartKey string, mtime, size int64) (bool, error) {
	info, err := db.GetChartInfo(chartKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new chart
	}
	return info.Mtime != mtime || info.Size != size, nil
}

func indexChart(db *DB, result *chart.ParseResult) error {
	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// delete old data first
	if _, err := tx.Exec("DELETE FROM entries WHERE chart_key = ?", result.Meta.ChartKey); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM charts WHERE chart_key = ?", result.Meta.ChartKey); err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO charts (chart_key, file_path, first_date, last_date, summary, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Meta.ChartKey,
		result.Meta.FilePath,
		result.Meta.FirstDate,
		result.Meta.LastDate,
		result.Meta.Summary,
		result.Meta.Mtime.Unix(),
		result.Meta.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO entries (` + entryColumns + `)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range result.Entries {
		_, err := stmt.Exec(
			result.Meta.ChartKey,
			i,
			e.Date,
			e.DaysInHospital,
			e.Department,
			e.Doctor,
			e.Insurance,
			e.Time,
			e.SOAPSection,
			e.Content,
			e.Line,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pruneCharts(db *DB, seenKeys map[string]struct{}) (int, error) {
	allKeys, err := db.AllChartKeys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key := range allKeys {
		if _, ok := seenKeys[key]; !ok {
			if err := db.DeleteChart(key); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}

// ToEntry converts a stored row back to a chart entry.
func (e EntryRow) ToEntry() chart.Entry {
	return chart.Entry{
		Date:           e.Date,
		DaysInHospital: e.DaysInHospital,
		Department:     e.Department,
		Doctor:         e.Doctor,
		Insurance:      e.Insurance,
		Time:           e.Time,
		SOAPSection:    e.SOAPSection,
		Content:        e.Content,
		Line:           e.LineNumber,
	}
}
