package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/karte/internal/index"
)

type Result struct {
	ChartKey    string
	EntryID     int
	Date        string
	Department  string
	Doctor      string
	SOAPSection string
	Summary     string
	Snippet     string
	Rank        float64
}

type Options struct {
	Query      string
	Section    string // "" = all, or one of S/O/A/P/F
	Department string
	Doctor     string
	Since      string // "" = no filter, e.g. "2025/04/01"
	Limit      int
}

// containsCJK returns true if the string contains any CJK ideograph or kana.
// The unicode61 tokenizer does not split Japanese, so such queries use LIKE.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	runes := []rune(text)
	if query == "" || idx < 0 || len(lower) != len(text) {
		// no match (or case folding moved byte offsets), return head
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}
	qLen := len([]rune(query))
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + qLen + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+qLen]) + "<<<" +
		string(runes[runePos+qLen:end])
	return prefix + snippet + suffix
}

func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}
	if containsCJK(opts.Query) {
		return searchLike(db, opts)
	}
	return searchFTS(db, opts)
}

// filters returns the WHERE conditions shared by every query shape.
func filters(opts Options) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.Section != "" {
		conditions = append(conditions, "e.soap_section = ?")
		args = append(args, opts.Section)
	}
	if opts.Department != "" {
		conditions = append(conditions, "e.department = ?")
		args = append(args, opts.Department)
	}
	if opts.Doctor != "" {
		conditions = append(conditions, "e.doctor LIKE ?")
		args = append(args, "%"+opts.Doctor+"%")
	}
	if opts.Since != "" {
		conditions = append(conditions, "e.date >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"entries_fts MATCH ?"}
	args := []interface{}{opts.Query}

	fc, fa := filters(opts)
	conditions = append(conditions, fc...)
	args = append(args, fa...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			e.chart_key,
			e.entry_id,
			e.date,
			e.department,
			e.doctor,
			e.soap_section,
			c.summary,
			snippet(entries_fts, 0, '>>>','<<<', '...', 40) as snip,
			bm25(entries_fts, 1.0) as rank
		FROM entries_fts
		JOIN entries e ON entries_fts.rowid = e.rowid
		JOIN charts c ON e.chart_key = c.chart_key
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"e.content LIKE ?"}
	args := []interface{}{"%" + opts.Query + "%"}

	fc, fa := filters(opts)
	conditions = append(conditions, fc...)
	args = append(args, fa...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			e.chart_key,
			e.entry_id,
			e.date,
			e.department,
			e.doctor,
			e.soap_section,
			c.summary,
			e.content
		FROM entries e
		JOIN charts c ON e.chart_key = c.chart_key
		WHERE %s
		ORDER BY e.date DESC, e.chart_key, e.entry_id
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var content string
		if err := rows.Scan(
			&r.ChartKey, &r.EntryID, &r.Date,
			&r.Department, &r.Doctor, &r.SOAPSection,
			&r.Summary, &content,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(content, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListAll lists entries newest date first. A non-empty Query filters on
// department, doctor or content by substring.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 500
	}

	conditions, args := filters(opts)
	if opts.Query != "" {
		like := "%" + opts.Query + "%"
		conditions = append(conditions, "(e.department LIKE ? OR e.doctor LIKE ? OR e.content LIKE ?)")
		args = append(args, like, like, like)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			e.chart_key,
			e.entry_id,
			e.date,
			e.department,
			e.doctor,
			e.soap_section,
			c.summary,
			e.content
		FROM entries e
		JOIN charts c ON e.chart_key = c.chart_key
		%s
		ORDER BY e.date DESC, e.chart_key, e.entry_id
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var content string
		if err := rows.Scan(
			&r.ChartKey, &r.EntryID, &r.Date,
			&r.Department, &r.Doctor, &r.SOAPSection,
			&r.Summary, &content,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(content, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.ChartKey, &r.EntryID, &r.Date,
			&r.Department, &r.Doctor, &r.SOAPSection,
			&r.Summary, &r.Snippet, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
