package chart

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ws is the whitespace class used by chart notation: ASCII whitespace plus
// the Unicode separators (full-width space U+3000 in particular).
const ws = `[\s\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	// 2025/04/18(金)　（入院 71 日目）
	dateRe = regexp.MustCompile(`^(\d{4}/\d{2}/\d{2}\(.?\))` + ws + `*（入院` + ws + `*(\d+)` + ws + `*日目）`)
	// 内科　　波部　孝弘　　国保　　12:41
	attributionRe = regexp.MustCompile(`^(.+?)` + ws + `+(.+?)` + ws + `+(.+?)` + ws + `+(\d{2}:\d{2})`)
	// A >
	soapRe = regexp.MustCompile(`^([SOAPF])` + ws + `*>`)

	wideGapRe = regexp.MustCompile(ws + `{2,}`)
)

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

type scanState int

const (
	awaitingDate scanState = iota
	awaitingAttribution
	awaitingSection
	sectionOpen
)

type attribution struct {
	department string
	doctor     string
	insurance  string
	time       string
}

// scanner carries the state of one pass over a chart. It is not shared
// between calls.
type scanner struct {
	state scanState

	date string
	days int
	attr attribution

	section     string
	sectionLine int
	buf         strings.Builder

	entries []Entry
}

func (s *scanner) feed(lineNum int, raw string) {
	line := trimSpace(raw)
	if line == "" {
		return
	}

	if m := dateRe.FindStringSubmatch(line); m != nil {
		s.flush()
		s.date = m[1]
		s.days = parseDays(m[2])
		s.attr = attribution{}
		s.section = ""
		s.state = awaitingAttribution
		return
	}

	if s.state != awaitingDate {
		if loc := attributionRe.FindStringSubmatchIndex(line); loc != nil {
			s.flush()
			s.attr = splitAttribution(line, loc)
			s.section = ""
			s.state = awaitingSection
			return
		}
	}

	if s.state == awaitingSection || s.state == sectionOpen {
		if m := soapRe.FindStringSubmatch(line); m != nil {
			s.flush()
			s.section = m[1]
			s.sectionLine = lineNum
			s.state = sectionOpen
			return
		}
	}

	if s.state == sectionOpen {
		s.buf.WriteString(line)
		s.buf.WriteByte('\n')
	}
}

// flush emits the open block if it has content and clears the buffer.
func (s *scanner) flush() {
	defer s.buf.Reset()
	if s.state != sectionOpen {
		return
	}
	content := trimSpace(s.buf.String())
	if content == "" {
		return
	}
	s.entries = append(s.entries, Entry{
		Date:           s.date,
		DaysInHospital: s.days,
		Department:     s.attr.department,
		Doctor:         s.attr.doctor,
		Insurance:      s.attr.insurance,
		Time:           s.attr.time,
		SOAPSection:    s.section,
		Content:        content,
		Line:           s.sectionLine,
	})
}

func (s *scanner) finish() []Entry {
	s.flush()
	return s.entries
}

// splitAttribution extracts department, doctor, insurance and time from a
// line matched by attributionRe. Columns separated by wide gaps win over the
// lazy groups so that names with a single inner space stay whole.
func splitAttribution(line string, loc []int) attribution {
	a := attribution{
		department: trimSpace(line[loc[2]:loc[3]]),
		doctor:     trimSpace(line[loc[4]:loc[5]]),
		insurance:  trimSpace(line[loc[6]:loc[7]]),
		time:       line[loc[8]:loc[9]],
	}

	cols := wideGapRe.Split(trimSpace(line[:loc[8]]), -1)
	if len(cols) == 3 && cols[0] != "" && cols[1] != "" && cols[2] != "" {
		a.department = cols[0]
		a.doctor = cols[1]
		a.insurance = cols[2]
	}
	return a
}

// parseDays converts the admission day counter. Out of range values clamp
// to the largest int.
func parseDays(s string) int {
	n, _ := strconv.ParseInt(s, 10, 0)
	return int(n)
}
