package chart

import "time"

// SOAP tags recognised after an attribution line.
const (
	SectionSubjective = "S"
	SectionObjective  = "O"
	SectionAssessment = "A"
	SectionPlan       = "P"
	SectionFree       = "F"
)

// Entry is one SOAP-tagged block of narrative text. Attribution fields are
// copied verbatim from the most recent date and attribution lines.
type Entry struct {
	Date           string `json:"date"`
	DaysInHospital int    `json:"days_in_hospital"`
	Department     string `json:"department"`
	Doctor         string `json:"doctor"`
	Insurance      string `json:"insurance"`
	Time           string `json:"time"`
	SOAPSection    string `json:"soap_section"`
	Content        string `json:"content"`
	Line           int    `json:"-"` // line of the SOAP marker in the source text
}

type ChartMeta struct {
	ChartKey  string
	FilePath  string
	FirstDate string
	LastDate  string
	Summary   string
	Mtime     time.Time
	Size      int64
}

type ParseResult struct {
	Meta    ChartMeta
	Entries []Entry
}
