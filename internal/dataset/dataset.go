package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"sales-insights-go/internal/types"
)

// ScoreColumns are the designated score fields every call-analysis document
// may carry. Each gets a derived numeric column in the Dataset.
var ScoreColumns = []string{
	"BANT Score",
	"Call Intent Score",
	"SPIN Score",
	"Sentiment Analysis Score",
	"Detailed Call Score",
}

const (
	// ColumnDate is the designated date field, formatted DD-MM-YYYY.
	ColumnDate = "Date"

	dateLayout = "02-01-2006"
)

// NullFloat is a numeric cell that may be missing.
type NullFloat struct {
	Float64 float64 `json:"value"`
	Valid   bool    `json:"valid"`
}

// NullDate is a calendar-date cell that may be missing.
type NullDate struct {
	Date  time.Time `json:"date"`
	Valid bool      `json:"valid"`
}

// Dataset is the tabular view of one ingestion pass: one row per record, the
// column union of all raw fields, plus derived numeric score columns and a
// parsed date column. It is immutable once built.
type Dataset struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`

	// Scores holds a derived numeric column per entry of ScoreColumns,
	// parallel to Rows. Dates is the parsed ColumnDate column.
	Scores map[string][]NullFloat `json:"scores"`
	Dates  []NullDate             `json:"dates"`
}

// Aggregate assembles records into a Dataset in the order given. It performs
// no I/O and never fails: cells that cannot be coerced degrade to missing.
func Aggregate(records []types.Record) *Dataset {
	ds := &Dataset{
		Rows:   make([]map[string]any, 0, len(records)),
		Scores: make(map[string][]NullFloat, len(ScoreColumns)),
	}

	seen := map[string]bool{types.ColumnFolder: true, types.ColumnFilename: true}
	var rest []string
	for _, rec := range records {
		row := make(map[string]any, len(rec.Fields)+2)
		for k, v := range rec.Fields {
			row[k] = v
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
		row[types.ColumnFolder] = rec.Folder
		row[types.ColumnFilename] = rec.Filename
		ds.Rows = append(ds.Rows, row)
	}

	// provenance first, everything else alphabetical for stable display
	sort.Strings(rest)
	ds.Columns = append([]string{types.ColumnFolder, types.ColumnFilename}, rest...)

	for _, col := range ScoreColumns {
		vals := make([]NullFloat, len(ds.Rows))
		for i, row := range ds.Rows {
			vals[i] = toNumeric(row[col])
		}
		ds.Scores[col] = vals
	}

	ds.Dates = make([]NullDate, len(ds.Rows))
	for i, row := range ds.Rows {
		ds.Dates[i] = toDate(row[ColumnDate])
	}

	return ds
}

// Folders returns the distinct folder names in first-appearance order.
func (ds *Dataset) Folders() []string {
	seen := map[string]bool{}
	var out []string
	for _, row := range ds.Rows {
		name, _ := row[types.ColumnFolder].(string)
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// FolderRows returns the row indices belonging to one folder, in row order.
func (ds *Dataset) FolderRows(folder string) []int {
	var idx []int
	for i, row := range ds.Rows {
		if name, _ := row[types.ColumnFolder].(string); name == folder {
			idx = append(idx, i)
		}
	}
	return idx
}

// Mean averages the non-missing values of a numeric column. ok is false when
// the column has no usable values; callers render that as "N/A".
func Mean(col []NullFloat) (mean float64, ok bool) {
	var vals []float64
	for _, v := range col {
		if v.Valid {
			vals = append(vals, v.Float64)
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}

// StdDev is the sample standard deviation over non-missing values; ok is
// false with fewer than two usable values.
func StdDev(col []NullFloat) (sd float64, ok bool) {
	var vals []float64
	for _, v := range col {
		if v.Valid {
			vals = append(vals, v.Float64)
		}
	}
	if len(vals) < 2 {
		return 0, false
	}
	return stat.StdDev(vals, nil), true
}

func toNumeric(v any) NullFloat {
	switch t := v.(type) {
	case float64:
		return NullFloat{Float64: t, Valid: true}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return NullFloat{}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return NullFloat{}
		}
		return NullFloat{Float64: f, Valid: true}
	default:
		// booleans, nulls, nested values and absent cells are all missing
		return NullFloat{}
	}
}

func toDate(v any) NullDate {
	s, ok := v.(string)
	if !ok {
		return NullDate{}
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return NullDate{}
	}
	return NullDate{Date: d, Valid: true}
}
