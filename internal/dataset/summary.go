package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/types"
)

// ScoreCard is one summary metric for the dashboard header.
type ScoreCard struct {
	Name    string  `json:"name"`
	Mean    float64 `json:"mean"`
	Display string  `json:"display"`
	Samples int     `json:"samples"`
}

// ValueCount is one histogram bucket: a raw score value and how often it
// occurs.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TimePoint is one dated score observation for a time-series chart.
type TimePoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// Overview is the presentation-ready aggregate over one Dataset.
type Overview struct {
	TotalRecords int      `json:"total_records"`
	TotalFolders int      `json:"total_folders"`
	WarningCount int      `json:"warning_count"`
	Folders      []string `json:"folders"`

	Cards         []ScoreCard             `json:"cards"`
	Distributions map[string][]ValueCount `json:"distributions"`
	AverageShares map[string]float64      `json:"average_shares"`
	RadarMeans    map[string]float64      `json:"radar_means"`
	LeadCities    []ValueCount            `json:"lead_cities"`
	Sentiment     []TimePoint             `json:"sentiment_over_time"`
}

// FolderView is the drill-down for a single salesperson folder.
type FolderView struct {
	Name       string             `json:"name"`
	Records    []map[string]any   `json:"records"`
	ScoreMeans map[string]float64 `json:"score_means"`
	Sentiment  []TimePoint        `json:"sentiment_over_time"`
}

// Summarize derives the Overview for one Dataset. Warning entries come from
// the ingestion pass that produced the records.
func Summarize(ds *Dataset, warnings []types.Warning) Overview {
	log := logger.New().WithComponent("dataset.summary")

	ov := Overview{
		TotalRecords:  len(ds.Rows),
		TotalFolders:  len(ds.Folders()),
		WarningCount:  len(warnings),
		Folders:       ds.Folders(),
		Distributions: make(map[string][]ValueCount, len(ScoreColumns)),
		AverageShares: map[string]float64{},
		RadarMeans:    map[string]float64{},
	}

	for _, col := range ScoreColumns {
		scores := ds.Scores[col]
		mean, ok := Mean(scores)
		card := ScoreCard{Name: col, Display: "N/A"}
		if ok {
			card.Mean = mean
			card.Display = fmt.Sprintf("%.2f", mean)
			ov.RadarMeans[col] = mean
			// the pie keeps the original four-score split, Detailed excluded
			if col != "Detailed Call Score" {
				ov.AverageShares[col] = mean
			}
		}
		for _, v := range scores {
			if v.Valid {
				card.Samples++
			}
		}
		ov.Cards = append(ov.Cards, card)
		ov.Distributions[col] = distribution(scores)
	}

	ov.LeadCities = countColumn(ds, "Lead City")

	all := make([]int, len(ds.Rows))
	for i := range ds.Rows {
		all[i] = i
	}
	ov.Sentiment = sentimentSeries(ds, all)

	log.WithField("records", ov.TotalRecords).WithField("folders", ov.TotalFolders).Debug("overview built")
	return ov
}

// FolderDetail builds the per-folder drill-down; ok is false for an unknown
// folder name.
func FolderDetail(ds *Dataset, name string) (FolderView, bool) {
	idx := ds.FolderRows(name)
	if len(idx) == 0 {
		return FolderView{}, false
	}

	fv := FolderView{Name: name, ScoreMeans: map[string]float64{}}
	for _, i := range idx {
		fv.Records = append(fv.Records, ds.Rows[i])
	}
	for _, col := range ScoreColumns {
		sub := make([]NullFloat, 0, len(idx))
		for _, i := range idx {
			sub = append(sub, ds.Scores[col][i])
		}
		if mean, ok := Mean(sub); ok {
			fv.ScoreMeans[col] = mean
		}
	}
	fv.Sentiment = sentimentSeries(ds, idx)
	return fv, true
}

func sentimentSeries(ds *Dataset, idx []int) []TimePoint {
	sentiment := ds.Scores["Sentiment Analysis Score"]
	var out []TimePoint
	for _, i := range idx {
		if ds.Dates[i].Valid && sentiment[i].Valid {
			out = append(out, TimePoint{Date: ds.Dates[i].Date, Score: sentiment[i].Float64})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// distribution counts occurrences of each distinct numeric value, ordered by
// value ascending. Missing cells are left out.
func distribution(scores []NullFloat) []ValueCount {
	counts := map[float64]int{}
	for _, v := range scores {
		if v.Valid {
			counts[v.Float64]++
		}
	}
	keys := make([]float64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	out := make([]ValueCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, ValueCount{Value: strconv.FormatFloat(k, 'f', -1, 64), Count: counts[k]})
	}
	return out
}

// countColumn tallies the raw string values of one column across all rows,
// most frequent first.
func countColumn(ds *Dataset, col string) []ValueCount {
	counts := map[string]int{}
	for _, row := range ds.Rows {
		if s, ok := row[col].(string); ok && s != "" {
			counts[s]++
		}
	}
	out := make([]ValueCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, ValueCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
