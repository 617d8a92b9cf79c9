package insights

import (
	"fmt"

	"sales-insights-go/internal/dataset"
)

// Highlight is one attention item surfaced on the dashboard.
type Highlight struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

const lowSentimentBar = 5.0

// Generate inspects per-folder sentiment means and score spreads and turns
// them into attention items for the overview page.
func Generate(ds *dataset.Dataset) []Highlight {
	var out []Highlight

	if name, mean, ok := weakestSentimentFolder(ds); ok && mean < lowSentimentBar {
		out = append(out, Highlight{
			Insight: fmt.Sprintf("Lowest average sentiment: %s (%.1f)", name, mean),
			Action:  "Review their recent calls and schedule a coaching session",
			Impact:  "Lift conversion on follow-up calls",
		})
	}

	if col, sd, ok := widestSpreadScore(ds); ok {
		out = append(out, Highlight{
			Insight: fmt.Sprintf("%s varies most across calls (stddev %.1f)", col, sd),
			Action:  "Standardize the discovery checklist for this metric",
			Impact:  "More consistent call quality",
		})
	}

	if len(out) == 0 {
		out = append(out, Highlight{
			Insight: "No strong pattern in the current data",
			Action:  "Keep collecting call records",
			Impact:  "Low immediate intervention",
		})
	}
	return out
}

func weakestSentimentFolder(ds *dataset.Dataset) (string, float64, bool) {
	sentiment := ds.Scores["Sentiment Analysis Score"]
	worst := ""
	worstMean := 0.0
	found := false
	for _, folder := range ds.Folders() {
		idx := ds.FolderRows(folder)
		sub := make([]dataset.NullFloat, 0, len(idx))
		for _, i := range idx {
			sub = append(sub, sentiment[i])
		}
		mean, ok := dataset.Mean(sub)
		if !ok {
			continue
		}
		if !found || mean < worstMean {
			found = true
			worst = folder
			worstMean = mean
		}
	}
	return worst, worstMean, found
}

func widestSpreadScore(ds *dataset.Dataset) (string, float64, bool) {
	best := ""
	bestSD := 0.0
	found := false
	for _, col := range dataset.ScoreColumns {
		sd, ok := dataset.StdDev(ds.Scores[col])
		if !ok {
			continue
		}
		if !found || sd > bestSD {
			found = true
			best = col
			bestSD = sd
		}
	}
	return best, bestSD, found
}
