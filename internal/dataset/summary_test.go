package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-insights-go/internal/types"
)

func TestSummarize_CardsAndSentinel(t *testing.T) {
	ds := Aggregate([]types.Record{
		rec("alice", "1.json", map[string]any{"BANT Score": 8.0, "SPIN Score": "oops"}),
		rec("alice", "2.json", map[string]any{"BANT Score": "6"}),
	})
	ov := Summarize(ds, []types.Warning{{Path: "x", Reason: "y"}})

	assert.Equal(t, 2, ov.TotalRecords)
	assert.Equal(t, 1, ov.TotalFolders)
	assert.Equal(t, 1, ov.WarningCount)
	assert.Equal(t, []string{"alice"}, ov.Folders)

	cards := map[string]ScoreCard{}
	for _, c := range ov.Cards {
		cards[c.Name] = c
	}
	require.Len(t, cards, len(ScoreColumns))
	assert.Equal(t, "7.00", cards["BANT Score"].Display)
	assert.Equal(t, 2, cards["BANT Score"].Samples)
	assert.Equal(t, "N/A", cards["SPIN Score"].Display, "no parseable values")
	assert.Equal(t, "N/A", cards["Detailed Call Score"].Display)
}

func TestSummarize_PieExcludesDetailedScore(t *testing.T) {
	ds := Aggregate([]types.Record{
		rec("a", "1.json", map[string]any{
			"BANT Score":               8.0,
			"Call Intent Score":        7.0,
			"SPIN Score":               6.0,
			"Sentiment Analysis Score": 5.0,
			"Detailed Call Score":      9.0,
		}),
	})
	ov := Summarize(ds, nil)

	assert.Len(t, ov.AverageShares, 4)
	assert.NotContains(t, ov.AverageShares, "Detailed Call Score")
	assert.Contains(t, ov.RadarMeans, "Detailed Call Score")
	assert.Len(t, ov.RadarMeans, 5)
}

func TestSummarize_DistributionsAndCities(t *testing.T) {
	ds := Aggregate([]types.Record{
		rec("a", "1.json", map[string]any{"BANT Score": 8.0, "Lead City": "Pune"}),
		rec("a", "2.json", map[string]any{"BANT Score": 8.0, "Lead City": "Pune"}),
		rec("b", "3.json", map[string]any{"BANT Score": "7.5", "Lead City": "Delhi"}),
		rec("b", "4.json", map[string]any{"BANT Score": "n/a"}),
	})
	ov := Summarize(ds, nil)

	assert.Equal(t, []ValueCount{{Value: "7.5", Count: 1}, {Value: "8", Count: 2}}, ov.Distributions["BANT Score"])
	assert.Equal(t, []ValueCount{{Value: "Pune", Count: 2}, {Value: "Delhi", Count: 1}}, ov.LeadCities)
}

func TestSummarize_SentimentTimelineSortedByDate(t *testing.T) {
	ds := Aggregate([]types.Record{
		rec("a", "1.json", map[string]any{"Date": "10-03-2024", "Sentiment Analysis Score": 7.0}),
		rec("a", "2.json", map[string]any{"Date": "05-03-2024", "Sentiment Analysis Score": 4.0}),
		rec("a", "3.json", map[string]any{"Date": "bad", "Sentiment Analysis Score": 9.0}),
		rec("a", "4.json", map[string]any{"Date": "06-03-2024"}),
	})
	ov := Summarize(ds, nil)

	require.Len(t, ov.Sentiment, 2, "points need both a date and a score")
	assert.Equal(t, 4.0, ov.Sentiment[0].Score)
	assert.Equal(t, 7.0, ov.Sentiment[1].Score)
	assert.True(t, ov.Sentiment[0].Date.Before(ov.Sentiment[1].Date))
}

func TestFolderDetail(t *testing.T) {
	ds := Aggregate([]types.Record{
		rec("alice", "1.json", map[string]any{"BANT Score": 8.0, "Date": "05-03-2024", "Sentiment Analysis Score": 6.0}),
		rec("bob", "2.json", map[string]any{"BANT Score": 2.0}),
		rec("alice", "3.json", map[string]any{"BANT Score": "6"}),
	})

	fv, ok := FolderDetail(ds, "alice")
	require.True(t, ok)
	assert.Equal(t, "alice", fv.Name)
	require.Len(t, fv.Records, 2)
	assert.Equal(t, "1.json", fv.Records[0][types.ColumnFilename])
	assert.InDelta(t, 7.0, fv.ScoreMeans["BANT Score"], 1e-9)
	_, hasSpin := fv.ScoreMeans["SPIN Score"]
	assert.False(t, hasSpin, "all-missing score has no mean")
	require.Len(t, fv.Sentiment, 1)

	_, ok = FolderDetail(ds, "mallory")
	assert.False(t, ok)
}
