package insights

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-insights-go/internal/dataset"
	"sales-insights-go/internal/types"
)

func rec(folder, filename string, fields map[string]any) types.Record {
	if fields == nil {
		fields = map[string]any{}
	}
	fields[types.ColumnFolder] = folder
	fields[types.ColumnFilename] = filename
	return types.Record{Folder: folder, Filename: filename, Fields: fields}
}

func TestGenerate_FlagsWeakSentimentFolder(t *testing.T) {
	ds := dataset.Aggregate([]types.Record{
		rec("alice", "1.json", map[string]any{"Sentiment Analysis Score": 8.0}),
		rec("bob", "2.json", map[string]any{"Sentiment Analysis Score": 2.0}),
		rec("bob", "3.json", map[string]any{"Sentiment Analysis Score": 3.0}),
	})

	hs := Generate(ds)
	require.NotEmpty(t, hs)
	assert.Contains(t, hs[0].Insight, "bob")
	assert.Contains(t, hs[0].Insight, "2.5")
}

func TestGenerate_FlagsWidestSpreadScore(t *testing.T) {
	ds := dataset.Aggregate([]types.Record{
		rec("a", "1.json", map[string]any{"BANT Score": 1.0, "SPIN Score": 5.0}),
		rec("a", "2.json", map[string]any{"BANT Score": 9.0, "SPIN Score": 5.0}),
	})

	hs := Generate(ds)
	found := false
	for _, h := range hs {
		if strings.Contains(h.Insight, "varies most") {
			found = true
			assert.Contains(t, h.Insight, "BANT Score")
		}
	}
	assert.True(t, found, "expected a spread highlight for BANT Score")
}

func TestGenerate_EmptyDatasetFallsBack(t *testing.T) {
	hs := Generate(dataset.Aggregate(nil))
	require.Len(t, hs, 1)
	assert.Contains(t, hs[0].Insight, "No strong pattern")
}
