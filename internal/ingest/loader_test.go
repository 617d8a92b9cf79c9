package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_OneRecordPerValidFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alice", "call1.json"), `{"BANT Score": 8, "Date": "05-03-2024"}`)
	writeFile(t, filepath.Join(root, "alice", "call2.json"), `{"BANT Score": "7.5"}`)
	writeFile(t, filepath.Join(root, "bob", "call1.json"), `{"SPIN Score": 6}`)

	records, warnings, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 3)

	byFile := map[string]string{}
	for _, r := range records {
		byFile[r.Filename+"@"+r.Folder] = r.Folder
		assert.NotEmpty(t, r.Folder)
		assert.NotEmpty(t, r.Filename)
		assert.Equal(t, r.Folder, r.Fields["Folder"])
		assert.Equal(t, r.Filename, r.Fields["Filename"])
	}
	assert.Contains(t, byFile, "call1.json@alice")
	assert.Contains(t, byFile, "call2.json@alice")
	assert.Contains(t, byFile, "call1.json@bob")
}

func TestLoad_MalformedFileSkippedWithWarning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alice", "good.json"), `{"BANT Score": 8}`)
	writeFile(t, filepath.Join(root, "bob", "broken.json"), `{"a":`)

	records, warnings, err := Load(root)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Folder)

	require.Len(t, warnings, 1)
	assert.Equal(t, filepath.Join(root, "bob", "broken.json"), warnings[0].Path)
}

func TestLoad_NonObjectJSONSkippedWithWarning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alice", "array.json"), `[1, 2, 3]`)
	writeFile(t, filepath.Join(root, "alice", "null.json"), `null`)
	writeFile(t, filepath.Join(root, "alice", "scalar.json"), `42`)

	records, warnings, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Len(t, warnings, 3)
}

func TestLoad_NonJSONAndNonDirEntriesSkippedSilently(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stray.json"), `{"ignored": true}`) // top-level file, not a folder
	writeFile(t, filepath.Join(root, "alice", "notes.txt"), "not a record")
	writeFile(t, filepath.Join(root, "alice", "call.json"), `{"BANT Score": 9}`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alice", "nested"), 0o755))

	records, warnings, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 1)
	assert.Equal(t, "call.json", records[0].Filename)
}

func TestLoad_ProvenanceOverwritesDocumentKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alice", "call.json"), `{"Folder": "mallory", "Filename": "fake.json"}`)

	records, _, err := Load(root)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Fields["Folder"])
	assert.Equal(t, "call.json", records[0].Fields["Filename"])
}

func TestLoad_MissingRootIsFatal(t *testing.T) {
	records, warnings, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Empty(t, records)
	assert.Empty(t, warnings)
}

func TestLoad_ValidMinusMalformedCount(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "1.json"), `{"x": 1}`)
	writeFile(t, filepath.Join(root, "a", "2.json"), `{"x": 2}`)
	writeFile(t, filepath.Join(root, "a", "3.json"), `{`)
	writeFile(t, filepath.Join(root, "b", "4.json"), `{"x": 4}`)
	writeFile(t, filepath.Join(root, "b", "5.json"), `not json`)

	records, warnings, err := Load(root)
	require.NoError(t, err)
	assert.Len(t, records, 3) // N=5 files, K=2 malformed
	assert.Len(t, warnings, 2)
}
