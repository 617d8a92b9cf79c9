package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/types"
)

// Load walks one level of salesperson folders under root and parses every
// *.json file inside them into a Record. A file that cannot be read, is not
// valid JSON, or does not hold a JSON object contributes a Warning instead of
// a record and the pass continues; there are no retries. Only an unreadable
// root fails the whole pass.
//
// Folder and file enumeration order is whatever the filesystem returns, so
// callers must not depend on record order.
func Load(root string) ([]types.Record, []types.Warning, error) {
	log := logger.New().WithComponent("ingest").WithField("root", root)

	entries, err := os.ReadDir(root)
	if err != nil {
		log.WithError(err).Error("cannot list data root")
		return nil, nil, fmt.Errorf("list data root %s: %w", root, err)
	}

	var records []types.Record
	var warnings []types.Warning
	for _, entry := range entries {
		if !entry.IsDir() {
			// stray files at the top level are not folder entries
			continue
		}
		folder := entry.Name()
		folderPath := filepath.Join(root, folder)
		files, err := os.ReadDir(folderPath)
		if err != nil {
			log.WithError(err).WithField("folder", folder).Warn("cannot list folder")
			warnings = append(warnings, types.Warning{Path: folderPath, Reason: fmt.Sprintf("list folder: %v", err)})
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
				continue
			}
			path := filepath.Join(folderPath, f.Name())
			rec, warn := loadFile(path, folder, f.Name())
			if warn != nil {
				log.WithField("path", warn.Path).Warn(warn.Reason)
				warnings = append(warnings, *warn)
				continue
			}
			records = append(records, rec)
		}
	}

	log.WithField("records", len(records)).WithField("warnings", len(warnings)).Info("ingestion pass complete")
	return records, warnings, nil
}

func loadFile(path, folder, filename string) (types.Record, *types.Warning) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.Record{}, &types.Warning{Path: path, Reason: fmt.Sprintf("read file: %v", err)}
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return types.Record{}, &types.Warning{Path: path, Reason: fmt.Sprintf("decode json: %v", err)}
	}
	if fields == nil {
		// "null" decodes into a nil map without error
		return types.Record{}, &types.Warning{Path: path, Reason: "decode json: document is not an object"}
	}

	// injected provenance wins over document keys of the same name
	fields[types.ColumnFolder] = folder
	fields[types.ColumnFilename] = filename

	return types.Record{Folder: folder, Filename: filename, Fields: fields}, nil
}
