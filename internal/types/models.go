package types

// Column names injected by the loader for record provenance.
const (
	ColumnFolder   = "Folder"
	ColumnFilename = "Filename"
)

// Record is one ingested call-analysis JSON document, tagged with the
// salesperson folder and file it came from. Fields holds the raw parsed
// key/value pairs; the injected Folder/Filename keys always win over
// same-named keys in the source document.
type Record struct {
	Folder   string         `json:"folder"`
	Filename string         `json:"filename"`
	Fields   map[string]any `json:"fields"`
}

// Warning records a file that was skipped during an ingestion pass.
type Warning struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}
