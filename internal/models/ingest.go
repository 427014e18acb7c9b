package models

// IngestJob is one source file queued for ingestion.
type IngestJob struct {
	Path string `json:"path"`
	Hash string `json:"hash"` // hex sha256 of the file contents
}

// IngestResult reports the outcome of a single IngestJob.
type IngestResult struct {
	Path    string `json:"path"`
	Chunks  int    `json:"chunks"`
	Skipped bool   `json:"skipped"`
	Err     error  `json:"-"`
}

// IngestSummary aggregates a full ingestion run.
type IngestSummary struct {
	Files   int `json:"files"`
	Chunks  int `json:"chunks"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
