package dto

import "time"

type IndexDocumentsRequest struct {
	Reindex bool `json:"reindex"`
}

type IndexDocumentsResponse struct {
	Indexed int               `json:"indexed"`
	Skipped int               `json:"skipped"`
	Failed  int               `json:"failed"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type IndexDocumentResponse struct {
	SourceKey string `json:"source_key"`
	Status    string `json:"status"`
	Chunks    int    `json:"chunks"`
}

type RagStatsResponse struct {
	Documents   int        `json:"documents"`
	Chunks      int        `json:"chunks"`
	LastIndexed *time.Time `json:"last_indexed,omitempty"`
}
