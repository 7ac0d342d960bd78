package dto

// --- Corpus Ingestion DTOs ---

type IngestDocumentRequest struct {
	DocumentId string `json:"document_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type IngestDocumentResponse struct {
	DocumentId string `json:"document_id"`
	Queued     bool   `json:"queued"`
}

type IngestCorpusDirResponse struct {
	Queued    []string `json:"queued"`
	Documents int      `json:"documents"`
}

type CorpusStatusResponse struct {
	Documents []string `json:"documents"`
	Chunks    int64    `json:"chunks"`
}

// --- System Log DTOs ---

// LogListResponse uses string for Id because log IDs are MD5 hashes, not UUIDs
type LogListResponse struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Component string                 `json:"component,omitempty"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
