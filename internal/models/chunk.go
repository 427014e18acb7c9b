package models

// Chunk is a passage of source document text stored with a vector embedding.
// Chunks returned by retrieval are scoped to a single request.
type Chunk struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Source   string            `json:"source"`
	Index    int               `json:"chunk_index"`
	Score    float32           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
