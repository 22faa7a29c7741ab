package entity

import "time"

// Attachment represents a document submitted in support of a claim.
// Category is assigned by the classifier at submission time.
type Attachment struct {
	ID          int64     `json:"id"`
	ClaimID     int64     `json:"claim_id"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	FileSize    int64     `json:"file_size"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
