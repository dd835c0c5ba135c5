package uploads

import "time"

// UploadedFile is the reference record pointing at externally stored
// content. Records are created only after the remote store confirms the
// upload, are never updated, and have no delete operation.
type UploadedFile struct {
	ID        string    `json:"id"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}
