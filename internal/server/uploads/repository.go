package uploads

import "context"

// Repository persists UploadedFile records.
type Repository interface {
	Create(ctx context.Context, file *UploadedFile) (*UploadedFile, error)
}
