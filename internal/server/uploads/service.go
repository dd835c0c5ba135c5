package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/filex"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/objectstore"
)

// spoolDirName is the working subdirectory incoming files are copied to
// before being pushed to the object store.
const spoolDirName = "uploads-tmp"

// Service runs the two-stage upload pipeline: push the bytes to the remote
// object store, then record the returned durable URL.
//
// The two stages are not transactional. If the record insert fails after a
// successful transfer, the remote object is left in place (no automatic
// cleanup); Store.Remove is the hook for a compensating sweep.
type Service struct {
	repo   Repository
	store  objectstore.Store
	logger logging.Logger
}

func NewService(repo Repository, store objectstore.Store, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger.With("module", "uploads"),
	}
}

// Upload spools src to local temporary storage, transfers it to the object
// store and persists the reference record. A transfer failure yields
// common.ErrorUploadFailed and no record is created; a record failure after
// a successful transfer is returned wrapped, with the remote object left
// behind.
func (s *Service) Upload(ctx context.Context, src io.Reader, contentType string) (*UploadedFile, error) {

	path, err := s.spool(src)
	if err != nil {
		s.logger.Warn(ctx, "upload spool failed", "error", err)
		return nil, common.ErrorUploadFailed
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, common.ErrorUploadFailed
	}
	defer f.Close()

	key := objectstore.RandomStorageKey()

	url, err := s.store.Put(ctx, key, f, contentType)
	if err != nil {
		s.logger.Warn(ctx, "object store transfer failed", "key", key, "error", err)
		return nil, common.ErrorUploadFailed
	}

	record, err := s.repo.Create(ctx, &UploadedFile{FileURL: url})
	if err != nil {
		// The remote object stays behind on purpose; see Store.Remove.
		s.logger.Error(ctx, "file record insert failed after successful transfer", "key", key, "url", url, "error", err)
		return nil, fmt.Errorf("error saving file record: %w", err)
	}

	s.logger.Info(ctx, "file uploaded", "id", record.ID, "url", record.FileURL)
	return record, nil
}

func (s *Service) spool(src io.Reader) (string, error) {
	dir, err := filex.EnsureSubdDir(spoolDirName)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return filepath.Join(dir, filepath.Base(tmp.Name())), nil
}
