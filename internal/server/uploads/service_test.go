package uploads

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
)

// --- fakes ---

type fakeStore struct {
	putErr  error
	gotKey  string
	gotBody string
	url     string

	removed []string
}

func (f *fakeStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.gotKey = key
	f.gotBody = string(b)
	if f.url != "" {
		return f.url, nil
	}
	return "http://store.local/files/" + key, nil
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

type fakeUploadsRepo struct {
	createErr error
	created   *UploadedFile
}

func (f *fakeUploadsRepo) Create(ctx context.Context, file *UploadedFile) (*UploadedFile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	file.ID = "f-1"
	file.CreatedAt = time.Now()
	f.created = file
	return file, nil
}

func newTestService(repo Repository, store *fakeStore) *Service {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(repo, store, logger)
}

func chtmp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// --- tests ---

func TestUpload_Success(t *testing.T) {
	chtmp(t)

	store := &fakeStore{}
	repo := &fakeUploadsRepo{}
	svc := newTestService(repo, store)

	record, err := svc.Upload(context.Background(), strings.NewReader("file-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if store.gotBody != "file-bytes" {
		t.Fatalf("store received %q", store.gotBody)
	}
	if record.FileURL != "http://store.local/files/"+store.gotKey {
		t.Fatalf("record url %q does not match store url", record.FileURL)
	}
	if record.ID != "f-1" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestUpload_TransferFailure_NoRecord(t *testing.T) {
	chtmp(t)

	store := &fakeStore{putErr: errors.New("store down")}
	repo := &fakeUploadsRepo{}
	svc := newTestService(repo, store)

	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "")
	if !errors.Is(err, common.ErrorUploadFailed) {
		t.Fatalf("want common.ErrorUploadFailed, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("no record may be created when the transfer fails")
	}
}

func TestUpload_RecordFailure_NoCleanup(t *testing.T) {
	chtmp(t)

	store := &fakeStore{}
	repo := &fakeUploadsRepo{createErr: errors.New("insert failed")}
	svc := newTestService(repo, store)

	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "")
	if err == nil || errors.Is(err, common.ErrorUploadFailed) {
		t.Fatalf("record failure must be distinct from transfer failure, got %v", err)
	}
	if len(store.removed) != 0 {
		t.Fatal("the remote object must not be cleaned up automatically")
	}
}

func TestUpload_RemovesSpoolFile(t *testing.T) {
	chtmp(t)

	store := &fakeStore{}
	svc := newTestService(&fakeUploadsRepo{}, store)

	if _, err := svc.Upload(context.Background(), strings.NewReader("x"), ""); err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	entries, err := os.ReadDir(spoolDirName)
	if err != nil {
		t.Fatalf("read spool dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("spool dir must be empty after upload, found %d entries", len(entries))
	}
}
