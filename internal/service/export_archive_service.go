package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
	"github.com/noah-isme/bank-sampah-api/pkg/jobs"
)

type exportStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type downloadSigner interface {
	Generate(exportID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error)
}

// ExportArchiveConfig tunes the archive worker pool and token lifetime.
type ExportArchiveConfig struct {
	DownloadTTL time.Duration
	Workers     int
}

// ExportArchiveService keeps a copy of every rendered report on disk so it
// can be re-downloaded later with a signed token. Writes happen off the
// request path through a worker queue.
type ExportArchiveService struct {
	store  exportStore
	signer downloadSigner
	queue  *jobs.Queue
	logger *zap.Logger
	ttl    time.Duration
}

type archiveJob struct {
	Path string
	Data []byte
}

// NewExportArchiveService constructs the archive and its backing queue.
// Call Start before archiving.
func NewExportArchiveService(store exportStore, signer downloadSigner, logger *zap.Logger, cfg ExportArchiveConfig) *ExportArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DownloadTTL <= 0 {
		cfg.DownloadTTL = 24 * time.Hour
	}

	s := &ExportArchiveService{
		store:  store,
		signer: signer,
		logger: logger,
		ttl:    cfg.DownloadTTL,
	}
	s.queue = jobs.NewQueue("export-archive", s.handleJob, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s
}

// Start launches the archive workers.
func (s *ExportArchiveService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the archive workers.
func (s *ExportArchiveService) Stop() {
	s.queue.Stop()
}

// Archive enqueues the rendered file for storage and returns a signed
// download token. The write is asynchronous, so the token may briefly
// reference a file that is still being flushed.
func (s *ExportArchiveService) Archive(file *ReportFile) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "nothing to archive")
	}

	id := uuid.NewString()
	relPath := id + "-" + file.Filename

	token, _, err := s.signer.Generate(id, relPath)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download token")
	}

	err = s.queue.Enqueue(jobs.Job{
		ID:      id,
		Type:    "archive",
		Payload: archiveJob{Path: relPath, Data: file.Data},
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue archive job")
	}
	return token, nil
}

// Open validates a download token and returns the archived file along with
// the filename to present to the client. The caller owns the handle.
func (s *ExportArchiveService) Open(token string) (*os.File, string, error) {
	exportID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "archived export not found")
	}

	filename := strings.TrimPrefix(filepath.Base(relPath), exportID+"-")
	return file, filename, nil
}

// CleanupExpired deletes archived exports whose download tokens have lapsed.
func (s *ExportArchiveService) CleanupExpired() (int, error) {
	deleted, err := s.store.CleanupOlderThan(s.ttl)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clean up archived exports")
	}
	if len(deleted) > 0 {
		s.logger.Info("pruned archived exports", zap.Int("count", len(deleted)))
	}
	return len(deleted), nil
}

func (s *ExportArchiveService) handleJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(archiveJob)
	if !ok {
		s.logger.Error("unexpected archive payload", zap.String("job_id", job.ID))
		return nil
	}
	_, err := s.store.Save(payload.Path, payload.Data)
	return err
}
