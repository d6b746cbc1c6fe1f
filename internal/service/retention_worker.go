package service

import (
	"context"
	"log"
	"time"

	"getgsa/internal/config"
	"getgsa/internal/port"
)

// RetentionWorker periodically purges original document text past the
// configured retention window. Redacted text and analysis results are kept
// indefinitely; only originals (and their archived copies, when archival is
// enabled) are removed.
type RetentionWorker struct {
	reqRepo port.RequestRepository
	docRepo port.DocumentRepository
	storage port.ObjectStorage // nil skips archive deletion
	cfg     config.RetentionConfig
	s3cfg   config.S3Config
}

// NewRetentionWorker creates a RetentionWorker.
func NewRetentionWorker(reqRepo port.RequestRepository, docRepo port.DocumentRepository, storage port.ObjectStorage, cfg config.RetentionConfig, s3cfg config.S3Config) *RetentionWorker {
	return &RetentionWorker{
		reqRepo: reqRepo,
		docRepo: docRepo,
		storage: storage,
		cfg:     cfg,
		s3cfg:   s3cfg,
	}
}

// Run sweeps on the configured interval until ctx is cancelled. The first
// sweep happens immediately on startup.
func (w *RetentionWorker) Run(ctx context.Context) {
	log.Printf("service.RetentionWorker: started (window %s, interval %s)", w.cfg.Window, w.cfg.SweepInterval)

	w.Sweep(ctx)

	ticker := time.NewTicker(w.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("service.RetentionWorker: stopping: %v", ctx.Err())
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one purge pass. Errors are logged, never fatal; the next tick
// retries.
func (w *RetentionWorker) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.cfg.Window)

	purged, err := w.docRepo.PurgeOriginalsBefore(ctx, cutoff)
	if err != nil {
		log.Printf("service.RetentionWorker: purging originals: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("service.RetentionWorker: purged original text of %d documents older than %s", purged, cutoff.Format(time.RFC3339))
	}

	w.deleteArchives(ctx, cutoff)
}

// deleteArchives removes archived original corpora past the cutoff. Archive
// objects are keyed by request ID, so expired requests are listed first.
func (w *RetentionWorker) deleteArchives(ctx context.Context, cutoff time.Time) {
	if w.storage == nil || !w.s3cfg.ArchiveOriginals {
		return
	}

	ids, err := w.reqRepo.ListIDsCreatedBefore(ctx, cutoff)
	if err != nil {
		log.Printf("service.RetentionWorker: listing expired requests: %v", err)
		return
	}
	for _, id := range ids {
		if err := w.storage.Delete(ctx, w.s3cfg.Bucket, ArchiveKey(id)); err != nil {
			log.Printf("service.RetentionWorker: deleting archive for request %s: %v", id, err)
		}
	}
}
