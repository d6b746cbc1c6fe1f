package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"getgsa/internal/config"
	"getgsa/mocks"
)

func retentionCfg() config.RetentionConfig {
	return config.RetentionConfig{
		Enabled:       true,
		Window:        720 * time.Hour,
		SweepInterval: time.Hour,
	}
}

func TestSweep_PurgesOriginals(t *testing.T) {
	reqRepo := new(mocks.MockRequestRepository)
	docRepo := new(mocks.MockDocumentRepository)
	docRepo.On("PurgeOriginalsBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return time.Since(cutoff) > 719*time.Hour && time.Since(cutoff) < 721*time.Hour
	})).Return(int64(3), nil)

	w := NewRetentionWorker(reqRepo, docRepo, nil, retentionCfg(), config.S3Config{})
	w.Sweep(context.Background())

	docRepo.AssertExpectations(t)
	reqRepo.AssertNotCalled(t, "ListIDsCreatedBefore", mock.Anything, mock.Anything)
}

func TestSweep_DeletesArchivesWhenEnabled(t *testing.T) {
	reqRepo := new(mocks.MockRequestRepository)
	docRepo := new(mocks.MockDocumentRepository)
	storage := new(mocks.MockObjectStorage)

	expired := uuid.New()
	docRepo.On("PurgeOriginalsBefore", mock.Anything, mock.Anything).Return(int64(1), nil)
	reqRepo.On("ListIDsCreatedBefore", mock.Anything, mock.Anything).Return([]uuid.UUID{expired}, nil)
	storage.On("Delete", mock.Anything, "archive-bucket", ArchiveKey(expired)).Return(nil)

	s3cfg := config.S3Config{Bucket: "archive-bucket", ArchiveOriginals: true}
	w := NewRetentionWorker(reqRepo, docRepo, storage, retentionCfg(), s3cfg)
	w.Sweep(context.Background())

	storage.AssertExpectations(t)
}

func TestSweep_PurgeErrorSkipsArchiveDeletion(t *testing.T) {
	reqRepo := new(mocks.MockRequestRepository)
	docRepo := new(mocks.MockDocumentRepository)
	storage := new(mocks.MockObjectStorage)
	docRepo.On("PurgeOriginalsBefore", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	s3cfg := config.S3Config{Bucket: "archive-bucket", ArchiveOriginals: true}
	w := NewRetentionWorker(reqRepo, docRepo, storage, retentionCfg(), s3cfg)
	w.Sweep(context.Background())

	reqRepo.AssertNotCalled(t, "ListIDsCreatedBefore", mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	reqRepo := new(mocks.MockRequestRepository)
	docRepo := new(mocks.MockDocumentRepository)
	docRepo.On("PurgeOriginalsBefore", mock.Anything, mock.Anything).Return(int64(0), nil)

	cfg := retentionCfg()
	cfg.SweepInterval = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	w := NewRetentionWorker(reqRepo, docRepo, nil, cfg, config.S3Config{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
