package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// RetentionService removes notification history past the retention cutoff.
// The delete is a timestamp predicate, so an interrupted sweep picks up
// where it left off on the next run.
type RetentionService struct {
	history   HistoryStore
	retention time.Duration
}

func NewRetentionService(history HistoryStore, retention time.Duration) *RetentionService {
	return &RetentionService{
		history:   history,
		retention: retention,
	}
}

// Sweep deletes every history record older than the retention period.
func (s *RetentionService) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.history.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Infof("Retention sweep deleted %d notification history records", deleted)
	}
	return nil
}
