package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles roster journal operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new journal service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Record stores an entry, filling in the ID and timestamp when missing.
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry == nil || strings.TrimSpace(entry.Activity) == "" || !entry.Type.Valid() {
		return ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("recording journal entry: %w", err)
	}
	s.logger.Debug("journal entry recorded", "id", entry.ID, "activity", entry.Activity, "type", entry.Type)
	return nil
}

// Recent lists entries newest first. Limit is clamped to [1, MaxLimit].
func (s *Service) Recent(ctx context.Context, opts ListOptions) ([]Entry, error) {
	if opts.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}
	if opts.Type != nil && !opts.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", ErrInvalidInput, *opts.Type)
	}
	switch {
	case opts.Limit <= 0:
		opts.Limit = DefaultLimit
	case opts.Limit > MaxLimit:
		opts.Limit = MaxLimit
	}
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
