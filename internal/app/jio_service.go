package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/jiobot/internal/core/jio"
	"github.com/example/jiobot/internal/ports/primary"
	"github.com/example/jiobot/internal/ports/secondary"
)

// JioServiceImpl implements the JioService interface.
type JioServiceImpl struct {
	jioRepo secondary.JioRepository
}

// NewJioService creates a new JioService with injected dependencies.
func NewJioService(jioRepo secondary.JioRepository) *JioServiceImpl {
	return &JioServiceImpl{jioRepo: jioRepo}
}

// CreateJio creates a new jio with its creator as the first participant.
func (s *JioServiceImpl) CreateJio(ctx context.Context, req primary.CreateJioRequest) (*primary.CreateJioResponse, error) {
	// 1. Guard check
	if err := jio.CanCreateJio(jio.CreateJioContext{Name: req.Name}).Error(); err != nil {
		return nil, err
	}

	// 2. Get next ID
	nextID, err := s.jioRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate jio ID: %w", err)
	}

	// 3. Create record
	record := &secondary.JioRecord{
		ID:           nextID,
		Name:         strings.TrimSpace(req.Name),
		CreatorID:    req.CreatorID,
		CreatorName:  req.CreatorName,
		CreatedAt:    req.CreatedAt,
		Participants: []string{req.CreatorName},
	}
	if err := s.jioRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create jio: %w", err)
	}

	// 4. Fetch created jio
	created, err := s.jioRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created jio: %w", err)
	}

	return &primary.CreateJioResponse{
		JioID: created.ID,
		Jio:   recordToJio(created),
	}, nil
}

// GetJio retrieves a jio by ID.
func (s *JioServiceImpl) GetJio(ctx context.Context, jioID int64) (*primary.Jio, error) {
	record, exists, err := s.lookup(ctx, jioID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("jio %d: %w", jioID, jio.ErrNotFound)
	}
	return recordToJio(record), nil
}

// ListJios lists jios with optional filters.
func (s *JioServiceImpl) ListJios(ctx context.Context, filters primary.JioFilters) ([]*primary.Jio, error) {
	records, err := s.jioRepo.List(ctx, secondary.JioFilters{CreatorID: filters.CreatorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list jios: %w", err)
	}

	jios := make([]*primary.Jio, len(records))
	for i, r := range records {
		jios[i] = recordToJio(r)
	}
	return jios, nil
}

// AddItem appends an item and records the contributor as a participant.
func (s *JioServiceImpl) AddItem(ctx context.Context, req primary.AddItemRequest) (*primary.Jio, error) {
	_, exists, err := s.lookup(ctx, req.JioID)
	if err != nil {
		return nil, err
	}

	guardCtx := jio.AddItemContext{
		JioID:     req.JioID,
		JioExists: exists,
		ItemText:  req.Text,
	}
	if err := jio.CanAddItem(guardCtx).Error(); err != nil {
		return nil, err
	}

	item := &secondary.ItemRecord{
		ContributorName: req.ContributorName,
		Text:            strings.TrimSpace(req.Text),
		AddedAt:         req.AddedAt,
	}
	if err := s.jioRepo.AppendItem(ctx, req.JioID, item); err != nil {
		return nil, translateNotFound(req.JioID, fmt.Errorf("failed to add item: %w", err))
	}

	return s.GetJio(ctx, req.JioID)
}

// CloseJio permanently removes a jio. Only its creator may close it.
func (s *JioServiceImpl) CloseJio(ctx context.Context, req primary.CloseJioRequest) (*primary.Jio, error) {
	record, exists, err := s.lookup(ctx, req.JioID)
	if err != nil {
		return nil, err
	}

	guardCtx := jio.CloseJioContext{
		JioID:            req.JioID,
		JioExists:        exists,
		RequestingUserID: req.RequestingUserID,
	}
	if exists {
		guardCtx.CreatorID = record.CreatorID
	}
	if err := jio.CanCloseJio(guardCtx).Error(); err != nil {
		return nil, err
	}

	if err := s.jioRepo.Delete(ctx, req.JioID); err != nil {
		return nil, translateNotFound(req.JioID, fmt.Errorf("failed to close jio: %w", err))
	}
	return recordToJio(record), nil
}

// RecordSurface attaches a surface to a jio.
func (s *JioServiceImpl) RecordSurface(ctx context.Context, jioID int64, surface jio.Surface) error {
	_, exists, err := s.lookup(ctx, jioID)
	if err != nil {
		return err
	}

	guardCtx := jio.RecordSurfaceContext{
		JioID:     jioID,
		JioExists: exists,
		Surface:   surface,
	}
	if err := jio.CanRecordSurface(guardCtx).Error(); err != nil {
		return err
	}

	if _, err := s.jioRepo.AddSurface(ctx, jioID, surfaceToRecord(surface)); err != nil {
		return translateNotFound(jioID, fmt.Errorf("failed to record surface: %w", err))
	}
	return nil
}

// Helper methods

// lookup fetches a jio record. A missing jio is reported through exists, not err.
func (s *JioServiceImpl) lookup(ctx context.Context, jioID int64) (*secondary.JioRecord, bool, error) {
	record, err := s.jioRepo.GetByID(ctx, jioID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get jio: %w", err)
	}
	return record, true, nil
}

// translateNotFound maps a repository not-found into the domain sentinel.
func translateNotFound(jioID int64, err error) error {
	if errors.Is(err, secondary.ErrNotFound) {
		return fmt.Errorf("jio %d: %w", jioID, jio.ErrNotFound)
	}
	return err
}

func recordToJio(r *secondary.JioRecord) *primary.Jio {
	j := &primary.Jio{
		ID:           r.ID,
		Name:         r.Name,
		CreatorID:    r.CreatorID,
		CreatorName:  r.CreatorName,
		CreatedAt:    r.CreatedAt,
		Participants: append([]string(nil), r.Participants...),
	}
	for _, it := range r.Items {
		j.Items = append(j.Items, jio.Item{
			ContributorName: it.ContributorName,
			Text:            it.Text,
			AddedAt:         it.AddedAt,
		})
	}
	for _, sr := range r.Surfaces {
		j.Surfaces = append(j.Surfaces, recordToSurface(sr))
	}
	return j
}

func surfaceToRecord(s jio.Surface) *secondary.SurfaceRecord {
	return &secondary.SurfaceRecord{
		Kind:            string(s.Kind),
		InlineMessageID: s.InlineMessageID,
		ChatID:          s.ChatID,
		MessageID:       s.MessageID,
	}
}

func recordToSurface(r secondary.SurfaceRecord) jio.Surface {
	return jio.Surface{
		Kind:            jio.SurfaceKind(r.Kind),
		InlineMessageID: r.InlineMessageID,
		ChatID:          r.ChatID,
		MessageID:       r.MessageID,
	}
}

// Ensure JioServiceImpl implements the interface
var _ primary.JioService = (*JioServiceImpl)(nil)
