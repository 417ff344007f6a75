package memory

// Package memory provides a simple in-memory implementation used for
// development and tests. It keeps code paths easy to follow while allowing us
// to plug in a real DB later.

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tinoosan/workshop/internal/repair"
)

// Store is an in-memory implementation of the repository+writer used by the
// API. It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu sync.RWMutex
	// items holds each document's line items in upload order.
	items map[uuid.UUID][]repair.LineItem
	// reports holds each document's latest flattened snapshot.
	reports map[uuid.UUID][]repair.ReportRow
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		items:   make(map[uuid.UUID][]repair.LineItem),
		reports: make(map[uuid.UUID][]repair.ReportRow),
	}
}

// SeedItems is a helper for local dev/tests.
func (s *Store) SeedItems(documentID uuid.UUID, items []repair.LineItem) {
	_ = s.SaveItems(context.Background(), documentID, items)
}

func (s *Store) Reset() {
	s.mu.Lock()
	s.items = make(map[uuid.UUID][]repair.LineItem)
	s.reports = make(map[uuid.UUID][]repair.ReportRow)
	s.mu.Unlock()
}

// ItemsByDocumentID implements document.Repo.
func (s *Store) ItemsByDocumentID(_ context.Context, documentID uuid.UUID) ([]repair.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.items[documentID]
	out := make([]repair.LineItem, len(stored))
	copy(out, stored)
	return out, nil
}

// ReportRowsByDocumentID implements document.Repo.
func (s *Store) ReportRowsByDocumentID(_ context.Context, documentID uuid.UUID) ([]repair.ReportRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.reports[documentID]
	out := make([]repair.ReportRow, len(stored))
	copy(out, stored)
	return out, nil
}

// SaveItems implements document.Writer; it replaces the document's items.
func (s *Store) SaveItems(_ context.Context, documentID uuid.UUID, items []repair.LineItem) error {
	cp := make([]repair.LineItem, len(items))
	copy(cp, items)
	s.mu.Lock()
	s.items[documentID] = cp
	s.mu.Unlock()
	return nil
}

// SaveReportRows implements document.Writer; it replaces the snapshot.
func (s *Store) SaveReportRows(_ context.Context, documentID uuid.UUID, rows []repair.ReportRow) error {
	cp := make([]repair.ReportRow, len(rows))
	copy(cp, rows)
	s.mu.Lock()
	s.reports[documentID] = cp
	s.mu.Unlock()
	return nil
}
