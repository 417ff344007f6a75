// Package document implements the service rules around repair documents: a
// document's flat line items are the single source of truth, every read of the
// hierarchy is a fresh derivation, and mutations rewrite the flat set through
// the injected store.
package document

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/workshop/internal/errs"
	"github.com/tinoosan/workshop/internal/ingest"
	"github.com/tinoosan/workshop/internal/repair"
)

// Repo defines read operations needed by the service.
type Repo interface {
	ItemsByDocumentID(ctx context.Context, documentID uuid.UUID) ([]repair.LineItem, error)
	ReportRowsByDocumentID(ctx context.Context, documentID uuid.UUID) ([]repair.ReportRow, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	// SaveItems replaces the document's line items.
	SaveItems(ctx context.Context, documentID uuid.UUID, items []repair.LineItem) error
	// SaveReportRows replaces the document's flattened snapshot.
	SaveReportRows(ctx context.Context, documentID uuid.UUID, rows []repair.ReportRow) error
}

// ImportResult reports how an upload went: per-row rejections are counted,
// never fatal.
type ImportResult struct {
	Accepted int
	Dropped  int
}

// Service exposes import, derivation and mutation of repair documents.
type Service interface {
	Import(ctx context.Context, documentID uuid.UUID, rows []ingest.RawRow) (ImportResult, error)
	Items(ctx context.Context, documentID uuid.UUID) ([]repair.LineItem, error)
	Tree(ctx context.Context, documentID uuid.UUID) ([]repair.OrderGroup, error)
	Order(ctx context.Context, documentID uuid.UUID, orderKey int) (repair.OrderGroup, error)
	Snapshot(ctx context.Context, documentID, motorID uuid.UUID) ([]repair.ReportRow, error)
	LatestSnapshot(ctx context.Context, documentID uuid.UUID) ([]repair.ReportRow, error)
	SetQuantity(ctx context.Context, documentID, itemID uuid.UUID, quantity int) error
	Substitute(ctx context.Context, documentID, itemID uuid.UUID, name string, unitPrice decimal.Decimal) error
}

type service struct {
	repo   Repo
	writer Writer
	norm   *ingest.Normalizer
}

func New(repo Repo, writer Writer, log *slog.Logger) Service {
	return &service{repo: repo, writer: writer, norm: ingest.NewNormalizer(log)}
}

// Import normalizes raw rows and replaces the document's items. A document is
// one upload/batch; re-importing overwrites.
func (s *service) Import(ctx context.Context, documentID uuid.UUID, rows []ingest.RawRow) (ImportResult, error) {
	if documentID == uuid.Nil {
		return ImportResult{}, errs.ErrInvalid
	}
	items, dropped := s.norm.Normalize(documentID, rows)
	if err := s.writer.SaveItems(ctx, documentID, items); err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Accepted: len(items), Dropped: dropped}, nil
}

func (s *service) Items(ctx context.Context, documentID uuid.UUID) ([]repair.LineItem, error) {
	if documentID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ItemsByDocumentID(ctx, documentID)
}

// Tree rebuilds the hierarchy from the flat items on every call.
func (s *service) Tree(ctx context.Context, documentID uuid.UUID) ([]repair.OrderGroup, error) {
	items, err := s.Items(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return repair.Build(items), nil
}

// Order returns a single order group by its key.
func (s *service) Order(ctx context.Context, documentID uuid.UUID, orderKey int) (repair.OrderGroup, error) {
	groups, err := s.Tree(ctx, documentID)
	if err != nil {
		return repair.OrderGroup{}, err
	}
	for _, og := range groups {
		if og.Key == orderKey {
			return og, nil
		}
	}
	return repair.OrderGroup{}, errs.ErrNotFound
}

// Snapshot flattens the current hierarchy, persists the rows and returns them.
func (s *service) Snapshot(ctx context.Context, documentID, motorID uuid.UUID) ([]repair.ReportRow, error) {
	if motorID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	groups, err := s.Tree(ctx, documentID)
	if err != nil {
		return nil, err
	}
	rows := repair.Flatten(groups, documentID, motorID)
	if err := s.writer.SaveReportRows(ctx, documentID, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *service) LatestSnapshot(ctx context.Context, documentID uuid.UUID) ([]repair.ReportRow, error) {
	if documentID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ReportRowsByDocumentID(ctx, documentID)
}

// SetQuantity applies the pure mutation and persists the new item set. Unlike
// the core no-op contract, the service surfaces a missing item as ErrNotFound
// so API callers get visibility.
func (s *service) SetQuantity(ctx context.Context, documentID, itemID uuid.UUID, quantity int) error {
	items, err := s.Items(ctx, documentID)
	if err != nil {
		return err
	}
	if !containsItem(items, itemID) {
		return errs.ErrNotFound
	}
	updated, err := repair.SetQuantity(items, itemID, quantity)
	if err != nil {
		return err
	}
	return s.writer.SaveItems(ctx, documentID, updated)
}

// Substitute swaps an item's name and unit price, same contract as SetQuantity.
func (s *service) Substitute(ctx context.Context, documentID, itemID uuid.UUID, name string, unitPrice decimal.Decimal) error {
	items, err := s.Items(ctx, documentID)
	if err != nil {
		return err
	}
	if !containsItem(items, itemID) {
		return errs.ErrNotFound
	}
	updated, err := repair.SubstituteItem(items, itemID, name, unitPrice)
	if err != nil {
		return err
	}
	return s.writer.SaveItems(ctx, documentID, updated)
}

func containsItem(items []repair.LineItem, id uuid.UUID) bool {
	for _, li := range items {
		if li.ID == id {
			return true
		}
	}
	return false
}
