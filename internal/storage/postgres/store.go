package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the HTTP/API and services.
//
// It is intentionally small and explicit: mapping between domain entities and
// SQL rows, plus the delete+insert transactions that implement the
// replace-on-save semantics of documents and snapshots.

import (
	"context"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/workshop/internal/meta"
	"github.com/tinoosan/workshop/internal/repair"
)

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// ItemsByDocumentID returns the document's line items in upload order.
func (s *Store) ItemsByDocumentID(ctx context.Context, documentID uuid.UUID) ([]repair.LineItem, error) {
	rows, err := s.pool.Query(ctx, `
		select id, document_id, order_key, order_label, work_group, raw_name,
		       kind, unit_price, quantity, metadata
		from line_items
		where document_id = $1
		order by seq
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]repair.LineItem, 0)
	for rows.Next() {
		var li repair.LineItem
		var kind, price string
		var mdBytes []byte
		if err := rows.Scan(&li.ID, &li.DocumentID, &li.OrderKey, &li.OrderLabel,
			&li.WorkGroup, &li.RawName, &kind, &price, &li.Quantity, &mdBytes); err != nil {
			return nil, err
		}
		li.Kind = repair.TxKind(kind)
		d, err := decimal.Parse(price)
		if err != nil {
			return nil, err
		}
		li.UnitPrice = d
		if len(mdBytes) > 0 {
			var m meta.Metadata
			if err := m.UnmarshalJSON(mdBytes); err == nil {
				li.Metadata = m
			}
		}
		out = append(out, li)
	}
	return out, rows.Err()
}

// SaveItems replaces the document's line items atomically.
func (s *Store) SaveItems(ctx context.Context, documentID uuid.UUID, items []repair.LineItem) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if _, err := tx.Exec(ctx, `delete from line_items where document_id = $1`, documentID); err != nil {
		return err
	}
	for i, li := range items {
		md, _ := li.Metadata.MarshalStableJSON()
		if _, err := tx.Exec(ctx, `
			insert into line_items (id, document_id, seq, order_key, order_label,
			                        work_group, raw_name, kind, unit_price, quantity, metadata)
			values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, li.ID, documentID, i, li.OrderKey, li.OrderLabel, li.WorkGroup,
			li.RawName, string(li.Kind), li.UnitPrice.String(), li.Quantity, md); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ReportRowsByDocumentID returns the latest snapshot in traversal order.
func (s *Store) ReportRowsByDocumentID(ctx context.Context, documentID uuid.UUID) ([]repair.ReportRow, error) {
	rows, err := s.pool.Query(ctx, `
		select id, document_id, motor_id, parent_id, description, level, kind,
		       is_income, price, quantity, order_index
		from report_rows
		where document_id = $1
		order by order_index
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]repair.ReportRow, 0)
	for rows.Next() {
		var rr repair.ReportRow
		var kind string
		var price *string
		if err := rows.Scan(&rr.ID, &rr.DocumentID, &rr.MotorID, &rr.ParentID,
			&rr.Description, &rr.Level, &kind, &rr.IsIncome, &price,
			&rr.Quantity, &rr.OrderIndex); err != nil {
			return nil, err
		}
		rr.Kind = repair.NodeKind(kind)
		if price != nil {
			d, err := decimal.Parse(*price)
			if err != nil {
				return nil, err
			}
			rr.Price = &d
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// SaveReportRows replaces the document's snapshot atomically.
func (s *Store) SaveReportRows(ctx context.Context, documentID uuid.UUID, reportRows []repair.ReportRow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if _, err := tx.Exec(ctx, `delete from report_rows where document_id = $1`, documentID); err != nil {
		return err
	}
	for _, rr := range reportRows {
		var price *string
		if rr.Price != nil {
			p := rr.Price.String()
			price = &p
		}
		if _, err := tx.Exec(ctx, `
			insert into report_rows (id, document_id, motor_id, parent_id, description,
			                         level, kind, is_income, price, quantity, order_index)
			values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, rr.ID, rr.DocumentID, rr.MotorID, rr.ParentID, rr.Description,
			rr.Level, string(rr.Kind), rr.IsIncome, price, rr.Quantity, rr.OrderIndex); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
