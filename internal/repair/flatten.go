package repair

import (
	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// NodeKind names the tree level a flattened row was emitted from.
type NodeKind string

const (
	NodeOrderGroup    NodeKind = "order_group"
	NodeWorkGroup     NodeKind = "work_group"
	NodePositionGroup NodeKind = "position_group"
	NodeItem          NodeKind = "item"
)

// ReportRow is one persistence-ready row of a flattened hierarchy. Parent
// linkage and order index are enough to restore display order from an
// unordered store.
type ReportRow struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	MotorID    uuid.UUID
	// ParentID is nil for order-level rows.
	ParentID    *uuid.UUID
	Description string
	// Level: 0=order, 1=work group, 2=position, 3=item.
	Level int
	Kind  NodeKind
	// IsIncome, Price and Quantity are set on item rows only.
	IsIncome *bool
	Price    *decimal.Decimal
	Quantity *int
	// OrderIndex increases strictly in depth-first pre-order, starting at 0.
	OrderIndex int
}

// Flatten walks the order groups depth-first pre-order and emits one row per
// tree node, stamping every row with the document and motor ids. Within a
// position all income items precede all expense items. Row ids are fresh on
// every call; structure, descriptions and relative order are deterministic.
func Flatten(groups []OrderGroup, documentID, motorID uuid.UUID) []ReportRow {
	f := &flattener{documentID: documentID, motorID: motorID}
	for _, og := range groups {
		orderID := f.emit(nil, og.Label, 0, NodeOrderGroup)
		for _, wg := range og.WorkGroups {
			wgID := f.emit(&orderID, wg.Name, 1, NodeWorkGroup)
			for _, pg := range wg.Positions {
				pgID := f.emit(&wgID, pg.BaseName, 2, NodePositionGroup)
				f.emitItems(pgID, pg.Income)
				f.emitItems(pgID, pg.Expense)
			}
		}
	}
	return f.rows
}

type flattener struct {
	documentID uuid.UUID
	motorID    uuid.UUID
	rows       []ReportRow
}

func (f *flattener) emit(parentID *uuid.UUID, description string, level int, kind NodeKind) uuid.UUID {
	id := uuid.New()
	row := ReportRow{
		ID:          id,
		DocumentID:  f.documentID,
		MotorID:     f.motorID,
		Description: description,
		Level:       level,
		Kind:        kind,
		OrderIndex:  len(f.rows),
	}
	if parentID != nil {
		pid := *parentID
		row.ParentID = &pid
	}
	f.rows = append(f.rows, row)
	return id
}

func (f *flattener) emitItems(positionID uuid.UUID, tg TransactionGroup) {
	for _, it := range tg.Items {
		f.emit(&positionID, it.Name, 3, NodeItem)
		row := &f.rows[len(f.rows)-1]
		inc := tg.Kind == TxIncome
		price := it.UnitPrice
		qty := it.Quantity
		row.IsIncome = &inc
		row.Price = &price
		row.Quantity = &qty
	}
}
