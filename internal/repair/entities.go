// Package repair holds the domain model of a motor-repair document: flat
// financial line items and the grouped hierarchy derived from them. The flat
// item set is the single source of truth; the hierarchy is recomputed from it
// on every read and is never edited in place.
package repair

import (
	"strings"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/workshop/internal/meta"
)

// TxKind classifies a line item as income or expense.
type TxKind string

const (
	TxIncome  TxKind = "income"
	TxExpense TxKind = "expense"
)

// nameMarker separates an item's display name from its disambiguation suffix.
// "Подшипник_ID_2" and "Подшипник_ID_3" share the base name "Подшипник" but
// remain distinct stacked items.
const nameMarker = "_ID_"

// LineItem is the canonical, validated unit of document data before grouping.
type LineItem struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	// OrderKey is the position number of the order the item belongs to.
	OrderKey int
	// OrderLabel is the service description shown for the order. The first
	// label seen for an order key wins during grouping.
	OrderLabel string
	WorkGroup  string
	RawName    string
	Kind       TxKind
	// UnitPrice is the signed price per unit. Expense magnitudes are stored
	// unsigned; sign conventions are applied at presentation boundaries only.
	UnitPrice decimal.Decimal
	Quantity  int
	// Metadata carries source provenance (worksheet, line number).
	Metadata meta.Metadata
}

// Amount returns UnitPrice × Quantity.
func (li LineItem) Amount() decimal.Decimal {
	return mulInt(li.UnitPrice, li.Quantity)
}

// BaseName returns the raw name with the disambiguation marker and everything
// after it stripped.
func BaseName(raw string) string {
	if i := strings.Index(raw, nameMarker); i >= 0 {
		return raw[:i]
	}
	return raw
}

// StackedItem is one merged display line: identical raw names within a
// transaction group collapse into a single item with summed quantity.
type StackedItem struct {
	// ID is derived from the full raw name and is stable across merges.
	ID        string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// TransactionGroup is the income or expense subset of a position group. A
// group with zero items is still constructed with a zero total; pruning it is
// a presentation concern.
type TransactionGroup struct {
	Kind  TxKind
	Items []StackedItem
	Total decimal.Decimal
}

// PositionGroup gathers all transactions sharing a base item name.
type PositionGroup struct {
	BaseName     string
	Income       TransactionGroup
	Expense      TransactionGroup
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalProfit  decimal.Decimal
}

// WorkGroup is a labor/parts category within an order. Positions are sorted
// ascending by base name.
type WorkGroup struct {
	Name         string
	Positions    []PositionGroup
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalProfit  decimal.Decimal
}

// OrderGroup is the top level of the hierarchy, one per order key. Work groups
// keep first-seen insertion order and are deliberately not sorted.
type OrderGroup struct {
	Key          int
	Label        string
	WorkGroups   []WorkGroup
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalProfit  decimal.Decimal
}

// addDec and subDec ignore the overflow error of govalues arithmetic; workshop
// amounts are nowhere near the 19-digit coefficient limit.
func addDec(a, b decimal.Decimal) decimal.Decimal {
	if v, err := a.Add(b); err == nil {
		return v
	}
	return a
}

func subDec(a, b decimal.Decimal) decimal.Decimal {
	if v, err := a.Sub(b); err == nil {
		return v
	}
	return a
}

func mulInt(d decimal.Decimal, n int) decimal.Decimal {
	f, err := decimal.New(int64(n), 0)
	if err != nil {
		return d
	}
	if v, err := d.Mul(f); err == nil {
		return v
	}
	return d
}
