package repair

import (
	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/workshop/internal/errs"
)

// SetQuantity returns a copy of items with the quantity of the item matching
// id replaced. Quantities below 1 are rejected with errs.ErrInvalid so the
// quantity ≥ 1 invariant holds after any successful mutation. A missing id is
// a deliberate no-op: the input is returned unchanged with a nil error.
func SetQuantity(items []LineItem, id uuid.UUID, quantity int) ([]LineItem, error) {
	if quantity < 1 {
		return nil, errs.ErrInvalid
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = quantity
			break
		}
	}
	return out, nil
}

// SubstituteItem returns a copy of items with the raw name and unit price of
// the item matching id replaced. All other fields, including quantity,
// transaction kind and grouping keys, are untouched. An empty name is rejected
// with errs.ErrInvalid; a missing id is a no-op, same contract as SetQuantity.
func SubstituteItem(items []LineItem, id uuid.UUID, name string, unitPrice decimal.Decimal) ([]LineItem, error) {
	if name == "" {
		return nil, errs.ErrInvalid
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			out[i].RawName = name
			out[i].UnitPrice = unitPrice
			break
		}
	}
	return out, nil
}
