package repair

import "github.com/tinoosan/workshop/internal/slug"

// StackItems merges line items sharing the same full raw name into stacked
// items, in first-encounter order. Quantities are summed and the total
// accumulates price×quantity per contributing item. The unit price keeps its
// first-seen value; contributing items are assumed to share a price, and that
// choice is fixed by tests so a future change is intentional.
//
// The caller partitions by order, work group, base name and transaction kind
// before invoking this.
func StackItems(items []LineItem) []StackedItem {
	idx := make(map[string]int, len(items))
	out := make([]StackedItem, 0, len(items))
	for _, li := range items {
		amount := li.Amount()
		if i, ok := idx[li.RawName]; ok {
			out[i].Quantity += li.Quantity
			out[i].Total = addDec(out[i].Total, amount)
			continue
		}
		idx[li.RawName] = len(out)
		out = append(out, StackedItem{
			ID:        slug.Slugify(li.RawName),
			Name:      li.RawName,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Total:     amount,
		})
	}
	return out
}
