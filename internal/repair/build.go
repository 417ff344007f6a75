package repair

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// baseNameCollator orders position groups the way a Russian-locale UI would.
var baseNameCollator = collate.New(language.Russian)

// Build folds a document's flat line items into order groups with subtotals at
// every level. The result is a pure projection of the input: calling Build
// twice on the same items yields identical structure and totals.
//
// Ordering rules, asymmetry intended:
//   - order groups ascend by order key
//   - position groups ascend by base name (locale-aware)
//   - work groups keep first-seen insertion order and are NOT sorted
func Build(items []LineItem) []OrderGroup {
	type orderAcc struct {
		label      string
		groupOrder []string
		byGroup    map[string][]LineItem
	}
	orders := make(map[int]*orderAcc)
	keys := make([]int, 0)
	for _, li := range items {
		acc, ok := orders[li.OrderKey]
		if !ok {
			// first label seen for the key wins
			acc = &orderAcc{label: li.OrderLabel, byGroup: make(map[string][]LineItem)}
			orders[li.OrderKey] = acc
			keys = append(keys, li.OrderKey)
		}
		if _, seen := acc.byGroup[li.WorkGroup]; !seen {
			acc.groupOrder = append(acc.groupOrder, li.WorkGroup)
		}
		acc.byGroup[li.WorkGroup] = append(acc.byGroup[li.WorkGroup], li)
	}
	sort.Ints(keys)

	out := make([]OrderGroup, 0, len(keys))
	for _, k := range keys {
		acc := orders[k]
		og := OrderGroup{Key: k, Label: acc.label}
		for _, name := range acc.groupOrder {
			wg := buildWorkGroup(name, acc.byGroup[name])
			og.TotalIncome = addDec(og.TotalIncome, wg.TotalIncome)
			og.TotalExpense = addDec(og.TotalExpense, wg.TotalExpense)
			og.WorkGroups = append(og.WorkGroups, wg)
		}
		og.TotalProfit = subDec(og.TotalIncome, og.TotalExpense)
		out = append(out, og)
	}
	return out
}

func buildWorkGroup(name string, items []LineItem) WorkGroup {
	baseOrder := make([]string, 0)
	byBase := make(map[string][]LineItem)
	for _, li := range items {
		base := BaseName(li.RawName)
		if _, seen := byBase[base]; !seen {
			baseOrder = append(baseOrder, base)
		}
		byBase[base] = append(byBase[base], li)
	}
	sort.SliceStable(baseOrder, func(i, j int) bool {
		return baseNameCollator.CompareString(baseOrder[i], baseOrder[j]) < 0
	})

	wg := WorkGroup{Name: name}
	for _, base := range baseOrder {
		pg := buildPositionGroup(base, byBase[base])
		wg.TotalIncome = addDec(wg.TotalIncome, pg.TotalIncome)
		wg.TotalExpense = addDec(wg.TotalExpense, pg.TotalExpense)
		wg.Positions = append(wg.Positions, pg)
	}
	wg.TotalProfit = subDec(wg.TotalIncome, wg.TotalExpense)
	return wg
}

func buildPositionGroup(base string, items []LineItem) PositionGroup {
	var income, expense []LineItem
	for _, li := range items {
		if li.Kind == TxIncome {
			income = append(income, li)
		} else {
			expense = append(expense, li)
		}
	}
	pg := PositionGroup{
		BaseName: base,
		Income:   TransactionGroup{Kind: TxIncome, Items: StackItems(income)},
		Expense:  TransactionGroup{Kind: TxExpense, Items: StackItems(expense)},
	}
	for _, it := range pg.Income.Items {
		pg.Income.Total = addDec(pg.Income.Total, it.Total)
	}
	for _, it := range pg.Expense.Items {
		pg.Expense.Total = addDec(pg.Expense.Total, it.Total)
	}
	pg.TotalIncome = pg.Income.Total
	pg.TotalExpense = pg.Expense.Total
	pg.TotalProfit = subDec(pg.TotalIncome, pg.TotalExpense)
	return pg
}
