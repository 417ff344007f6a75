// Package ingest turns uploaded worksheets into validated line items. It is
// the only place raw, untyped rows exist; nothing past the normalizer sees a
// dynamic map.
package ingest

// Column labels expected in the header row of an uploaded worksheet.
const (
	ColService   = "Услуга"
	ColItem      = "Наименование"
	ColWorkGroup = "Группа работ"
	ColKind      = "Тип"
	ColPrice     = "Цена"
	ColQuantity  = "Количество"
	ColPosition  = "Позиция"
)

// Transaction type labels. Anything else rejects the row.
const (
	LabelIncome  = "Доходы"
	LabelExpense = "Расходы"
)

// RawRow is one worksheet row keyed by header label, with enough provenance
// to point a diagnostic back at the source file.
type RawRow struct {
	Sheet string
	// Line is the 1-based worksheet line the row came from.
	Line  int
	Cells map[string]string
}
