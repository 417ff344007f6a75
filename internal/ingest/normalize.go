package ingest

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tinoosan/workshop/internal/meta"
	"github.com/tinoosan/workshop/internal/repair"
)

var rowsDropped = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "workshop",
	Name:      "ingest_rows_dropped_total",
	Help:      "Worksheet rows rejected during normalization",
})

var requiredColumns = []string{
	ColService, ColItem, ColWorkGroup, ColKind, ColPrice, ColQuantity, ColPosition,
}

// Normalizer validates and coerces raw worksheet rows into line items.
type Normalizer struct {
	log *slog.Logger
}

func NewNormalizer(log *slog.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Normalize filters and maps rows into valid line items, preserving input
// order. Malformed rows never abort the batch: each one is dropped with a
// diagnostic log line and a counter increment. Returns the items and the
// number of dropped rows.
func (n *Normalizer) Normalize(documentID uuid.UUID, rows []RawRow) ([]repair.LineItem, int) {
	items := make([]repair.LineItem, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		li, err := n.lineItem(documentID, row)
		if err != nil {
			dropped++
			rowsDropped.Inc()
			n.log.Warn("row rejected", "sheet", row.Sheet, "line", row.Line, "err", err)
			continue
		}
		items = append(items, li)
	}
	return items, dropped
}

func (n *Normalizer) lineItem(documentID uuid.UUID, row RawRow) (repair.LineItem, error) {
	cells := make(map[string]string, len(requiredColumns))
	for _, col := range requiredColumns {
		v := strings.TrimSpace(row.Cells[col])
		if v == "" {
			return repair.LineItem{}, fmt.Errorf("%s: missing value", col)
		}
		cells[col] = v
	}

	var kind repair.TxKind
	switch cells[ColKind] {
	case LabelIncome:
		kind = repair.TxIncome
	case LabelExpense:
		kind = repair.TxExpense
	default:
		return repair.LineItem{}, fmt.Errorf("%s: unknown transaction type %q", ColKind, cells[ColKind])
	}

	// spreadsheets in the wild use either decimal separator
	price, err := decimal.Parse(strings.ReplaceAll(cells[ColPrice], ",", "."))
	if err != nil {
		return repair.LineItem{}, fmt.Errorf("%s: %q is not a number", ColPrice, cells[ColPrice])
	}
	quantity, err := strconv.Atoi(cells[ColQuantity])
	if err != nil || quantity < 1 {
		return repair.LineItem{}, fmt.Errorf("%s: %q is not a positive integer", ColQuantity, cells[ColQuantity])
	}
	position, err := strconv.Atoi(cells[ColPosition])
	if err != nil {
		return repair.LineItem{}, fmt.Errorf("%s: %q is not an integer", ColPosition, cells[ColPosition])
	}

	return repair.LineItem{
		ID:         uuid.New(),
		DocumentID: documentID,
		OrderKey:   position,
		OrderLabel: cells[ColService],
		WorkGroup:  cells[ColWorkGroup],
		RawName:    cells[ColItem],
		Kind:       kind,
		UnitPrice:  price,
		Quantity:   quantity,
		Metadata: meta.New(map[string]string{
			"sheet": row.Sheet,
			"line":  strconv.Itoa(row.Line),
		}),
	}, nil
}
