package httpapi

import (
	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/workshop/internal/repair"
)

// Decimal fields marshal as JSON strings via govalues' text marshaler, so
// amounts never pass through float64.

type importResponse struct {
	DocumentID uuid.UUID `json:"document_id"`
	Accepted   int       `json:"accepted"`
	Dropped    int       `json:"dropped"`
}

type stackedItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type transactionGroupResponse struct {
	Kind  repair.TxKind         `json:"kind"`
	Items []stackedItemResponse `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

type positionGroupResponse struct {
	BaseName     string                   `json:"base_name"`
	Income       transactionGroupResponse `json:"income"`
	Expense      transactionGroupResponse `json:"expense"`
	TotalIncome  decimal.Decimal          `json:"total_income"`
	TotalExpense decimal.Decimal          `json:"total_expense"`
	TotalProfit  decimal.Decimal          `json:"total_profit"`
}

type workGroupResponse struct {
	Name         string                  `json:"name"`
	Positions    []positionGroupResponse `json:"positions"`
	TotalIncome  decimal.Decimal         `json:"total_income"`
	TotalExpense decimal.Decimal         `json:"total_expense"`
	TotalProfit  decimal.Decimal         `json:"total_profit"`
}

type orderGroupResponse struct {
	Key          int                 `json:"key"`
	Label        string              `json:"label"`
	WorkGroups   []workGroupResponse `json:"work_groups"`
	TotalIncome  decimal.Decimal     `json:"total_income"`
	TotalExpense decimal.Decimal     `json:"total_expense"`
	TotalProfit  decimal.Decimal     `json:"total_profit"`
}

type lineItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	OrderKey   int             `json:"order_key"`
	OrderLabel string          `json:"order_label"`
	WorkGroup  string          `json:"work_group"`
	Name       string          `json:"name"`
	Kind       repair.TxKind   `json:"kind"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

type reportRowResponse struct {
	ID          uuid.UUID        `json:"id"`
	MotorID     uuid.UUID        `json:"motor_id"`
	ParentID    *uuid.UUID       `json:"parent_id,omitempty"`
	Description string           `json:"description"`
	Level       int              `json:"level"`
	Kind        repair.NodeKind  `json:"kind"`
	IsIncome    *bool            `json:"is_income,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	OrderIndex  int              `json:"order_index"`
}

type snapshotRequest struct {
	MotorID uuid.UUID `json:"motor_id"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type substituteRequest struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
}

type workGroupDefResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func toStackedItem(it repair.StackedItem) stackedItemResponse {
	return stackedItemResponse{ID: it.ID, Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Total: it.Total}
}

func toTransactionGroup(tg repair.TransactionGroup) transactionGroupResponse {
	items := make([]stackedItemResponse, 0, len(tg.Items))
	for _, it := range tg.Items {
		items = append(items, toStackedItem(it))
	}
	return transactionGroupResponse{Kind: tg.Kind, Items: items, Total: tg.Total}
}

func toOrderGroup(og repair.OrderGroup) orderGroupResponse {
	wgs := make([]workGroupResponse, 0, len(og.WorkGroups))
	for _, wg := range og.WorkGroups {
		pgs := make([]positionGroupResponse, 0, len(wg.Positions))
		for _, pg := range wg.Positions {
			pgs = append(pgs, positionGroupResponse{
				BaseName:     pg.BaseName,
				Income:       toTransactionGroup(pg.Income),
				Expense:      toTransactionGroup(pg.Expense),
				TotalIncome:  pg.TotalIncome,
				TotalExpense: pg.TotalExpense,
				TotalProfit:  pg.TotalProfit,
			})
		}
		wgs = append(wgs, workGroupResponse{
			Name:         wg.Name,
			Positions:    pgs,
			TotalIncome:  wg.TotalIncome,
			TotalExpense: wg.TotalExpense,
			TotalProfit:  wg.TotalProfit,
		})
	}
	return orderGroupResponse{
		Key:          og.Key,
		Label:        og.Label,
		WorkGroups:   wgs,
		TotalIncome:  og.TotalIncome,
		TotalExpense: og.TotalExpense,
		TotalProfit:  og.TotalProfit,
	}
}

func toLineItem(li repair.LineItem) lineItemResponse {
	return lineItemResponse{
		ID:         li.ID,
		OrderKey:   li.OrderKey,
		OrderLabel: li.OrderLabel,
		WorkGroup:  li.WorkGroup,
		Name:       li.RawName,
		Kind:       li.Kind,
		UnitPrice:  li.UnitPrice,
		Quantity:   li.Quantity,
	}
}

func toReportRow(rr repair.ReportRow) reportRowResponse {
	return reportRowResponse{
		ID:          rr.ID,
		MotorID:     rr.MotorID,
		ParentID:    rr.ParentID,
		Description: rr.Description,
		Level:       rr.Level,
		Kind:        rr.Kind,
		IsIncome:    rr.IsIncome,
		Price:       rr.Price,
		Quantity:    rr.Quantity,
		OrderIndex:  rr.OrderIndex,
	}
}
