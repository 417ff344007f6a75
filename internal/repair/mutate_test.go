package repair

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/workshop/internal/errs"
)

func TestSetQuantity(t *testing.T) {
	items := []LineItem{
		item(1, "Repair A", "Разборка", "Анализ", TxIncome, "100", 1),
		item(1, "Repair A", "Разборка", "Мойка", TxIncome, "50", 2),
	}
	out, err := SetQuantity(items, items[1].ID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[1].Quantity != 7 {
		t.Fatalf("quantity not replaced: %+v", out[1])
	}
	if out[0].Quantity != 1 {
		t.Fatalf("other records must be untouched")
	}
	if items[1].Quantity != 2 {
		t.Fatalf("input slice mutated in place")
	}
}

func TestSetQuantity_Floor(t *testing.T) {
	items := []LineItem{item(1, "Repair A", "Разборка", "Анализ", TxIncome, "100", 1)}
	if _, err := SetQuantity(items, items[0].ID, 0); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for quantity 0, got %v", err)
	}
	if _, err := SetQuantity(items, items[0].ID, -3); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative quantity, got %v", err)
	}
	if items[0].Quantity != 1 {
		t.Fatalf("rejected mutation must not corrupt records")
	}
}

func TestSetQuantity_MissingIDNoOp(t *testing.T) {
	items := []LineItem{item(1, "Repair A", "Разборка", "Анализ", TxIncome, "100", 1)}
	out, err := SetQuantity(items, uuid.New(), 5)
	if err != nil {
		t.Fatalf("missing id is a no-op, got error %v", err)
	}
	if !reflect.DeepEqual(out, items) {
		t.Fatalf("missing id must return the input unchanged")
	}
}

func TestSubstituteItem(t *testing.T) {
	items := []LineItem{
		item(1, "Repair A", "Замена запчастей", "Подшипник_ID_1", TxExpense, "210", 2),
	}
	out, err := SubstituteItem(items, items[0].ID, "Подшипник_ID_4", decimal.MustParse("189.90"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out[0]
	if got.RawName != "Подшипник_ID_4" {
		t.Fatalf("name not replaced: %+v", got)
	}
	wantDec(t, got.UnitPrice, "189.90")
	if got.Quantity != 2 || got.Kind != TxExpense || got.WorkGroup != "Замена запчастей" || got.OrderKey != 1 {
		t.Fatalf("substitution must only touch name and price: %+v", got)
	}
	if items[0].RawName != "Подшипник_ID_1" {
		t.Fatalf("input slice mutated in place")
	}
}

func TestSubstituteItem_MissingIDNoOp(t *testing.T) {
	items := []LineItem{item(1, "Repair A", "Разборка", "Анализ", TxIncome, "100", 1)}
	out, err := SubstituteItem(items, uuid.New(), "Другое", decimal.MustParse("1"))
	if err != nil {
		t.Fatalf("missing id is a no-op, got error %v", err)
	}
	if !reflect.DeepEqual(out, items) {
		t.Fatalf("missing id must return the input unchanged")
	}
}

func TestSubstituteItem_EmptyName(t *testing.T) {
	items := []LineItem{item(1, "Repair A", "Разборка", "Анализ", TxIncome, "100", 1)}
	if _, err := SubstituteItem(items, items[0].ID, "", decimal.MustParse("1")); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty name, got %v", err)
	}
}
