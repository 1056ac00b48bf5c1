package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func price(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	c := New()
	id := uuid.New()

	c.AddItem(id, "Chai", price("12.50"), "https://cdn.example.com/chai.png")
	c.AddItem(id, "Chai", price("12.50"), "https://cdn.example.com/chai.png")

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 got %d", c.Items[0].Quantity)
	}
	if c.TotalItems() != 2 {
		t.Fatalf("expected 2 total items got %d", c.TotalItems())
	}
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	c := New()
	first, second, third := uuid.New(), uuid.New(), uuid.New()

	c.AddItem(first, "A", price("1.00"), "")
	c.AddItem(second, "B", price("2.00"), "")
	c.AddItem(third, "C", price("3.00"), "")
	c.AddItem(second, "B", price("2.00"), "")

	if c.Items[0].ProductID != first || c.Items[1].ProductID != second || c.Items[2].ProductID != third {
		t.Fatal("expected lines in insertion order")
	}
}

func TestUpdateQuantitySetsAndRemoves(t *testing.T) {
	c := New()
	id := uuid.New()
	c.AddItem(id, "Chai", price("12.50"), "")

	c.UpdateQuantity(id, 5)
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5 got %d", c.Items[0].Quantity)
	}

	c.UpdateQuantity(id, 0)
	if !c.IsEmpty() {
		t.Fatal("expected zero quantity to remove the line")
	}
}

func TestUpdateQuantityNegativeRemoves(t *testing.T) {
	c := New()
	id := uuid.New()
	c.AddItem(id, "Chai", price("12.50"), "")

	c.UpdateQuantity(id, -3)
	if !c.IsEmpty() {
		t.Fatal("expected negative quantity to remove the line")
	}
}

func TestUpdateQuantityUnknownProductIsNoOp(t *testing.T) {
	c := New()
	id := uuid.New()
	c.AddItem(id, "Chai", price("12.50"), "")

	c.UpdateQuantity(uuid.New(), 7)
	if len(c.Items) != 1 || c.Items[0].Quantity != 1 {
		t.Fatalf("expected cart unchanged got %+v", c.Items)
	}
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(uuid.New(), "Chai", price("12.50"), "")

	c.RemoveItem(uuid.New())
	if len(c.Items) != 1 {
		t.Fatalf("expected cart unchanged got %d lines", len(c.Items))
	}
}

func TestTotalPriceExactDecimalSum(t *testing.T) {
	c := New()
	c.AddItem(uuid.New(), "A", price("0.10"), "")
	c.UpdateQuantity(c.Items[0].ProductID, 3)
	c.AddItem(uuid.New(), "B", price("0.20"), "")

	// 0.10*3 + 0.20 == 0.50 exactly; float accumulation would drift.
	if !c.TotalPrice().Equal(price("0.50")) {
		t.Fatalf("expected exact 0.50 got %s", c.TotalPrice())
	}
}

func TestSetStoreSwitchDropsItems(t *testing.T) {
	c := New()
	storeA, storeB := uuid.New(), uuid.New()

	c.SetStore(storeA, "Store A")
	c.AddItem(uuid.New(), "A", price("1.00"), "")

	c.SetStore(storeA, "Store A Renamed")
	if len(c.Items) != 1 {
		t.Fatal("reselecting the same store must keep items")
	}

	c.SetStore(storeB, "Store B")
	if !c.IsEmpty() {
		t.Fatal("switching stores must drop items")
	}
	if c.StoreName != "Store B" {
		t.Fatalf("expected store name updated got %q", c.StoreName)
	}
}

func TestToDTORoundsAtBoundary(t *testing.T) {
	c := New()
	id := uuid.New()
	c.AddItem(id, "Thirds", price("0.333"), "")
	c.UpdateQuantity(id, 3)

	dto := ToDTO(c)
	if dto.TotalPrice != "1.00" {
		t.Fatalf("expected rounded total 1.00 got %s", dto.TotalPrice)
	}
	if dto.Items[0].Price != "0.33" {
		t.Fatalf("expected rounded unit price 0.33 got %s", dto.Items[0].Price)
	}
	if dto.Items[0].LineTotal != "1.00" {
		t.Fatalf("expected rounded line total 1.00 got %s", dto.Items[0].LineTotal)
	}
	if dto.TotalItems != 3 {
		t.Fatalf("expected 3 total items got %d", dto.TotalItems)
	}
}
