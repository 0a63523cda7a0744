package order

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOrderUnmarshal_EmbeddedShapes(t *testing.T) {
	body := `{
		"id": 12,
		"usuario": {"id": 5, "nombre": "Ana", "apellido": "Reyes"},
		"metodoPago": {"id": 2, "nombrePago": "Tarjeta"},
		"estadoPedido": "PENDIENTE",
		"direccionEnvio": "Calle 1",
		"totalPedido": "2500",
		"fechaPedido": "2026-03-01T10:00:00"
	}`
	var o Order
	if err := json.Unmarshal([]byte(body), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.UserID != 5 {
		t.Fatalf("user id = %d, want embedded owner id", o.UserID)
	}
	if o.PaymentMethodID != 2 {
		t.Fatalf("payment method id = %d", o.PaymentMethodID)
	}
	if o.Total != "2500" {
		t.Fatalf("total = %q", o.Total)
	}
	if o.CustomerName() != "Ana Reyes" {
		t.Fatalf("customer name = %q", o.CustomerName())
	}
}

func TestOrderUnmarshal_FlatShapes(t *testing.T) {
	body := `{
		"id": 13,
		"usuarioId": 8,
		"metodoPagoId": 1,
		"estadoPedido": "ENVIADO",
		"direccionEnvio": "Calle 2",
		"totalPedido": 1999.5,
		"fechaCreacion": "2026-03-02 09:30:00"
	}`
	var o Order
	if err := json.Unmarshal([]byte(body), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.UserID != 8 {
		t.Fatalf("user id = %d", o.UserID)
	}
	if o.Total != "1999.5" {
		t.Fatalf("numeric total should become decimal string, got %q", o.Total)
	}
	if o.PlacedAt != "2026-03-02 09:30:00" {
		t.Fatalf("fechaCreacion should fill PlacedAt, got %q", o.PlacedAt)
	}
	if o.CustomerName() != "N/A" {
		t.Fatalf("customer name = %q, want N/A", o.CustomerName())
	}
}

func TestTotalAmount(t *testing.T) {
	if got := (Order{Total: "2500"}).TotalAmount(); got != 2500 {
		t.Fatalf("amount = %v", got)
	}
	if got := (Order{Total: "garbage"}).TotalAmount(); got != 0 {
		t.Fatalf("unparseable total counts as zero, got %v", got)
	}
	if got := (Order{}).TotalAmount(); got != 0 {
		t.Fatalf("empty total counts as zero, got %v", got)
	}
}

func TestPlacedTime(t *testing.T) {
	o := Order{PlacedAt: "2026-03-01T10:00:00"}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if got := o.PlacedTime(); !got.Equal(want) {
		t.Fatalf("placed time = %v", got)
	}
	if !(Order{PlacedAt: "not a date"}).PlacedTime().IsZero() {
		t.Fatal("unparseable timestamp should be zero time")
	}
}

func TestFormatTotal(t *testing.T) {
	cases := map[float64]string{
		2500:    "2500",
		1999.5:  "1999.5",
		0.1:     "0.1",
		1234.56: "1234.56",
	}
	for in, want := range cases {
		if got := FormatTotal(in); got != want {
			t.Fatalf("FormatTotal(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestOrderMarshal_RoundTripsTotalAsString(t *testing.T) {
	o := Order{ID: 1, UserID: 5, Status: StatusPending, Total: "2500"}
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if string(raw["totalPedido"]) != `"2500"` {
		t.Fatalf("totalPedido on the wire = %s, want JSON string", raw["totalPedido"])
	}
}
