package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
)

type addItemPayload struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type productPayload struct {
	Name    string `json:"name" validate:"required"`
	Measure string `json:"measure" validate:"required,measure"`
	Email   string `json:"email" validate:"omitempty,email"`
}

func decode(t *testing.T, payload interface{}, into interface{}) error {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest("POST", "/test", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return DecodeAndValidate(req, into)
}

func TestDecodeAndValidateRejectsNonPositiveQuantity(t *testing.T) {
	tests := []struct {
		name    string
		payload addItemPayload
		wantOK  bool
	}{
		{"valid item", addItemPayload{ProductID: 101, Quantity: 3}, true},
		{"zero quantity", addItemPayload{ProductID: 101, Quantity: 0}, false},
		{"negative quantity", addItemPayload{ProductID: 101, Quantity: -2}, false},
		{"missing product", addItemPayload{Quantity: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var into addItemPayload
			err := decode(t, tt.payload, &into)
			if tt.wantOK && err != nil {
				t.Errorf("expected valid payload, got %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("expected validation error, got none")
			}
		})
	}
}

func TestMeasureTagAcceptsBreweryUnits(t *testing.T) {
	tests := []struct {
		measure string
		wantOK  bool
	}{
		{"500 ml", true},
		{"330 g", true},
		{"1 ml", true},
		{"500ml", false},
		{"ml 500", false},
		{"500 kg", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.measure, func(t *testing.T) {
			var into productPayload
			err := decode(t, productPayload{Name: "Cerveza", Measure: tt.measure}, &into)
			if tt.wantOK && err != nil {
				t.Errorf("measure %q should be valid, got %v", tt.measure, err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("measure %q should be rejected", tt.measure)
			}
		})
	}
}

func TestFormatValidationErrorsNamesTheField(t *testing.T) {
	var into productPayload
	err := decode(t, productPayload{Measure: "500 ml", Email: "not-an-email"}, &into)
	if err == nil {
		t.Fatal("expected validation error")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) == 0 {
		t.Fatal("expected formatted validation errors")
	}

	fields := make(map[string]bool)
	for _, fe := range formatted {
		fields[fe.Field] = true
	}

	if !fields["Name"] {
		t.Error("missing required Name error")
	}
	if !fields["Email"] {
		t.Error("missing Email format error")
	}
}
