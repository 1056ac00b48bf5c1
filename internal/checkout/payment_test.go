package checkout

import (
	"testing"
	"time"

	"github.com/geocart/geocart-backend/pkg/enums"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
)

var checkoutNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map got %T", typed.Details())
	}
	fields, ok := details["fields"].(map[string]string)
	if !ok {
		t.Fatalf("expected fields map got %T", details["fields"])
	}
	return fields
}

func TestValidatePaymentCard(t *testing.T) {
	tests := []struct {
		name      string
		card      CardInput
		wantField string
	}{
		{"valid", CardInput{Number: "4111 1111 1111 1111", Expiry: "04/26", CVV: "123"}, ""},
		{"valid four digit cvv", CardInput{Number: "4111111111111111", Expiry: "12/30", CVV: "1234"}, ""},
		{"short number", CardInput{Number: "4111 1111", Expiry: "04/26", CVV: "123"}, "number"},
		{"thirteen digits", CardInput{Number: "1234567812345", Expiry: "04/26", CVV: "123"}, "number"},
		{"fifteen digits", CardInput{Number: "4111 1111 1111 111", Expiry: "04/26", CVV: "123"}, "number"},
		{"seventeen digits", CardInput{Number: "41111111111111111", Expiry: "04/26", CVV: "123"}, "number"},
		{"letters in number", CardInput{Number: "4111x1111111111x", Expiry: "04/26", CVV: "123"}, "number"},
		{"bad expiry format", CardInput{Number: "4111111111111111", Expiry: "2026-04", CVV: "123"}, "expiry"},
		{"expired card", CardInput{Number: "4111111111111111", Expiry: "01/26", CVV: "123"}, "expiry"},
		{"current month rejected", CardInput{Number: "4111111111111111", Expiry: "03/26", CVV: "123"}, "expiry"},
		{"bad cvv", CardInput{Number: "4111111111111111", Expiry: "04/26", CVV: "12"}, "cvv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := tt.card
			err := ValidatePayment(PaymentDetails{Method: enums.PaymentMethodCard, Card: &card}, checkoutNow)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid card got %v", err)
				}
				return
			}
			fields := fieldErrors(t, err)
			if _, ok := fields[tt.wantField]; !ok {
				t.Fatalf("expected error on %q got %+v", tt.wantField, fields)
			}
		})
	}
}

func TestValidatePaymentCardCollectsAllFieldErrors(t *testing.T) {
	err := ValidatePayment(PaymentDetails{
		Method: enums.PaymentMethodCard,
		Card:   &CardInput{Number: "42", Expiry: "bad", CVV: "x"},
	}, checkoutNow)

	fields := fieldErrors(t, err)
	for _, field := range []string{"number", "expiry", "cvv"} {
		if _, ok := fields[field]; !ok {
			t.Fatalf("expected error on %q got %+v", field, fields)
		}
	}
}

func TestValidatePaymentUPI(t *testing.T) {
	tests := []struct {
		name  string
		vpa   string
		valid bool
	}{
		{"valid", "priya.sharma@okbank", true},
		{"valid with digits", "user_01-a@upi", true},
		{"short localpart", "a@okbank", false},
		{"digits in handle", "priya@ok123", false},
		{"missing handle", "priya@", false},
		{"missing at", "priyaokbank", false},
		{"space in localpart", "priya sharma@okbank", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayment(PaymentDetails{Method: enums.PaymentMethodUPI, UPI: &UPIInput{VPA: tt.vpa}}, checkoutNow)
			if tt.valid && err != nil {
				t.Fatalf("expected valid vpa got %v", err)
			}
			if !tt.valid && err == nil {
				t.Fatalf("expected invalid vpa %q to fail", tt.vpa)
			}
		})
	}
}

func TestValidatePaymentCODNeedsNothing(t *testing.T) {
	if err := ValidatePayment(PaymentDetails{Method: enums.PaymentMethodCOD}, checkoutNow); err != nil {
		t.Fatalf("expected cod to validate got %v", err)
	}
}

func TestValidatePaymentMissingMethodDetails(t *testing.T) {
	err := ValidatePayment(PaymentDetails{Method: enums.PaymentMethodCard}, checkoutNow)
	fields := fieldErrors(t, err)
	if _, ok := fields["card"]; !ok {
		t.Fatalf("expected card-required error got %+v", fields)
	}

	err = ValidatePayment(PaymentDetails{Method: enums.PaymentMethodUPI}, checkoutNow)
	fields = fieldErrors(t, err)
	if _, ok := fields["upi"]; !ok {
		t.Fatalf("expected upi-required error got %+v", fields)
	}
}
