package checkout

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/geocart/geocart-backend/pkg/enums"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
)

// CardInput carries raw card fields as submitted.
type CardInput struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// UPIInput carries the virtual payment address as submitted.
type UPIInput struct {
	VPA string `json:"vpa"`
}

// PaymentDetails bundles the method with its method-specific fields.
type PaymentDetails struct {
	Method enums.PaymentMethod
	Card   *CardInput
	UPI    *UPIInput
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cardCVVPattern    = regexp.MustCompile(`^\d{3,4}$`)
	upiPattern        = regexp.MustCompile(`^[A-Za-z0-9._-]{2,256}@[A-Za-z]{2,64}$`)
)

// ValidatePayment checks the method-specific fields and returns a
// VALIDATION error carrying one message per failed field. Submission
// must be blocked when any field fails.
func ValidatePayment(details PaymentDetails, now time.Time) error {
	if !details.Method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method").
			WithDetails(map[string]any{"field": "paymentMethod"})
	}

	fields := map[string]string{}
	switch details.Method {
	case enums.PaymentMethodCard:
		validateCard(details.Card, now, fields)
	case enums.PaymentMethodUPI:
		validateUPI(details.UPI, fields)
	case enums.PaymentMethodCOD:
		// Cash on delivery carries no extra fields.
	}

	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment details invalid").
			WithDetails(map[string]any{"fields": fields})
	}
	return nil
}

func validateCard(card *CardInput, now time.Time, fields map[string]string) {
	if card == nil {
		fields["card"] = "card details are required"
		return
	}

	number := strings.ReplaceAll(card.Number, " ", "")
	if !cardNumberPattern.MatchString(number) {
		fields["number"] = "card number must be 16 digits"
	}

	if match := cardExpiryPattern.FindStringSubmatch(strings.TrimSpace(card.Expiry)); match == nil {
		fields["expiry"] = "expiry must be in MM/YY format"
	} else if !expiryInFuture(match[1], match[2], now) {
		fields["expiry"] = "card has expired"
	}

	if !cardCVVPattern.MatchString(strings.TrimSpace(card.CVV)) {
		fields["cvv"] = "cvv must be 3 or 4 digits"
	}
}

func validateUPI(upi *UPIInput, fields map[string]string) {
	if upi == nil {
		fields["upi"] = "upi details are required"
		return
	}
	if !upiPattern.MatchString(strings.TrimSpace(upi.VPA)) {
		fields["vpa"] = "upi id must look like name@bank"
	}
}

// expiryInFuture reports whether MM/YY names a month strictly after the
// current one. A card expiring this month is rejected.
func expiryInFuture(month, year string, now time.Time) bool {
	var m, y int
	if _, err := fmt.Sscanf(month, "%d", &m); err != nil {
		return false
	}
	if _, err := fmt.Sscanf(year, "%d", &y); err != nil {
		return false
	}
	y += 2000

	if y != now.Year() {
		return y > now.Year()
	}
	return m > int(now.Month())
}
