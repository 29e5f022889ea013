// Package upi builds the UPI deep link that payment apps read from the
// poster's QR code.
//
// Example output:
//
//	upi://pay?pa=cafeluna@upi&pn=Cafe%20Luna
package upi

import (
	"fmt"
	"strings"
)

const scheme = "upi://pay?"

// PaymentParams holds the fields encoded into the payment link.
type PaymentParams struct {
	// PaymentID is the payee VPA, e.g. "cafeluna@upi" (pa).
	PaymentID string
	// PayeeName is the shop name shown by the payer's app (pn).
	PayeeName string
}

// BuildPayload returns upi://pay?pa=<paymentID>&pn=<shopName>. Only spaces in
// the shop name are percent-encoded; other reserved characters must be
// rejected before this point.
func BuildPayload(paymentID, shopName string) string {
	return scheme + "pa=" + paymentID + "&pn=" + strings.ReplaceAll(shopName, " ", "%20")
}

// ParsePayload parses a link produced by BuildPayload. Useful for tests and
// for checking what a decoded QR carries.
func ParsePayload(payload string) (*PaymentParams, error) {
	if !strings.HasPrefix(payload, scheme) {
		return nil, fmt.Errorf("invalid UPI payload header")
	}

	params := &PaymentParams{}
	for _, part := range strings.Split(strings.TrimPrefix(payload, scheme), "&") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch key {
		case "pa":
			params.PaymentID = value
		case "pn":
			params.PayeeName = strings.ReplaceAll(value, "%20", " ")
		}
	}

	if params.PaymentID == "" {
		return nil, fmt.Errorf("UPI payload has no payee address")
	}
	return params, nil
}
