package main

import (
	"strings"
	"testing"

	"github.com/cristianadrielbraun/qrposter/internal/config"
	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
)

func TestGenerateRequest(t *testing.T) {
	defaults := config.Default().Defaults
	g := generateFlags{
		shop:      "  Cafe Luna ",
		upiID:     "cafeluna@upi",
		instagram: "@cafeluna",
		website:   "cafeluna.in",
		logo:      "logo.png",
	}
	req, err := generateRequest(g, defaults)
	if err != nil {
		t.Fatalf("generateRequest() error = %v", err)
	}
	if req.ShopName != "Cafe Luna" || req.PaymentID != "cafeluna@upi" || req.Handle != "@cafeluna" || req.LogoPath != "logo.png" {
		t.Errorf("generateRequest() = %+v", req)
	}
	if req.Primary != hexcolor.MustParse(defaults.PrimaryColor) || req.Text != hexcolor.MustParse(defaults.TextColor) {
		t.Errorf("colors = %s/%s, want config defaults", req.Primary, req.Text)
	}

	g.primary = "#FF0000"
	req, err = generateRequest(g, defaults)
	if err != nil {
		t.Fatalf("generateRequest() error = %v", err)
	}
	if req.Primary != hexcolor.MustParse("#ff0000") {
		t.Errorf("primary = %s, want #ff0000", req.Primary)
	}
}

func TestGenerateRequestRejects(t *testing.T) {
	defaults := config.Default().Defaults
	tests := []struct {
		name    string
		flags   generateFlags
		wantErr string
	}{
		{"bad upi", generateFlags{shop: "Cafe Luna", upiID: "cafeluna"}, "UPI ID"},
		{"ampersand in shop", generateFlags{shop: "A&pn=X", upiID: "cafeluna@upi"}, "shop_name"},
		{"long shop", generateFlags{shop: strings.Repeat("a", 51), upiID: "cafeluna@upi"}, "shop_name"},
		{"long tagline", generateFlags{shop: "Cafe", upiID: "cafeluna@upi", tagline: strings.Repeat("t", 101)}, "tagline"},
		{"long handle", generateFlags{shop: "Cafe", upiID: "cafeluna@upi", instagram: strings.Repeat("h", 31)}, "instagram"},
		{"long website", generateFlags{shop: "Cafe", upiID: "cafeluna@upi", website: strings.Repeat("w", 101)}, "website"},
		{"named color", generateFlags{shop: "Cafe", upiID: "cafeluna@upi", primary: "blue"}, "primary_color"},
	}
	for _, tt := range tests {
		if _, err := generateRequest(tt.flags, defaults); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: generateRequest() = %v, want error mentioning %q", tt.name, err, tt.wantErr)
		}
	}
}
