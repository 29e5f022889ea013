package form

import (
	"strings"
	"testing"
)

func valid() Poster {
	return Poster{ShopName: "Cafe Luna", UPIID: "cafeluna@upi"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Poster)
		wantErr string
	}{
		{"minimal", func(p *Poster) {}, ""},
		{"all fields", func(p *Poster) {
			p.Tagline = "Best coffee in town"
			p.PrimaryColor = "#646CFF"
			p.TextColor = "#000000"
			p.Instagram = "@cafeluna"
			p.Website = "cafeluna.in"
			p.Format = "png"
		}, ""},
		{"missing shop", func(p *Poster) { p.ShopName = "" }, "shop_name is required"},
		{"blank shop", func(p *Poster) { p.ShopName = "   " }, "shop_name is required"},
		{"ampersand in shop", func(p *Poster) { p.ShopName = "A&pn=X" }, "shop_name must not contain"},
		{"long shop", func(p *Poster) { p.ShopName = strings.Repeat("a", 51) }, "shop_name must be at most 50"},
		{"upi without at", func(p *Poster) { p.UPIID = "cafeluna" }, "Invalid UPI ID"},
		{"upi with space", func(p *Poster) { p.UPIID = "cafe luna@upi" }, "Invalid UPI ID"},
		{"long tagline", func(p *Poster) { p.Tagline = strings.Repeat("t", 101) }, "tagline must be at most 100"},
		{"long handle", func(p *Poster) { p.Instagram = strings.Repeat("h", 31) }, "instagram must be at most 30"},
		{"query in handle", func(p *Poster) { p.Instagram = "cafe?x" }, "instagram must not contain"},
		{"long website", func(p *Poster) { p.Website = strings.Repeat("w", 101) }, "website must be at most 100"},
		{"named color", func(p *Poster) { p.PrimaryColor = "blue" }, "primary_color must be a hex color"},
		{"short hex", func(p *Poster) { p.TextColor = "#000" }, "text_color must be a hex color"},
		{"bad format", func(p *Poster) { p.Format = "svg" }, "format must be one of"},
	}
	for _, tt := range tests {
		p := valid()
		tt.mutate(&p)
		err := Validate(&p)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: Validate() = %v, want error containing %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateTrims(t *testing.T) {
	p := Poster{ShopName: "  Cafe Luna ", UPIID: " cafeluna@upi\n", Website: " cafeluna.in "}
	if err := Validate(&p); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if p.ShopName != "Cafe Luna" || p.UPIID != "cafeluna@upi" || p.Website != "cafeluna.in" {
		t.Errorf("fields not trimmed: %+v", p)
	}
}

func TestValidUPIID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"cafeluna@upi", true},
		{"cafe.luna-1_x@ok.axis", true},
		{" cafeluna@upi ", true},
		{"a@", false},
		{"@upi", false},
		{"cafeluna", false},
		{"cafe&luna@upi", false},
		{"cafe@luna@upi", false},
	}
	for _, tt := range tests {
		if got := ValidUPIID(tt.in); got != tt.want {
			t.Errorf("ValidUPIID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLinkSafe(t *testing.T) {
	for _, s := range []string{"a&b", "a?b", "a#b", "a=b"} {
		if LinkSafe(s) {
			t.Errorf("LinkSafe(%q) = true", s)
		}
	}
	if !LinkSafe("Cafe Luna's") {
		t.Error("LinkSafe rejected a plain name")
	}
}
