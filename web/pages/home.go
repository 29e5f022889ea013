package pages

import (
	"fmt"

	"github.com/cristianadrielbraun/qrposter/web/components"
)

// HomeProps carries the server-side defaults shown in the form.
type HomeProps struct {
	PrimaryColor string
	TextColor    string
	MaxLogoBytes int64
}

func formFields(p HomeProps) []components.FieldSpec {
	return []components.FieldSpec{
		{Name: "shop_name", Label: "Shop name", Placeholder: "Cafe Luna", MaxLength: 50, Required: true},
		{Name: "upi_id", Label: "UPI ID", Placeholder: "cafeluna@upi", MaxLength: 50, Required: true},
		{Name: "tagline", Label: "Tagline", Placeholder: "Fresh coffee, every day", MaxLength: 100},
		{Name: "primary_color", Label: "Brand color", Type: "color", Value: p.PrimaryColor},
		{Name: "text_color", Label: "Text color", Type: "color", Value: p.TextColor},
		{Name: "instagram", Label: "Instagram handle", Placeholder: "cafeluna", MaxLength: 30},
		{Name: "website", Label: "Website", Placeholder: "cafeluna.in", MaxLength: 100},
		{Name: "logo", Label: fmt.Sprintf("Logo (PNG, JPEG, WebP or SVG, max %d KB)", p.MaxLogoBytes>>10), Type: "file", Accept: "image/png,image/jpeg,image/webp,image/svg+xml"},
		{Name: "format", Label: "Output", Type: "select", Options: []string{"pdf", "png"}, Value: "pdf"},
	}
}
