// Package form holds the merchant input shared by the HTTP form and the
// generate command, with the validation rules both must apply before a
// poster.Request is built.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
)

// LinkReserved are the characters that would break out of the pn= parameter.
const LinkReserved = "&?#="

// payment address: handle@provider
var upiIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+$`)

var (
	standalone     *validator.Validate
	standaloneOnce sync.Once
)

// Poster is the merchant input. The binding tags are read by gin when the
// HTTP form is bound and by Validate everywhere else.
type Poster struct {
	ShopName     string `form:"shop_name" binding:"required,notblank,max=50,linksafe"`
	UPIID        string `form:"upi_id" binding:"required,min=3,max=50,upiid"`
	Tagline      string `form:"tagline" binding:"max=100"`
	PrimaryColor string `form:"primary_color" binding:"omitempty,hexrgb"`
	TextColor    string `form:"text_color" binding:"omitempty,hexrgb"`
	Instagram    string `form:"instagram" binding:"max=30,linksafe"`
	Website      string `form:"website" binding:"max=100"`
	Format       string `form:"format" binding:"omitempty,oneof=pdf png"`
}

// Trim strips surrounding whitespace from every field.
func (p *Poster) Trim() {
	for _, s := range []*string{&p.ShopName, &p.UPIID, &p.Tagline, &p.PrimaryColor, &p.TextColor, &p.Instagram, &p.Website, &p.Format} {
		*s = strings.TrimSpace(*s)
	}
}

// ValidUPIID reports whether s looks like name@bank.
func ValidUPIID(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 3 && upiIDPattern.MatchString(s)
}

// LinkSafe reports whether s can be embedded in the payment link as is.
func LinkSafe(s string) bool {
	return !strings.ContainsAny(s, LinkReserved)
}

// Register adds the custom tags to v and makes error messages use form
// names.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := strings.Split(f.Tag.Get("form"), ",")[0]; name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	v.RegisterValidation("hexrgb", func(fl validator.FieldLevel) bool {
		return hexcolor.Valid(fl.Field().String())
	})
	v.RegisterValidation("upiid", func(fl validator.FieldLevel) bool {
		return ValidUPIID(fl.Field().String())
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("linksafe", func(fl validator.FieldLevel) bool {
		return LinkSafe(fl.Field().String())
	})
}

// Validate trims p and checks it against the same rules the HTTP form
// enforces. The error message is Describe's.
func Validate(p *Poster) error {
	standaloneOnce.Do(func() {
		standalone = validator.New()
		standalone.SetTagName("binding")
		Register(standalone)
	})
	p.Trim()
	if err := standalone.Struct(p); err != nil {
		return errors.New(Describe(err))
	}
	return nil
}

// Describe turns validation errors into one readable sentence.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "hexrgb":
		return fmt.Sprintf("%s must be a hex color like #646cff", fe.Field())
	case "upiid":
		return "Invalid UPI ID: must look like name@bank"
	case "linksafe":
		return fmt.Sprintf("%s must not contain any of %s", fe.Field(), LinkReserved)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
