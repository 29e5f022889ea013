package components

// FieldSpec describes one input of the poster form.
type FieldSpec struct {
	Name        string
	Label       string
	Type        string // text, color, file, select
	Placeholder string
	Value       string
	MaxLength   int
	Required    bool
	Accept      string
	Options     []string
	Class       string
}

// Variant selects the toast color scheme.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// ToastProps configures a toast notification.
type ToastProps struct {
	Title       string
	Description string
	Variant     Variant
	Duration    int // milliseconds, 0 keeps it open
	Dismissible bool
	Class       string
}
