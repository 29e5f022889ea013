package poster

import "fmt"

// Pipeline stages reported in GenerationError.
const (
	StageEncode = "encode"
	StageVerify = "verify"
	StageLogo   = "logo"
	StageStyle  = "style"
	StageLayout = "layout"
)

// GenerationError wraps the failure of one pipeline stage. The cause is
// reachable with errors.As, e.g. *qrmatrix.EncodingError or
// *styling.DecodeError.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("poster generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	return &GenerationError{Stage: stage, Err: err}
}
