// Package train resolves the training mode and launches the external
// trainer. The trainer itself is an opaque collaborator; this package
// only validates input and constructs its argument list.
package train

import "fmt"

// Modes recognized by Resolve.
const (
	ModePublic  = "public"
	ModePrivate = "private"
)

// Params is the downstream parameter set derived from a mode.
type Params struct {
	DetFile string // detection file class, without extension
	RunID   string
}

// ValidationError reports an unrecognized mode value.
type ValidationError struct {
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid mode %q: must be %q or %q", e.Value, ModePublic, ModePrivate)
}

// Resolve maps a mode to its fixed parameter pair. It is pure: no side
// effects, and an unknown mode yields a ValidationError naming the value.
func Resolve(mode string) (Params, error) {
	switch mode {
	case ModePublic:
		return Params{DetFile: "aplift", RunID: "mot20_public_train"}, nil
	case ModePrivate:
		return Params{DetFile: "byte065", RunID: "mot20_private_train"}, nil
	default:
		return Params{}, &ValidationError{Value: mode}
	}
}
