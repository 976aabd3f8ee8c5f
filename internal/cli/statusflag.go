package cli

import (
	"github.com/spf13/pflag"

	"github.com/tarea-dev/tarea/internal/models"
)

// StatusValue adapts models.Status to the pflag.Value interface so that a
// bad --status fails during flag parsing, before any command logic runs.
// An unset flag leaves the target at its zero value, which services and
// filters treat as "default" / "no filter".
type StatusValue struct {
	target *models.Status
}

// Compile-time verification that *StatusValue implements pflag.Value
var _ pflag.Value = (*StatusValue)(nil)

// NewStatusValue wraps target for registration with Flags().Var
func NewStatusValue(target *models.Status) *StatusValue {
	return &StatusValue{target: target}
}

func (v *StatusValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

// Set normalizes and validates the raw flag value
func (v *StatusValue) Set(raw string) error {
	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*v.target = status
	return nil
}

// Type names the value in help output
func (v *StatusValue) Type() string {
	return "status"
}
