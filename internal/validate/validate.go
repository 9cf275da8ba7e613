package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/countdown/duration.go
//   type Duration struct {
//       Minutes int `yaml:"minutes" validate:"min=0,max=59"`
//       Seconds int `yaml:"seconds" validate:"min=0,max=59"`
//   }
//
// Config loading and CLI flags share the same picker-range rules this way.

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// PickerRange is the tag for a single minutes or seconds column.
const PickerRange = "min=0,max=59"

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
