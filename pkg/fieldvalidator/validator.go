// Package fieldvalidator normalizes and validates customer profile field values.
//
// Validators are registered per field key. Keys without a registered validator
// pass through unchanged, so new profile fields need no code here.
package fieldvalidator

import (
	"strings"
	"sync"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
)

// Result is the outcome of validating one raw value.
type Result struct {
	Valid bool
	Value interface{}
	Error string
}

// Err converts an invalid result into a ValidationError for fieldKey.
func (r Result) Err(fieldKey string) error {
	if r.Valid {
		return nil
	}
	return apperror.Validation("%s: %s", fieldKey, r.Error)
}

// Func validates a non-empty raw value.
type Func func(raw interface{}) Result

// Registry maps field keys to validators.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Func)}
}

// NewDefaultRegistry returns a registry with the contact field validators installed.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, key := range entity.PhoneFieldKeys {
		r.Register(key, ValidatePhoneNumber)
	}
	for _, key := range entity.EmailFieldKeys {
		r.Register(key, ValidateEmail)
	}
	return r
}

func (r *Registry) Register(fieldKey string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[fieldKey] = fn
}

// Validate runs the validator registered for fieldKey. Null and empty input is
// always valid and normalizes to nil.
func (r *Registry) Validate(fieldKey string, raw interface{}) Result {
	if isEmpty(raw) {
		return Result{Valid: true, Value: nil}
	}

	r.mu.RLock()
	fn, ok := r.validators[fieldKey]
	r.mu.RUnlock()

	if !ok {
		return Result{Valid: true, Value: raw}
	}
	return fn(raw)
}

var defaultRegistry = NewDefaultRegistry()

// Validate uses the package default registry.
func Validate(fieldKey string, raw interface{}) Result {
	return defaultRegistry.Validate(fieldKey, raw)
}

func isEmpty(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case *string:
		return v == nil || strings.TrimSpace(*v) == ""
	}
	return false
}

func asString(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}
