package fieldvalidator

import (
	"testing"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
		valid bool
	}{
		{"bare ten digits", "9876543210", "+91 98765 43210", true},
		{"country code", "+91 98765 43210", "+91 98765 43210", true},
		{"country code without plus", "919876543210", "+91 98765 43210", true},
		{"trunk prefix", "09876543210", "+91 98765 43210", true},
		{"international trunk prefix", "0919876543210", "+91 98765 43210", true},
		{"dashes and parens", "(987) 654-3210", "+91 98765 43210", true},
		{"too short", "12345", "", false},
		{"bad leading digit", "5876543210", "", false},
		{"letters", "98765abcde", "", false},
		{"not a string", 9876543210, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePhoneNumber(tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, res.Value)
				assert.Empty(t, res.Error)
			} else {
				assert.NotEmpty(t, res.Error)
			}
		})
	}
}

func TestValidatePhoneNumber_Idempotent(t *testing.T) {
	first := ValidatePhoneNumber("98765-43210")
	require.True(t, first.Valid)

	second := ValidatePhoneNumber(first.Value)
	require.True(t, second.Valid)
	assert.Equal(t, first.Value, second.Value)
}

func TestValidateEmail(t *testing.T) {
	res := ValidateEmail("  Asha.Verma@Example.COM ")
	require.True(t, res.Valid)
	assert.Equal(t, "asha.verma@example.com", res.Value)

	again := ValidateEmail(res.Value)
	assert.Equal(t, res.Value, again.Value)

	assert.True(t, ValidateEmail("asha@mail.example.co.in").Valid)

	for _, bad := range []interface{}{"asha@", "no-at-sign.com", "a b@c.d", "a@b.c.", "a@b..c", "a@.b.c", 42} {
		assert.False(t, ValidateEmail(bad).Valid, "%v", bad)
	}
}

func TestRegistry_EmptyAndUnregistered(t *testing.T) {
	r := NewDefaultRegistry()

	for _, empty := range []interface{}{nil, "", "   "} {
		res := r.Validate(entity.FieldPrimaryMobile, empty)
		assert.True(t, res.Valid)
		assert.Nil(t, res.Value)
	}

	res := r.Validate(entity.FieldOccupation, "Architect")
	assert.True(t, res.Valid)
	assert.Equal(t, "Architect", res.Value)

	res = r.Validate("customField", 12)
	assert.True(t, res.Valid)
	assert.Equal(t, 12, res.Value)
}

func TestRegistry_CoversContactKeys(t *testing.T) {
	for _, key := range entity.PhoneFieldKeys {
		assert.Equal(t, "+91 98765 43210", Validate(key, "9876543210").Value, key)
	}
	for _, key := range entity.EmailFieldKeys {
		assert.False(t, Validate(key, "nope").Valid, key)
	}
}

func TestResult_Err(t *testing.T) {
	assert.NoError(t, Result{Valid: true}.Err(entity.FieldEmailPrimary))

	err := ValidateEmail("broken").Err(entity.FieldEmailPrimary)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, apperror.Message(err), entity.FieldEmailPrimary)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("pan", func(raw interface{}) Result {
		return Result{Valid: false, Error: "bad pan"}
	})

	res := r.Validate("pan", "ABCDE1234F")
	assert.False(t, res.Valid)
	assert.Equal(t, "bad pan", res.Error)
}
