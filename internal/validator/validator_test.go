package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorCollectsErrors(t *testing.T) {
	var v Validator
	assert.False(t, v.HasErrors())

	v.Check(true, "never recorded")
	v.Check(false, "Value is required")
	v.CheckField(false, "email", "Email is required")
	v.CheckField(false, "email", "second message is dropped")

	assert.True(t, v.HasErrors())
	assert.Equal(t, []string{"Value is required"}, v.Errors)
	assert.Equal(t, map[string]string{"email": "Email is required"}, v.FieldErrors)
}

func TestHelpers(t *testing.T) {
	assert.True(t, NotBlank(" x "))
	assert.False(t, NotBlank("   "))
	assert.True(t, IsEmail("a@b.co"))
	assert.False(t, IsEmail("a@b"))
	assert.True(t, In("IN", "IN", "PH"))
	assert.False(t, In("US", "IN", "PH"))
	assert.True(t, MinRunes("₹₹₹₹", 4))
}
