package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, validatePhone(""))
	assert.NoError(t, validatePhone("9876543210"))

	assert.Error(t, validatePhone("98765"))
	assert.Error(t, validatePhone("98765432100"))
	assert.Error(t, validatePhone("98765abc10"))
	assert.Error(t, validatePhone("+919876543"))
}
