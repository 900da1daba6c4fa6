package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGroupSlug(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateGroupSlug("cats"))
	assert.NoError(t, ValidateGroupSlug("x"))
	assert.NoError(t, ValidateGroupSlug("russian-literature-19"))
	assert.Error(t, ValidateGroupSlug(""))
	assert.Error(t, ValidateGroupSlug("Cats"))
	assert.Error(t, ValidateGroupSlug("-cats"))
	assert.Error(t, ValidateGroupSlug("cats-"))
	assert.Error(t, ValidateGroupSlug("cats_dogs"))
	assert.Error(t, ValidateGroupSlug(strings.Repeat("a", 51)))
}

func TestValidateGroupTitle(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateGroupTitle("Cats"))
	assert.Error(t, ValidateGroupTitle("   "))
	assert.Error(t, ValidateGroupTitle(strings.Repeat("я", 201)))
}
