package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchCriteriaDefaults(t *testing.T) {
	c := NewSearchCriteria()

	assert.Equal(t, 75, c.MinOverall)
	assert.Equal(t, 20, c.Limit)
	assert.Nil(t, c.Position)
	assert.Nil(t, c.MaxPrice)
	assert.NoError(t, c.Validate())
}

func TestSearchCriteriaValidate(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	t.Run("max overall below min overall is rejected", func(t *testing.T) {
		c := NewSearchCriteria()
		c.MinOverall = 80
		c.MaxOverall = intPtr(79)
		assert.Error(t, c.Validate())
	})

	t.Run("max overall equal to min overall is allowed", func(t *testing.T) {
		c := NewSearchCriteria()
		c.MinOverall = 80
		c.MaxOverall = intPtr(80)
		assert.NoError(t, c.Validate())
	})

	t.Run("limit outside 1..100 is rejected", func(t *testing.T) {
		c := NewSearchCriteria()
		c.Limit = 0
		assert.Error(t, c.Validate())

		c.Limit = 101
		assert.Error(t, c.Validate())

		c.Limit = 100
		assert.NoError(t, c.Validate())
	})

	t.Run("min overall outside rating range is rejected", func(t *testing.T) {
		c := NewSearchCriteria()
		c.MinOverall = 39
		assert.Error(t, c.Validate())

		c.MinOverall = 100
		assert.Error(t, c.Validate())
	})

	t.Run("inverted age range is rejected", func(t *testing.T) {
		c := NewSearchCriteria()
		c.MinAge = intPtr(30)
		c.MaxAge = intPtr(20)
		assert.Error(t, c.Validate())
	})
}
