package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/internal/eventmanager/catalog"
)

func TestVenues(t *testing.T) {
	venues, err := catalog.Venues()
	require.NoError(t, err)
	require.NotEmpty(t, venues)

	seen := map[string]bool{}
	for _, v := range venues {
		assert.NotEmpty(t, v.ID)
		assert.NotEmpty(t, v.Name)
		assert.Positive(t, v.Capacity)
		assert.False(t, seen[v.ID], "venue ids must be unique")
		seen[v.ID] = true
	}
}
