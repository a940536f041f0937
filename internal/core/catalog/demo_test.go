package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCatalog(t *testing.T) {
	cat, err := Demo()
	require.NoError(t, err)

	assert.NotEmpty(t, cat.Rows())
	assert.Greater(t, cat.Len(), 10)

	// Every row reference resolves.
	assert.Empty(t, cat.Unresolved())

	// A hero is always available for the banner.
	hero, ok := cat.Hero()
	require.True(t, ok)
	assert.True(t, hero.Hero)

	// Something to resume, for the progress badge path.
	var inProgress int
	for _, r := range cat.Records() {
		if r.InProgress() {
			inProgress++
		}
	}
	assert.Greater(t, inProgress, 0)
}
