package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemood/cinemood-server/internal/domain"
)

func TestCatalog_MoviesReturnsCopy(t *testing.T) {
	cat := Sample()

	movies := cat.Movies()
	movies[0].Title = "changed"

	again := cat.Movies()
	assert.Equal(t, "Inception", again[0].Title)
}

func TestCatalog_Get(t *testing.T) {
	cat := Sample()

	m, ok := cat.Get(2)
	require.True(t, ok)
	assert.Equal(t, "3 Idiots", m.Title)

	_, ok = cat.Get(99)
	assert.False(t, ok)
}

func TestSample(t *testing.T) {
	cat := Sample()

	assert.Equal(t, 4, cat.Len())
	counts := cat.CountBy()
	assert.Equal(t, 2, counts[domain.IndustryGeneral])
	assert.Equal(t, 2, counts[domain.IndustryRegional])
}

func TestNew_FreshBuildIDs(t *testing.T) {
	assert.NotEqual(t, Sample().BuildID(), Sample().BuildID())
}
