package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{"", ScopeAll, false},
		{"All", ScopeAll, false},
		{"general", ScopeGeneral, false},
		{"Hollywood", ScopeGeneral, false},
		{"regional", ScopeRegional, false},
		{" BOLLYWOOD ", ScopeRegional, false},
		{"tollywood", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScope(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScope_Includes(t *testing.T) {
	assert.True(t, ScopeAll.Includes(IndustryGeneral))
	assert.True(t, ScopeAll.Includes(IndustryRegional))
	assert.True(t, ScopeGeneral.Includes(IndustryGeneral))
	assert.False(t, ScopeGeneral.Includes(IndustryRegional))
	assert.True(t, ScopeRegional.Includes(IndustryRegional))
	assert.False(t, ScopeRegional.Includes(IndustryGeneral))
}

func TestFilterScope_PreservesOrderAndInput(t *testing.T) {
	movies := []Movie{
		{ID: 0, Title: "A", Industry: IndustryGeneral},
		{ID: 1, Title: "B", Industry: IndustryRegional},
		{ID: 2, Title: "C", Industry: IndustryGeneral},
	}

	got := FilterScope(movies, ScopeGeneral)

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.Len(t, movies, 3)
	assert.Equal(t, "B", movies[1].Title)
}

func TestMovie_GenreList(t *testing.T) {
	m := Movie{Genres: "Action|Sci-Fi||Thriller"}
	assert.Equal(t, []string{"Action", "Sci-Fi", "Thriller"}, m.GenreList())

	empty := Movie{}
	assert.Nil(t, empty.GenreList())
}
