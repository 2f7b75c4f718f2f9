package omdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inceptionJSON = `{
  "Title": "Inception",
  "Released": "16 Jul 2010",
  "Plot": "A thief who steals corporate secrets through dream-sharing technology.",
  "Poster": "https://m.media-amazon.com/images/inception.jpg",
  "imdbRating": "8.8",
  "imdbID": "tt1375666",
  "Response": "True"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{
		APIKey:            "test-key",
		BaseURL:           server.URL + "/",
		RequestsPerSecond: 1000,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(client.Close)

	return client
}

func TestClient_LookupTitle(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		statusCode int
		want       *Details
		wantErr    error
	}{
		{
			name:       "found",
			response:   inceptionJSON,
			statusCode: http.StatusOK,
			want: &Details{
				Title:       "Inception",
				Overview:    "A thief who steals corporate secrets through dream-sharing technology.",
				ReleaseDate: "16 Jul 2010",
				Rating:      "8.8",
				PosterURL:   "https://m.media-amazon.com/images/inception.jpg",
				IMDbID:      "tt1375666",
			},
		},
		{
			name:       "missing fields use defaults",
			response:   `{"Title":"Obscure","Poster":"N/A","Plot":"N/A","Response":"True"}`,
			statusCode: http.StatusOK,
			want: &Details{
				Title:       "Obscure",
				Overview:    DefaultOverview,
				ReleaseDate: DefaultReleaseDate,
				Rating:      DefaultRating,
				PosterURL:   PlaceholderPoster,
			},
		},
		{
			name:       "not found",
			response:   `{"Response":"False","Error":"Movie not found!"}`,
			statusCode: http.StatusOK,
			wantErr:    ErrNotFound,
		},
		{
			name:       "invalid key",
			response:   `{"Response":"False","Error":"Invalid API key!"}`,
			statusCode: http.StatusUnauthorized,
			wantErr:    ErrUnauthorized,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    ErrRateLimited,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
				assert.Equal(t, "Inception", r.URL.Query().Get("t"))
				w.WriteHeader(tt.statusCode)
				if tt.response != "" {
					_, _ = w.Write([]byte(tt.response))
				}
			})

			got, err := client.LookupTitle(context.Background(), "Inception")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var omdbErr *Error
				require.True(t, errors.As(err, &omdbErr))
				assert.Equal(t, "lookup", omdbErr.Op)
				assert.Equal(t, "Inception", omdbErr.Title)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_MissingAPIKeySkipsRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL + "/"})
	defer client.Close()

	assert.False(t, client.Enabled())
	_, err := client.LookupTitle(context.Background(), "Inception")

	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, calls.Load())
}

func TestClient_EmptyTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.LookupTitle(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for range breakerTrip {
		_, err := client.LookupTitle(context.Background(), "Inception")
		require.ErrorIs(t, err, ErrServer)
	}

	_, err := client.LookupTitle(context.Background(), "Inception")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(breakerTrip), calls.Load())
	assert.Equal(t, "open", client.State())
}

func TestClient_NotFoundKeepsBreakerClosed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})

	for range breakerTrip * 2 {
		_, err := client.LookupTitle(context.Background(), "Nope")
		require.ErrorIs(t, err, ErrNotFound)
	}

	assert.Equal(t, "closed", client.State())
}

func TestPlaceholder(t *testing.T) {
	d := Placeholder("3 Idiots")

	assert.Equal(t, "3 Idiots", d.Title)
	assert.Equal(t, PlaceholderPoster, d.PosterURL)
	assert.Equal(t, DefaultRating, d.Rating)
}
