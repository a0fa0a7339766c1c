package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fakhrymubarak/korean-weather/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailable(t *testing.T) {
	p := Unavailable()
	assert.False(t, p.Available())

	_, err := p.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, ErrDenied)
}

func TestStaticProvider(t *testing.T) {
	want := model.Coordinates{Latitude: 33.4996, Longitude: 126.5312}
	p := NewStaticProvider(want)
	assert.True(t, p.Available())

	got, err := p.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStaticProvider_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticProvider(model.Coordinates{}).CurrentPosition(ctx)
	assert.ErrorIs(t, err, ErrDenied)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIPProvider_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","country":"South Korea","city":"Seoul","lat":37.5665,"lon":126.978}`))
	}))
	defer srv.Close()

	p := NewIPProvider(srv.URL, srv.Client())
	require.True(t, p.Available())

	got, err := p.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Coordinates{Latitude: 37.5665, Longitude: 126.978}, got)
}

func TestIPProvider_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "lookup failed",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
			},
		},
		{
			name: "forbidden",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewIPProvider(srv.URL, srv.Client()).CurrentPosition(context.Background())
			assert.ErrorIs(t, err, ErrDenied)
		})
	}
}

func TestIPProvider_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewIPProvider(url, nil).CurrentPosition(context.Background())
	assert.ErrorIs(t, err, ErrDenied)
}

func TestIPProvider_NoURLIsUnavailable(t *testing.T) {
	assert.False(t, NewIPProvider("", nil).Available())
}

func TestFromConfig_TestConfigIsStatic(t *testing.T) {
	p := FromConfig(nil)
	require.IsType(t, &StaticProvider{}, p)

	got, err := p.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 37.5665, got.Latitude, 1e-9)
}
