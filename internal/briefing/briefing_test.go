package briefing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTTPSourceDecodesBriefing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"codename":"OPERATION NIGHTJAR","objective":"Hold the ridge.","intel":"Drones sighted."}`))
	}))
	defer srv.Close()

	b, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Briefing{
		Codename:  "OPERATION NIGHTJAR",
		Objective: "Hold the ridge.",
		Intel:     "Drones sighted.",
	}, b)
}

func TestHTTPSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"codename":`))
		}},
		{"missing fields", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"intel":"only intel"}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestHTTPSourceTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewHTTPSource(srv.URL, 50*time.Millisecond).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestHTTPSourceWithoutURL(t *testing.T) {
	_, err := NewHTTPSource("  ", time.Second).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestFallbackReplacesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	src := WithFallback(NewHTTPSource(srv.URL, time.Second), zap.New(core))

	b, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Fallback, b)
	assert.Equal(t, 1, logs.FilterMessage("briefing unavailable, using fallback").Len())
}

func TestFallbackPassesThroughSuccess(t *testing.T) {
	want := Briefing{Codename: "OPERATION SALT", Objective: "Survive.", Intel: "None."}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"codename":"OPERATION SALT","objective":"Survive.","intel":"None."}`))
	}))
	defer srv.Close()

	b, err := WithFallback(NewHTTPSource(srv.URL, time.Second), zap.NewNop()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, b)
}

func TestFallbackTripleIsFixed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b, err := WithFallback(NewHTTPSource("", 0), zap.New(core)).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OPERATION IRON RAIN", b.Codename)
	assert.Equal(t, "Reach the extraction point and eliminate all hostiles.", b.Objective)
	assert.Equal(t, "Enemy forces are massing. Expect heavy resistance.", b.Intel)
	assert.Zero(t, logs.Len(), "an unconfigured source is not a warning")
}
