package backend_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Sultan0902/BackendProvider/backend"
	"github.com/stretchr/testify/require"
)

var errCause = errors.New("connection reset by peer")

func TestClassifyFailure(t *testing.T) {
	t.Parallel()

	cfg := backend.DefaultConfig().
		WithNoInternetMessage("offline").
		WithConnectivityErrorMessage("server unreachable")

	tests := []struct {
		name        string
		cfg         backend.Config
		reachable   bool
		wantMessage string
		wantIs      error
		wantIsNot   error
	}{
		{
			name:        "unreachable",
			cfg:         cfg,
			reachable:   false,
			wantMessage: "offline",
			wantIs:      backend.ErrNoInternet,
			wantIsNot:   backend.ErrConnectivity,
		},
		{
			name:        "reachable",
			cfg:         cfg,
			reachable:   true,
			wantMessage: "server unreachable",
			wantIs:      backend.ErrConnectivity,
			wantIsNot:   backend.ErrNoInternet,
		},
		{
			name:        "empty messages fall back to defaults",
			cfg:         backend.Config{}, //nolint:exhaustruct
			reachable:   false,
			wantMessage: backend.DefaultNoInternetMessage,
			wantIs:      backend.ErrNoInternet,
			wantIsNot:   backend.ErrConnectivity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := backend.ClassifyFailure(tt.reachable, tt.cfg, errCause)

			require.Equal(t, tt.wantMessage, err.Error())
			require.Equal(t, tt.reachable, err.Reachable)
			require.ErrorIs(t, err, tt.wantIs)
			require.NotErrorIs(t, err, tt.wantIsNot)
			require.ErrorIs(t, err, errCause)
		})
	}
}

func TestIsTransportError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("get items: %w", backend.ClassifyFailure(true, backend.DefaultConfig(), errCause))

	transportErr, ok := backend.IsTransportError(wrapped)
	require.True(t, ok)
	require.Equal(t, backend.DefaultConnectivityErrorMessage, transportErr.Message)

	_, ok = backend.IsTransportError(errCause)
	require.False(t, ok)
}

func TestServiceError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("call: %w", backend.NewServiceError(404, "item not found", "req-1"))

	require.ErrorIs(t, err, backend.ErrServiceError)

	svcErr, ok := backend.IsServiceError(err)
	require.True(t, ok)
	require.Equal(t, 404, svcErr.StatusCode)
	require.Equal(t, "req-1", svcErr.RequestID)
	require.Equal(t, "item not found", svcErr.Error())

	require.Equal(t, "backend: service returned status 502", backend.NewServiceError(502, "", "").Error())
}
