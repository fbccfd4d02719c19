package connectivity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Sultan0902/BackendProvider/connectivity"
	"github.com/stretchr/testify/require"
)

var errNoInterfaces = errors.New("no interfaces")

func TestStatic(t *testing.T) {
	t.Parallel()

	require.True(t, connectivity.Online.Reachable(t.Context()))
	require.False(t, connectivity.Offline.Reachable(t.Context()))
}

func TestProberFunc(t *testing.T) {
	t.Parallel()

	calls := 0
	prober := connectivity.ProberFunc(func(context.Context) bool {
		calls++

		return calls%2 == 1
	})

	require.True(t, prober.Reachable(t.Context()))
	require.False(t, prober.Reachable(t.Context()))
}

func TestInterfaces_Reachable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ifaces   []connectivity.Interface
		err      error
		expected bool
	}{
		{
			name:     "no interfaces",
			ifaces:   nil,
			expected: false,
		},
		{
			name: "loopback only",
			ifaces: []connectivity.Interface{
				{Name: "lo", Up: true, Loopback: true, Addrs: 2},
			},
			expected: false,
		},
		{
			name: "wifi down",
			ifaces: []connectivity.Interface{
				{Name: "lo", Up: true, Loopback: true, Addrs: 2},
				{Name: "wlan0", Up: false, Loopback: false, Addrs: 1},
			},
			expected: false,
		},
		{
			name: "wifi up without address",
			ifaces: []connectivity.Interface{
				{Name: "wlan0", Up: true, Loopback: false, Addrs: 0},
			},
			expected: false,
		},
		{
			name: "cellular up",
			ifaces: []connectivity.Interface{
				{Name: "lo", Up: true, Loopback: true, Addrs: 2},
				{Name: "rmnet0", Up: true, Loopback: false, Addrs: 1},
			},
			expected: true,
		},
		{
			name:     "listing fails",
			err:      errNoInterfaces,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prober := connectivity.NewInterfaces(func() ([]connectivity.Interface, error) {
				return tt.ifaces, tt.err
			})

			require.Equal(t, tt.expected, prober.Reachable(t.Context()))
		})
	}
}

func TestInterfaces_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	prober := connectivity.NewInterfaces(func() ([]connectivity.Interface, error) {
		return []connectivity.Interface{{Name: "eth0", Up: true, Loopback: false, Addrs: 1}}, nil
	})

	require.False(t, prober.Reachable(ctx))
}

func TestSystemInterfaces(t *testing.T) {
	t.Parallel()

	_, err := connectivity.SystemInterfaces()

	require.NoError(t, err)
}
