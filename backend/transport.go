package backend

import (
	"context"
	"net"
	"net/http"
	"time"
)

const keepAlive = 30 * time.Second

// newTransport clones http.DefaultTransport and applies the phase timeouts:
// connect bounds dialing and the TLS handshake, read bounds every socket
// read and the wait for response headers, write bounds every socket write.
func newTransport(cfg Config) *http.Transport {
	dialer := &net.Dialer{ //nolint:exhaustruct
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: keepAlive,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert
	transport.TLSHandshakeTimeout = cfg.ConnectTimeout
	transport.ResponseHeaderTimeout = cfg.ReadTimeout
	transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		if cfg.ReadTimeout <= 0 && cfg.WriteTimeout <= 0 {
			return conn, nil
		}

		return &deadlineConn{
			Conn:         conn,
			readTimeout:  cfg.ReadTimeout,
			writeTimeout: cfg.WriteTimeout,
		}, nil
	}

	return transport
}

type deadlineConn struct {
	net.Conn

	readTimeout  time.Duration
	writeTimeout time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}

	return c.Conn.Read(b)
}

func (c *deadlineConn) Write(b []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}

	return c.Conn.Write(b)
}
