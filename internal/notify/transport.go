package notify

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
)

// subprotocols offered on the WebSocket handshake, newest STOMP first
var stompSubprotocols = []string{"v12.stomp", "v11.stomp", "v10.stomp"}

const maxFrameSize = 1 << 20

// dial opens the byte stream STOMP runs over. ws and wss go through a
// WebSocket handshake; tcp is a raw socket. ctx bounds the lifetime of a
// WebSocket stream; only timeout bounds the dial itself.
func dial(ctx context.Context, u *url.URL, header http.Header, timeout time.Duration) (net.Conn, error) {
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch u.Scheme {
	case "tcp":
		var d net.Dialer
		conn, err := d.DialContext(dctx, "tcp", u.Host)
		if err != nil {
			return nil, fmt.Errorf("failed to dial broker: %w", err)
		}
		return conn, nil

	case "ws", "wss":
		ws, resp, err := websocket.Dial(dctx, u.String(), &websocket.DialOptions{
			HTTPHeader:   header,
			Subprotocols: stompSubprotocols,
		})
		if err != nil {
			if resp != nil {
				return nil, fmt.Errorf("websocket handshake failed with status %d: %w", resp.StatusCode, err)
			}
			return nil, fmt.Errorf("failed to dial broker: %w", err)
		}
		ws.SetReadLimit(maxFrameSize)
		return websocket.NetConn(ctx, ws, websocket.MessageText), nil
	}

	return nil, fmt.Errorf("unsupported broker scheme %q", u.Scheme)
}

func parseBrokerURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid broker url: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss", "tcp":
	default:
		return nil, fmt.Errorf("invalid broker url %q: scheme must be ws, wss or tcp", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid broker url %q: missing host", raw)
	}
	return u, nil
}
