package devserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/go-stomp/stomp/v3"
	"github.com/go-stomp/stomp/v3/server"
)

// Broker is an embedded STOMP broker. Clients reach it over raw TCP or over
// WebSocket through ServeWebSocket; both share one set of topics.
type Broker struct {
	tcp    net.Listener
	mux    *muxListener
	logger *slog.Logger
}

// StartBroker listens on addr ("127.0.0.1:0" picks a free port) and serves
// STOMP in the background until Close.
func StartBroker(addr string, logger *slog.Logger) (*Broker, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for stomp: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	b := &Broker{
		tcp:    l,
		mux:    newMuxListener(l.Addr()),
		logger: logger,
	}
	go b.acceptTCP()
	go func() {
		if err := server.Serve(b.mux); err != nil {
			b.logger.Debug("stomp broker stopped", "error", err)
		}
	}()
	return b, nil
}

// Addr returns the TCP host:port the broker listens on
func (b *Broker) Addr() string {
	return b.tcp.Addr().String()
}

// Close stops accepting connections
func (b *Broker) Close() error {
	b.mux.Close()
	return b.tcp.Close()
}

func (b *Broker) acceptTCP() {
	for {
		conn, err := b.tcp.Accept()
		if err != nil {
			return
		}
		if !b.mux.push(conn) {
			_ = conn.Close()
			return
		}
	}
}

// ServeWebSocket upgrades the request and hands the stream to the broker.
// It returns once the STOMP session ends.
func (b *Broker) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:       []string{"v12.stomp", "v11.stomp", "v10.stomp"},
		InsecureSkipVerify: true,
	})
	if err != nil {
		b.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := &notifyConn{Conn: websocket.NetConn(ctx, ws, websocket.MessageText), closed: make(chan struct{})}
	if !b.mux.push(conn) {
		_ = conn.Close()
		return
	}
	<-conn.closed
}

// muxListener feeds connections from several sources to one STOMP server
type muxListener struct {
	addr  net.Addr
	conns chan net.Conn
	done  chan struct{}
	once  sync.Once
}

func newMuxListener(addr net.Addr) *muxListener {
	return &muxListener{addr: addr, conns: make(chan net.Conn), done: make(chan struct{})}
}

func (l *muxListener) push(conn net.Conn) bool {
	select {
	case l.conns <- conn:
		return true
	case <-l.done:
		return false
	}
}

func (l *muxListener) Accept() (net.Conn, error) {
	select {
	case conn := <-l.conns:
		return conn, nil
	case <-l.done:
		return nil, net.ErrClosed
	}
}

func (l *muxListener) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

func (l *muxListener) Addr() net.Addr {
	return l.addr
}

// notifyConn signals when the broker closes the connection
type notifyConn struct {
	net.Conn
	once   sync.Once
	closed chan struct{}
}

func (c *notifyConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(func() { close(c.closed) })
	return err
}

// Publisher sends messages to a STOMP broker over one connection
type Publisher struct {
	mu   sync.Mutex
	conn *stomp.Conn
}

// DialPublisher connects to a broker at addr
func DialPublisher(addr string) (*Publisher, error) {
	conn, err := stomp.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to stomp broker: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// Publish sends a JSON body to destination
func (p *Publisher) Publish(destination string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.Send(destination, "application/json", body)
}

// Close disconnects from the broker
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.Disconnect()
}
