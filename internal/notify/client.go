// Package notify subscribes to the per-user deadline reminder topic over
// STOMP and keeps a short history of received reminders.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/thenoetrevino/taskboard/internal/auth"
	"github.com/thenoetrevino/taskboard/internal/models"
)

const (
	DefaultReconnectDelay = 5 * time.Second
	DefaultHeartBeat      = 10 * time.Second

	defaultDialTimeout = 10 * time.Second
	eventBuffer        = 16
)

// Client is a reconnecting STOMP subscriber. A Client listens once; after
// Close it cannot be reused.
type Client struct {
	url            *url.URL
	tokens         auth.TokenProvider
	destination    string
	template       string
	userID         string
	reconnectDelay time.Duration
	heartBeat      time.Duration
	dialTimeout    time.Duration
	logger         *slog.Logger

	history *History
	dropped atomic.Int64

	mu        sync.Mutex
	connected bool
	listening bool
	closed    bool
	cancel    context.CancelFunc
	done      chan struct{}
	resume    chan struct{}
}

// Option configures a Client
type Option func(*Client)

// WithDestination subscribes to a fixed destination instead of the user topic
func WithDestination(dest string) Option {
	return func(c *Client) {
		c.destination = dest
	}
}

// WithTopicTemplate overrides the per-user topic template ("{userId}" is replaced)
func WithTopicTemplate(template string) Option {
	return func(c *Client) {
		c.template = template
	}
}

// WithUserID sets the user id instead of reading the token's subject
func WithUserID(id string) Option {
	return func(c *Client) {
		c.userID = id
	}
}

// WithReconnectDelay sets the fixed wait between connection attempts
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Client) {
		c.reconnectDelay = d
	}
}

// WithHeartBeat sets the STOMP heart-beat interval; 0 disables heart-beats
func WithHeartBeat(d time.Duration) Option {
	return func(c *Client) {
		c.heartBeat = d
	}
}

// WithDialTimeout bounds each connection attempt
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.dialTimeout = d
	}
}

// WithHistorySize changes how many notifications are remembered
func WithHistorySize(n int) Option {
	return func(c *Client) {
		c.history = NewHistory(n)
	}
}

// WithLogger sets the client logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the broker at rawURL (ws://, wss:// or
// tcp://). It does not connect until Listen.
func NewClient(rawURL string, tokens auth.TokenProvider, opts ...Option) (*Client, error) {
	u, err := parseBrokerURL(rawURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		url:            u,
		tokens:         tokens,
		template:       models.DefaultTopicTemplate,
		reconnectDelay: DefaultReconnectDelay,
		heartBeat:      DefaultHeartBeat,
		dialTimeout:    defaultDialTimeout,
		logger:         slog.Default(),
		history:        NewHistory(models.NotificationHistorySize),
		resume:         make(chan struct{}, 1),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Listen starts the connect/subscribe loop. The returned channel carries
// notifications and connection changes, and is closed when ctx is done or
// the client is closed.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	if c == nil {
		ch := make(chan Event)
		close(ch)
		return ch, ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		ch := make(chan Event)
		close(ch)
		return ch, ErrClosed
	}
	if c.listening {
		return nil, ErrAlreadyListening
	}
	c.listening = true

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	events := make(chan Event, eventBuffer)
	go c.run(ctx, events)
	return events, nil
}

// Connected reports whether a subscription is live
func (c *Client) Connected() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Notifications returns the recent history, newest first
func (c *Client) Notifications() []models.TaskNotification {
	if c == nil {
		return nil
	}
	return c.history.Items()
}

// ClearHistory forgets all received notifications
func (c *Client) ClearHistory() {
	if c == nil {
		return
	}
	c.history.Clear()
}

// Dropped is the number of malformed payloads discarded so far
func (c *Client) Dropped() int64 {
	if c == nil {
		return 0
	}
	return c.dropped.Load()
}

// Resume cuts the reconnect wait short. It does nothing while connected.
func (c *Client) Resume() {
	if c == nil || c.Connected() {
		return
	}
	select {
	case c.resume <- struct{}{}:
	default:
	}
}

// Close stops the loop and waits for it to exit. It is safe to call more
// than once and on a nil client.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancel := c.cancel
	listening := c.listening
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if listening {
		<-c.done
	}
	return nil
}

func (c *Client) run(ctx context.Context, events chan<- Event) {
	defer close(c.done)
	defer close(events)

	for {
		err := c.session(ctx, events)
		if ctx.Err() != nil {
			return
		}

		cerr := ClassifyConnectError(err)
		c.logger.Warn("notification connection lost",
			"broker", c.url.Redacted(),
			"error", cerr.Err,
			"hint", cerr.Hint,
			"retry_in", c.reconnectDelay)

		timer := time.NewTimer(c.reconnectDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case <-c.resume:
			timer.Stop()
			c.logger.Info("resuming notification connection", "broker", c.url.Redacted())
		}
	}
}

// session connects, subscribes and reads until the subscription fails
func (c *Client) session(ctx context.Context, events chan<- Event) error {
	select {
	case <-c.resume:
	default:
	}

	token, dest, err := c.credentials(ctx)
	if err != nil {
		return err
	}

	header := http.Header{}
	opts := []func(*stomp.Conn) error{
		stomp.ConnOpt.Host(c.url.Hostname()),
		stomp.ConnOpt.HeartBeat(c.heartBeat, c.heartBeat),
	}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
		opts = append(opts, stomp.ConnOpt.Header("Authorization", "Bearer "+token))
	}

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()

	netConn, err := dial(sctx, c.url, header, c.dialTimeout)
	if err != nil {
		return err
	}

	conn, err := stomp.Connect(netConn, opts...)
	if err != nil {
		_ = netConn.Close()
		return fmt.Errorf("stomp connect failed: %w", err)
	}

	sub, err := conn.Subscribe(dest, stomp.AckAuto)
	if err != nil {
		_ = conn.MustDisconnect()
		return fmt.Errorf("failed to subscribe to %s: %w", dest, err)
	}

	c.setConnected(true)
	c.logger.Info("subscribed to notifications", "broker", c.url.Redacted(), "destination", dest)
	c.emit(ctx, events, Event{Type: EventConnected, Timestamp: time.Now()})

	err = c.read(ctx, sub, events)

	c.setConnected(false)
	if ctx.Err() != nil {
		// no receipt handshake on shutdown; the broker drops the subscription
		// with the connection
		_ = conn.MustDisconnect()
		return ctx.Err()
	}
	_ = conn.MustDisconnect()
	c.emit(ctx, events, Event{Type: EventDisconnected, Err: err, Timestamp: time.Now()})
	return err
}

func (c *Client) read(ctx context.Context, sub *stomp.Subscription, events chan<- Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-sub.C:
			if !ok {
				return ErrSubscriptionEnd
			}
			if msg.Err != nil {
				return msg.Err
			}
			c.handle(ctx, msg.Destination, msg.Body, events)
		}
	}
}

func (c *Client) handle(ctx context.Context, dest string, body []byte, events chan<- Event) {
	n, err := Parse(body)
	if err != nil {
		c.dropped.Add(1)
		c.logger.Warn("dropping malformed notification", "destination", dest, "error", err)
		return
	}

	c.history.Add(n)
	c.emit(ctx, events, Event{Type: EventNotification, Notification: &n, Timestamp: time.Now()})
}

func (c *Client) emit(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

// credentials returns the bearer token (possibly empty) and the
// destination to subscribe to
func (c *Client) credentials(ctx context.Context) (string, string, error) {
	var token string
	if c.tokens != nil {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return "", "", fmt.Errorf("failed to get bearer token: %w", err)
		}
		token = t
	}

	if c.destination != "" {
		return token, c.destination, nil
	}

	userID := c.userID
	if userID == "" {
		if token == "" {
			return "", "", ErrNoUserID
		}
		id, err := auth.UserID(token)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrNoUserID, err)
		}
		userID = id
	}
	return token, models.Topic(c.template, userID), nil
}
