// Package kanban keeps one project's board in memory, applies moves
// optimistically and persists them to the backend in the background.
package kanban

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/taskstore"
)

const (
	// DefaultPollSpec is the cron schedule used when StartPolling gets ""
	DefaultPollSpec = "@every 30s"

	defaultPersistTimeout = 30 * time.Second
	defaultResultBuffer   = 64
)

// TaskStore persists a task's status and order
type TaskStore interface {
	UpdateTask(ctx context.Context, id models.TaskID, patch models.TaskPatch) (*models.Task, error)
}

// TaskSource lists a project's tasks
type TaskSource interface {
	ListTasks(ctx context.Context, projectID string) ([]models.Task, error)
}

// MoveTicket describes a move the engine applied. Previous is the board
// before the move; callers roll back to it when persistence fails.
type MoveTicket struct {
	Seq      uint64
	Move     board.Move
	Previous board.Board
	Next     board.Board
	Persist  *board.Persist
	NoOp     bool
}

// PersistResult reports the outcome of one persistence call.
// A Stale result was overtaken by a newer move of the same task or by a
// refresh whose fetch began after the move; it must not trigger a rollback.
type PersistResult struct {
	Seq    uint64
	TaskID models.TaskID
	Task   *models.Task
	Err    error
	Stale  bool
	Ticket MoveTicket
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPersistTimeout bounds each persistence call
func WithPersistTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.persistTimeout = d
	}
}

// WithResultBuffer sets the capacity of the Results channel
func WithResultBuffer(n int) Option {
	return func(e *Engine) {
		e.resultBuffer = n
	}
}

// Engine owns the in-memory board of one project
type Engine struct {
	projectID      string
	store          TaskStore
	source         TaskSource
	logger         *slog.Logger
	persistTimeout time.Duration
	resultBuffer   int
	metrics        *Metrics

	results   chan PersistResult
	refreshes chan board.Board
	done      chan struct{}
	wg        sync.WaitGroup

	mu     sync.Mutex
	board  board.Board
	seq    uint64
	latest map[models.TaskID]uint64
	// moves up to floor are superseded by a reload
	floor uint64
	// moves after floor, replayed onto snapshots fetched before they were made
	issued []issuedMove
	closed bool
	cron   *cron.Cron
}

type issuedMove struct {
	seq  uint64
	move board.Move
}

// NewEngine creates an engine for projectID. The board starts empty until
// Refresh or Load.
func NewEngine(projectID string, store TaskStore, source TaskSource, opts ...Option) *Engine {
	e := &Engine{
		projectID:      projectID,
		store:          store,
		source:         source,
		logger:         slog.Default(),
		persistTimeout: defaultPersistTimeout,
		resultBuffer:   defaultResultBuffer,
		metrics:        NewMetrics(),
		done:           make(chan struct{}),
		refreshes:      make(chan board.Board, 1),
		board:          board.Build(nil),
		latest:         make(map[models.TaskID]uint64),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.results = make(chan PersistResult, e.resultBuffer)
	return e
}

// ProjectID returns the project the engine serves
func (e *Engine) ProjectID() string {
	return e.projectID
}

// Board returns the current board
func (e *Engine) Board() board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board
}

// Results delivers one PersistResult per non-no-op move.
// The channel is closed by Close.
func (e *Engine) Results() <-chan PersistResult {
	return e.results
}

// Refreshes delivers boards rebuilt by the poller. Only the newest is kept.
func (e *Engine) Refreshes() <-chan board.Board {
	return e.refreshes
}

// Metrics returns the engine counters
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// LastSeq returns the sequence number of the most recent move
func (e *Engine) LastSeq() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq
}

// Refresh reloads the task list and replaces the board. Moves made while
// the list was being fetched are replayed on top of it and stay live.
func (e *Engine) Refresh(ctx context.Context) (board.Board, error) {
	if e.source == nil {
		return e.Board(), ErrNoSource
	}

	since := e.LastSeq()
	tasks, err := e.source.ListTasks(ctx, e.projectID)
	if err != nil {
		e.metrics.RefreshFailures.Add(1)
		return e.Board(), fmt.Errorf("failed to refresh board: %w", err)
	}
	return e.reload(tasks, since), nil
}

// Load rebuilds the board from an authoritative task list. Moves still in
// flight become stale.
func (e *Engine) Load(tasks []models.Task) board.Board {
	return e.reload(tasks, math.MaxUint64)
}

// reload replaces the board with tasks. Moves up to since become stale;
// later ones are replayed onto the new board.
func (e *Engine) reload(tasks []models.Task, since uint64) board.Board {
	b := board.Build(tasks)
	for _, t := range b.Excluded {
		e.logger.Warn("task has unknown status, not shown on board",
			"project_id", e.projectID, "task_id", t.ID, "status", t.Status)
	}

	e.mu.Lock()
	since = min(since, e.seq)
	e.floor = max(e.floor, since)

	kept := e.issued[:0]
	for _, im := range e.issued {
		if im.seq <= e.floor {
			continue
		}
		kept = append(kept, im)
		b = replay(b, im.move)
	}
	clear(e.issued[len(kept):])
	e.issued = kept

	for id, seq := range e.latest {
		if seq <= e.floor {
			delete(e.latest, id)
		}
	}
	e.board = b
	e.mu.Unlock()

	e.metrics.Refreshes.Add(1)
	return b
}

// replay moves m's task to m's destination on b, clamping the index. Tasks
// missing from b are left alone.
func replay(b board.Board, m board.Move) board.Board {
	current, _, ok := b.Find(m.TaskID)
	if !ok {
		return b
	}
	limit := len(b.Column(m.To))
	if current == m.To {
		limit--
	}
	mv, err := board.NewMove(b, m.TaskID, m.To, max(0, min(m.ToIndex, limit)))
	if err != nil {
		return b
	}
	next, _, err := board.Apply(b, mv)
	if err != nil {
		return b
	}
	return next
}

// Move applies m to the board and starts persisting it. The new board is
// visible through Board as soon as Move returns; the backend outcome arrives
// on Results. Invalid moves return a *board.ValidationError and change nothing.
func (e *Engine) Move(ctx context.Context, m board.Move) (MoveTicket, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return MoveTicket{}, ErrEngineClosed
	}

	prev := e.board
	next, persist, err := board.Apply(prev, m)
	if err != nil {
		e.mu.Unlock()
		e.metrics.ValidationFailures.Add(1)
		return MoveTicket{}, err
	}
	if persist == nil {
		e.mu.Unlock()
		e.metrics.NoOps.Add(1)
		return MoveTicket{Move: m, Previous: prev, Next: prev, NoOp: true}, nil
	}

	e.seq++
	ticket := MoveTicket{
		Seq:      e.seq,
		Move:     m,
		Previous: prev,
		Next:     next,
		Persist:  persist,
	}
	e.latest[m.TaskID] = ticket.Seq
	e.issued = append(e.issued, issuedMove{seq: ticket.Seq, move: m})
	e.board = next
	e.wg.Add(1)
	e.mu.Unlock()

	e.metrics.MovesApplied.Add(1)
	go e.persist(ctx, ticket)
	return ticket, nil
}

// MoveTo moves task id to index toIndex of column to, wherever it is now
func (e *Engine) MoveTo(ctx context.Context, id models.TaskID, to models.Status, toIndex int) (MoveTicket, error) {
	m, err := board.NewMove(e.Board(), id, to, toIndex)
	if err != nil {
		e.metrics.ValidationFailures.Add(1)
		return MoveTicket{}, err
	}
	return e.Move(ctx, m)
}

// PersistMove sends one status/order update. It never retries and never
// touches the board. Failures are *taskstore.PersistenceError.
func (e *Engine) PersistMove(ctx context.Context, id models.TaskID, status models.Status, order int) (*models.Task, error) {
	task, err := e.store.UpdateTask(ctx, id, models.TaskPatch{Status: status, Order: order})
	if err != nil {
		var perr *taskstore.PersistenceError
		if !errors.As(err, &perr) {
			err = &taskstore.PersistenceError{TaskID: id, Err: err}
		}
		return nil, err
	}
	return task, nil
}

func (e *Engine) persist(ctx context.Context, ticket MoveTicket) {
	defer e.wg.Done()

	// persistence outlives the caller's context
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.persistTimeout)
	defer cancel()

	p := ticket.Persist
	task, err := e.PersistMove(pctx, p.TaskID, p.Status, p.Order)

	e.mu.Lock()
	stale := ticket.Seq <= e.floor || e.latest[p.TaskID] != ticket.Seq
	if !stale {
		delete(e.latest, p.TaskID)
	}
	if err != nil {
		// the backend never took it, so later snapshots must not replay it
		e.forget(ticket.Seq)
	}
	e.mu.Unlock()

	switch {
	case stale:
		e.metrics.StaleResults.Add(1)
	case err != nil:
		e.metrics.PersistFailed.Add(1)
	default:
		e.metrics.PersistSucceeded.Add(1)
	}
	if err != nil {
		e.logger.Error("failed to persist move",
			"project_id", e.projectID, "task_id", p.TaskID, "seq", ticket.Seq, "stale", stale, "error", err)
	}

	result := PersistResult{
		Seq:    ticket.Seq,
		TaskID: p.TaskID,
		Task:   task,
		Err:    err,
		Stale:  stale,
		Ticket: ticket,
	}
	select {
	case e.results <- result:
	case <-e.done:
	}
}

// forget drops seq from the replay log. Callers hold e.mu.
func (e *Engine) forget(seq uint64) {
	e.issued = slices.DeleteFunc(e.issued, func(im issuedMove) bool {
		return im.seq == seq
	})
}

// Rollback replaces the board with to
func (e *Engine) Rollback(to board.Board) {
	e.mu.Lock()
	e.board = to
	e.mu.Unlock()
	e.metrics.Rollbacks.Add(1)
}

// Revert undoes one move. If nothing happened since, the board goes back to
// ticket.Previous; otherwise the task alone is moved back to where it came
// from so later moves survive.
func (e *Engine) Revert(ticket MoveTicket) (board.Board, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ticket.NoOp {
		return e.board, nil
	}
	if ticket.Seq <= e.floor {
		return e.board, ErrStaleTicket
	}

	if e.board.Equal(ticket.Next) {
		e.board = ticket.Previous
		e.metrics.Rollbacks.Add(1)
		return e.board, nil
	}

	m := ticket.Move
	current, _, ok := e.board.Find(m.TaskID)
	if !ok {
		return e.board, &board.ValidationError{Move: m, Err: board.ErrTaskNotFound}
	}
	limit := len(e.board.Column(m.From))
	if current == m.From {
		limit--
	}
	inverse, err := board.NewMove(e.board, m.TaskID, m.From, min(m.FromIndex, limit))
	if err != nil {
		return e.board, err
	}
	next, _, err := board.Apply(e.board, inverse)
	if err != nil {
		return e.board, err
	}

	e.board = next
	e.metrics.Rollbacks.Add(1)
	return e.board, nil
}

// StartPolling refreshes the board on a cron schedule until ctx is done or
// the engine is closed. Each rebuilt board is offered on Refreshes.
func (e *Engine) StartPolling(ctx context.Context, spec string) error {
	if spec == "" {
		spec = DefaultPollSpec
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		b, err := e.Refresh(ctx)
		if err != nil {
			e.logger.Warn("scheduled refresh failed", "project_id", e.projectID, "error", err)
			return
		}
		e.offerRefresh(b)
	}); err != nil {
		return fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	if e.cron != nil {
		e.cron.Stop()
	}
	e.cron = c
	e.mu.Unlock()

	c.Start()
	go func() {
		select {
		case <-ctx.Done():
		case <-e.done:
		}
		<-c.Stop().Done()
	}()
	return nil
}

func (e *Engine) offerRefresh(b board.Board) {
	for {
		select {
		case e.refreshes <- b:
			return
		default:
		}
		select {
		case <-e.refreshes:
		default:
		}
	}
}

// Close stops polling, waits for in-flight persistence calls and closes
// Results. A result that cannot be buffered by then is discarded.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	close(e.done)
	e.wg.Wait()
	close(e.results)
	return nil
}
