package kanban

import "errors"

var (
	ErrEngineClosed = errors.New("engine is closed")
	ErrStaleTicket  = errors.New("board was rebuilt since the move")
	ErrNoSource     = errors.New("engine has no task source")
)
