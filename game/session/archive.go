package session

import "github.com/wricardo/spilled-mushrooms/game/service"

// RunArchiver records a finished run and returns the run's identifier
type RunArchiver interface {
	Archive(session *service.Session) (string, error)
}

// ArchiverFunc adapts a function to RunArchiver
type ArchiverFunc func(session *service.Session) (string, error)

func (f ArchiverFunc) Archive(session *service.Session) (string, error) {
	return f(session)
}
