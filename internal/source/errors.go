package source

import "errors"

type ErrNotConnected struct {
	error
}

func NewErrNotConnected() *ErrNotConnected {
	return &ErrNotConnected{errors.New("source database is not configured")}
}
