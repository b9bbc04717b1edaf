package d42

import "fmt"

type ErrRemote struct {
	error
	StatusCode int
}

func NewErrRemote(path string, statusCode int, body string) *ErrRemote {
	return &ErrRemote{
		error:      fmt.Errorf("device42 %s returned status %d: %s", path, statusCode, body),
		StatusCode: statusCode,
	}
}

type ErrMissingID struct {
	error
}

func NewErrMissingID(entity Entity) *ErrMissingID {
	return &ErrMissingID{fmt.Errorf("device42 response for %s carries no identifier", entity)}
}
