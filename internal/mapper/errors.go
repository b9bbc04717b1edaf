package mapper

import "fmt"

// ErrMissingField marks a record that cannot be migrated because a required
// field is empty.
type ErrMissingField struct {
	error
}

func NewErrMissingField(entity string, id int64, field string) *ErrMissingField {
	return &ErrMissingField{fmt.Errorf("%s %d has no %s", entity, id, field)}
}
