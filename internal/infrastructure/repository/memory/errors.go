package memory

import "errors"

var (
	ErrDuplicate = errors.New("memory: duplicate record")
	ErrMissing   = errors.New("memory: record does not exist")
)
