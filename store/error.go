package store

import (
	"errors"
	"fmt"
)

var (
	ErrBackendConfigConflict error = errors.New("backend conflict between provider and configuration")
)

type ErrUnknownBackend struct {
	Backend string
}

func (e ErrUnknownBackend) Error() string {
	return fmt.Sprintf("unknown store backend provided: %s", e.Backend)
}
