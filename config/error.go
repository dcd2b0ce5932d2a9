package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKeyNotSet is returned when a required key has no value
type ErrKeyNotSet struct {
	Key string
}

func (e ErrKeyNotSet) Error() string {
	return fmt.Sprintf("configuration key %s must be set", e.Key)
}

// ErrInvalidValue is returned when a key is set to a value outside
// of the accepted set
type ErrInvalidValue struct {
	Key          string
	InvalidValue string
	Values       []string
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("configuration key %s has invalid value %q, expected one of %s",
		e.Key, e.InvalidValue, strings.Join(e.Values, ", "))
}

// ErrOutOfRange is returned when a numeric key is set to a value
// outside of [Min, Max]
type ErrOutOfRange struct {
	Key   string
	Value int64
	Min   int64
	Max   int64
}

func (e ErrOutOfRange) Error() string {
	return fmt.Sprintf("configuration key %s set to %d, must be between %d and %d",
		e.Key, e.Value, e.Min, e.Max)
}

// CheckRange returns ErrOutOfRange if value is outside of [min, max]
func CheckRange(key string, value, min, max int64) error {
	if value < min || value > max {
		return ErrOutOfRange{Key: key, Value: value, Min: min, Max: max}
	}
	return nil
}

// ErrParseFlags wraps the error returned by the flag parser
type ErrParseFlags struct {
	Cause error
}

func (e ErrParseFlags) Error() string {
	return fmt.Sprintf("failed to parse flags: %s", e.Cause)
}

func (e ErrParseFlags) Unwrap() error {
	return e.Cause
}

// ErrAlreadyParsed is returned by a second call to Parse
var ErrAlreadyParsed = errors.New("arguments already parsed")
