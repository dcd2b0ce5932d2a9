// Package rw provides readers that bound how much data is consumed
// from an untrusted source
package rw

import (
	"bytes"
	"errors"
	"io"
)

// ErrLimitExceeded signals that the underlying reader has more
// available bytes than the expected limit
var ErrLimitExceeded = errors.New("read limit exceeded")

// ReadLimitProps sets up the behaviour of the limit reader
type ReadLimitProps struct {
	// FailOnExceed defines whether the LimitReader should return an
	// error if the underlying reader has more bytes than the limit
	FailOnExceed bool

	// Limit is the maximum number of bytes that can be read from the
	// reader and copied to the provided buffer
	Limit int64
}

// LimitReader is an io.Reader wrapper that ensures that
// no more than limit bytes are read from the reader
type LimitReader struct {
	failOnExceed bool
	count        int64
	limit        int64
	reader       io.Reader
}

// NewLimitReader returns a new LimitReader
func NewLimitReader(reader io.Reader, props ReadLimitProps) *LimitReader {
	readerLimit := props.Limit
	if props.FailOnExceed {
		// allow reading one byte past the limit, which is the only way
		// to know that the reader has more data than allowed
		readerLimit++
	}

	return &LimitReader{
		failOnExceed: props.FailOnExceed,
		limit:        props.Limit,
		reader:       io.LimitReader(reader, readerLimit),
	}
}

// Read is the implementation of io.Reader for LimitReader
func (r *LimitReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.count += int64(n)
	if r.failOnExceed && r.count > r.limit {
		return 0, ErrLimitExceeded
	}

	return n, err
}

// ReadAllWithLimit reads r until EOF and fails with ErrLimitExceeded
// if r has more than limit bytes
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(NewLimitReader(r, ReadLimitProps{
		FailOnExceed: true,
		Limit:        limit,
	})); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
