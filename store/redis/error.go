package redis

import (
	"fmt"
)

type ErrRedisExec struct {
	Op    string
	Cause error
}

func (e ErrRedisExec) Error() string {
	return fmt.Sprintf("redis exec error on %s %s", e.Op, e.Cause)
}

func (e ErrRedisExec) Unwrap() error {
	return e.Cause
}

func IsErrRedisExec(err error) bool {
	_, ok := err.(ErrRedisExec)
	return ok
}

type ErrRedisConnect struct {
	Cause error
}

func (e ErrRedisConnect) Error() string {
	return fmt.Sprintf("failed to connect to redis %s", e.Cause)
}
