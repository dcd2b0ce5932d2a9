package errors

import (
	"fmt"

	"github.com/oasislabs/oracle-bridge/log"
)

// Err is the error type returned by every operation exposed by the
// bridge. Callers can always recover the stable error code from it
type Err interface {
	error
	log.Loggable

	// ErrorCode returns the code that identifies the error
	ErrorCode() ErrorCode

	// Cause returns the underlying error, if any
	Cause() error
}

// userCodeBase is the offset at which the codes reported back to a
// bridge caller start. Codes in this space are stable and form part of
// the external interface of the bridge
const userCodeBase = 1 << 16

var (
	ErrInternalError = ErrorCode{
		category: InternalError,
		code:     1000,
		desc:     "Internal Error. Please check the status of the service.",
	}

	ErrStoreGet = ErrorCode{
		category: InternalError,
		code:     1001,
		desc:     "Failed to read from the key-value store.",
	}

	ErrStorePut = ErrorCode{
		category: InternalError,
		code:     1002,
		desc:     "Failed to write to the key-value store.",
	}

	ErrPrometheusPushError = ErrorCode{
		category: InternalError,
		code:     1003,
		desc:     "Failed to push metrics to the prometheus push gateway.",
	}

	ErrHttpContentLengthMissing = ErrorCode{
		category: InputError,
		code:     2002,
		desc:     "Content-length header missing from request.",
	}

	ErrHttpContentLengthLimit = ErrorCode{
		category: InputError,
		code:     2003,
		desc:     "Content-length exceeds request limit.",
	}

	ErrHttpContentTypeApplicationJson = ErrorCode{
		category: InputError,
		code:     2004,
		desc:     "Content-type should be application/json.",
	}

	ErrDeserializeJSON = ErrorCode{
		category: InputError,
		code:     2005,
		desc:     "Failed to deserialize body as JSON.",
	}

	ErrInvalidKey = ErrorCode{
		category: InputError,
		code:     2006,
		desc:     "Provided key is not a 64 character lowercase hex digest.",
	}

	ErrPacketNotFound = ErrorCode{
		category: NotFound,
		code:     4041,
		desc:     "No packet is stored under the provided key.",
	}

	ErrAPINotImplemented = ErrorCode{
		category: NotImplemented,
		code:     5001,
		desc:     "API not Implemented.",
	}

	ErrUnknownBridgeCallCommand = userErrorCode(1, DispatchError,
		"Unknown bridge call command.")

	ErrUnknownApiCommand = userErrorCode(2, DispatchError,
		"Unknown api command. The method name is not supported by the bridge.")

	ErrFailToDecodeProof = userErrorCode(3, DecodeError,
		"Failed to decode proof. The packet is truncated or malformed.")

	ErrMissingArgument0 = userErrorCode(16, DispatchError, "Missing argument at position 0.")
	ErrMissingArgument1 = userErrorCode(17, DispatchError, "Missing argument at position 1.")
	ErrMissingArgument2 = userErrorCode(18, DispatchError, "Missing argument at position 2.")
	ErrMissingArgument3 = userErrorCode(19, DispatchError, "Missing argument at position 3.")
	ErrMissingArgument4 = userErrorCode(20, DispatchError, "Missing argument at position 4.")
	ErrMissingArgument5 = userErrorCode(21, DispatchError, "Missing argument at position 5.")

	ErrInvalidArgument0 = userErrorCode(22, DispatchError, "Invalid argument at position 0.")
	ErrInvalidArgument1 = userErrorCode(23, DispatchError, "Invalid argument at position 1.")
	ErrInvalidArgument2 = userErrorCode(24, DispatchError, "Invalid argument at position 2.")
	ErrInvalidArgument3 = userErrorCode(25, DispatchError, "Invalid argument at position 3.")
	ErrInvalidArgument4 = userErrorCode(26, DispatchError, "Invalid argument at position 4.")
	ErrInvalidArgument5 = userErrorCode(27, DispatchError, "Invalid argument at position 5.")

	ErrUnsupportedNumberOfArguments = userErrorCode(28, DispatchError,
		"Unsupported number of arguments.")
)

func userErrorCode(n int, category Category, desc string) ErrorCode {
	return ErrorCode{category: category, code: userCodeBase + n, desc: desc}
}

var missingArguments = []ErrorCode{
	ErrMissingArgument0,
	ErrMissingArgument1,
	ErrMissingArgument2,
	ErrMissingArgument3,
	ErrMissingArgument4,
	ErrMissingArgument5,
}

var invalidArguments = []ErrorCode{
	ErrInvalidArgument0,
	ErrInvalidArgument1,
	ErrInvalidArgument2,
	ErrInvalidArgument3,
	ErrInvalidArgument4,
	ErrInvalidArgument5,
}

// MissingArgument returns the error code for an argument that was not
// provided at position i. Positions beyond the ones with their own code
// collapse to ErrUnsupportedNumberOfArguments
func MissingArgument(i int) ErrorCode {
	if i < 0 || i >= len(missingArguments) {
		return ErrUnsupportedNumberOfArguments
	}
	return missingArguments[i]
}

// InvalidArgument returns the error code for an argument at position i
// that does not have the expected shape. Positions beyond the ones with
// their own code collapse to ErrUnsupportedNumberOfArguments
func InvalidArgument(i int) ErrorCode {
	if i < 0 || i >= len(invalidArguments) {
		return ErrUnsupportedNumberOfArguments
	}
	return invalidArguments[i]
}

// Category defines error categories that logically group them. This classification
// may be useful when mapping error categories together to a specific error type
// as it could be done by mapping errors to Http Status codes
type Category string

const (
	// InternalError refers to errors related to programming errors or
	// other unexpected errors, such as the key-value store becoming
	// unreachable. The only action a user can take out of an
	// InternalError is reach out to the operator
	InternalError Category = "InternalError"

	// InputError refers to errors that are returned because the input
	// provided to execute an action is incorrect, malformed or could
	// not be parsed
	InputError Category = "InputError"

	// DispatchError is returned when a bridge call names an unknown
	// method or is missing or has a malformed positional argument.
	// It is always detected before the proof is decoded
	DispatchError Category = "DispatchError"

	// DecodeError is returned when a proof does not decode against
	// the packet schema
	DecodeError Category = "DecodeError"

	// StateConflict refers to errors that occur because of an attempt
	// to modify the state of an object breaking the defined rules
	StateConflict Category = "StateConflict"

	// NotFound is returned when the requested resource does not exist
	NotFound Category = "NotFound"

	// NotImplemented refers to errors in which the client attempts to
	// execute an action that has not yet been implemented by the server
	NotImplemented Category = "NotImplemented"
)

// Error is the implementation of Err for this package. It contains
// an instance of an ErrorCode which provides information about the error
// and a cause which might be nil if there's no underlying cause for
// the error
type Error struct {
	cause     error
	errorCode ErrorCode
}

// Error is the implementation of error for Error
func (e Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%d] error code %s with desc %s",
			e.errorCode.Code(), e.errorCode.Category(), e.errorCode.Desc())
	}

	return fmt.Sprintf("[%d] error code %s with desc %s with cause %s",
		e.errorCode.Code(), e.errorCode.Category(), e.errorCode.Desc(), e.cause)
}

// ErrorCode is the implementation of Err for Error
func (e Error) ErrorCode() ErrorCode {
	return e.errorCode
}

// Cause is the implementation of Err for Error
func (e Error) Cause() error {
	return e.cause
}

// Unwrap allows the standard library helpers to reach the cause
func (e Error) Unwrap() error {
	return e.cause
}

// Log implementation of log.Loggable
func (e Error) Log(fields log.Fields) {
	fields.Add("err", e.errorCode.Desc())
	fields.Add("errorCode", e.errorCode.Code())

	if e.cause != nil {
		fields.Add("cause", e.cause.Error())
	}
}

// New creates a new instance of an error
func New(errorCode ErrorCode, cause error) Err {
	return Error{cause: cause, errorCode: errorCode}
}

// Is returns true if err is an Err with the provided error code
func Is(err error, errorCode ErrorCode) bool {
	e, ok := err.(Err)
	if !ok {
		return false
	}

	return e.ErrorCode().Code() == errorCode.Code()
}

// ErrorCode holds the necessary information to uniquely identify an error
// and make sure that a valuable response is returned to the user
// in case of encountering an error
type ErrorCode struct {
	// category is the type of the error
	category Category

	// code is a unique identifier for the error that can be used to identify
	// the particular type of error encountered
	code int

	// desc is a human readable description of the error that occurred
	// to aid the client in debugging
	desc string
}

// Category getter for category
func (e ErrorCode) Category() Category {
	return e.category
}

// Code getter for code
func (e ErrorCode) Code() int {
	return e.code
}

// Desc getter for desc
func (e ErrorCode) Desc() string {
	return e.desc
}
