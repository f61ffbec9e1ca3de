package errcode

import (
	"errors"
	"fmt"
)

// Domain tags an Error with the object kind it belongs to. Together with the
// Code it forms the per-domain error variant.
type Domain uint8

const (
	Common Domain = iota
	Schema
	CredDef
	Wallet
	Connection
)

var domainBase = [...]Code{
	Common:     1000,
	Schema:     1100,
	CredDef:    1200,
	Wallet:     1300,
	Connection: 1400,
}

func (d Domain) String() string {
	return [...]string{"common", "schema", "creddef", "wallet", "connection"}[d]
}

// Owns tells if the code is in the domain's own range. External SDK codes are
// owned by every domain through Common arms.
func (d Domain) Owns(c Code) bool {
	base := domainBase[d]
	return c > base && c < base+domainWidth
}

// New returns a named error of the domain. The code must be from the domain's
// range or from the common range.
func (d Domain) New(c Code, format string, a ...any) *Error {
	return &Error{Domain: d, Code: c, Msg: fmt.Sprintf(format, a...)}
}

// Common wraps an error code reported by the external SDK. It is the only
// variant whose code is not known at compile time. A zero code from a failed
// result is mapped to SDKSubmitError so that it's never read as success.
func (d Domain) Common(code int, msg string) *Error {
	c := Code(code)
	if code <= 0 {
		c = SDKSubmitError
	}
	return &Error{Domain: d, Code: c, Msg: msg}
}

// Error is the error type of all the domains. Two Errors are the same error
// when their codes are equal, the message is for diagnostics only.
type Error struct {
	Domain Domain
	Code   Code
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s (%d)", e.Domain, Text(e.Code), e.Code)
	}
	return fmt.Sprintf("%s: %s (%d): %s", e.Domain, Text(e.Code), e.Code, e.Msg)
}

// Is implements errors.Is by the code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// IsExternal tells if the error came from the SDK.
func (e *Error) IsExternal() bool {
	return e.Code.IsExternal()
}

// Of maps any error to its stable code. It is total: nil is Success and
// errors outside the taxonomy are UnknownError.
func Of(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UnknownError
}

// Message returns diagnostic text for the error.
func Message(err error) string {
	if err == nil {
		return Text(Success)
	}
	return err.Error()
}

// sentinel errors for errors.Is comparisons

var (
	ErrUnknown            = &Error{Domain: Common, Code: UnknownError}
	ErrInvalidOption      = &Error{Domain: Common, Code: InvalidOption}
	ErrInvalidDID         = &Error{Domain: Common, Code: InvalidDID}
	ErrInvalidJSON        = &Error{Domain: Common, Code: InvalidJSON}
	ErrBufferTooSmall     = &Error{Domain: Common, Code: BufferTooSmall}
	ErrInvalidState       = &Error{Domain: Common, Code: InvalidState}
	ErrNotInitialized     = &Error{Domain: Common, Code: NotInitialized}
	ErrAlreadyInitialized = &Error{Domain: Common, Code: AlreadyInitialized}

	ErrInvalidSchemaHandle = &Error{Domain: Schema, Code: InvalidSchemaHandle}
	ErrSchemaNotCommitted  = &Error{Domain: Schema, Code: SchemaNotCommitted}

	ErrInvalidCredDefHandle  = &Error{Domain: CredDef, Code: InvalidCredDefHandle}
	ErrCredDefAlreadyCreated = &Error{Domain: CredDef, Code: CredDefAlreadyCreated}
	ErrCredDefNotCommitted   = &Error{Domain: CredDef, Code: CredDefNotCommitted}

	ErrInvalidWalletHandle = &Error{Domain: Wallet, Code: InvalidWalletHandle}
	ErrDuplicateWallet     = &Error{Domain: Wallet, Code: DuplicateWallet}
	ErrTooManyOpenWallets  = &Error{Domain: Wallet, Code: TooManyOpenWallets}

	ErrInvalidConnectionHandle = &Error{Domain: Connection, Code: InvalidConnectionHandle}
	ErrConnectionNotReady      = &Error{Domain: Connection, Code: ConnectionNotReady}
)
