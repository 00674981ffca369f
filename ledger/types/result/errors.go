package result

import (
	"fmt"

	"github.com/pkg/errors"

	cres "github.com/clawnch/ledger/common/result"
)

// Error is a ledger error kind. Every failed ledger operation returns an error
// that wraps exactly one of the sentinels below.
type Error struct {
	Code    cres.ErrorCode
	Message string
}

// NewError creates an error kind with the given code.
func NewError(code cres.ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) String() string {
	return fmt.Sprintf("Error{code:%v, message:%v}", e.Code, e.Message)
}

var (
	ErrInvalidFeeConfig               = NewError(cres.CodeInvalidFeeConfig, "invalid fee configuration")
	ErrInvalidAmount                  = NewError(cres.CodeInvalidAmount, "invalid amount")
	ErrInsufficientBalance            = NewError(cres.CodeInsufficientBalance, "insufficient balance")
	ErrInsufficientTreasuryBalance    = NewError(cres.CodeInsufficientTreasuryBalance, "insufficient treasury balance")
	ErrInsufficientTreasuryForRewards = NewError(cres.CodeInsufficientTreasuryForRewards, "insufficient treasury balance for rewards")
	ErrNothingStaked                  = NewError(cres.CodeNothingStaked, "nothing staked")
	ErrUnauthorized                   = NewError(cres.CodeUnauthorized, "unauthorized")
	ErrOverflow                       = NewError(cres.CodeOverflow, "arithmetic overflow")
	ErrConfigExists                   = NewError(cres.CodeConfigExists, "fee configuration already initialized")
	ErrConfigNotFound                 = NewError(cres.CodeConfigNotFound, "fee configuration not initialized")
	ErrInvalidAuthority               = NewError(cres.CodeInvalidAuthority, "invalid authority")
	ErrInvalidAccount                 = NewError(cres.CodeInvalidAccount, "invalid account")
)

// CodeOf returns the code of the error kind wrapped by err, CodeOK for nil and
// CodeGenericError for errors that carry no kind (e.g. storage failures).
func CodeOf(err error) cres.ErrorCode {
	if err == nil {
		return cres.CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return cres.CodeGenericError
}
