package result

import "strconv"

type ErrorCode int

const (
	CodeOK ErrorCode = 0

	CodeGenericError ErrorCode = 10000

	// Ledger core, 10100 ~ 10199
	CodeInvalidFeeConfig               ErrorCode = 10101
	CodeInvalidAmount                  ErrorCode = 10102
	CodeInsufficientBalance            ErrorCode = 10103
	CodeInsufficientTreasuryBalance    ErrorCode = 10104
	CodeInsufficientTreasuryForRewards ErrorCode = 10105
	CodeNothingStaked                  ErrorCode = 10106
	CodeUnauthorized                   ErrorCode = 10107
	CodeOverflow                       ErrorCode = 10108
	CodeConfigExists                   ErrorCode = 10109
	CodeConfigNotFound                 ErrorCode = 10110
	CodeInvalidAuthority               ErrorCode = 10111
	CodeInvalidAccount                 ErrorCode = 10112

	// Host surface, 10200 ~ 10299
	CodeInvalidParams  ErrorCode = 10201
	CodeUnknownMethod  ErrorCode = 10202
	CodeStorageFailure ErrorCode = 10203
)

var codeNames = map[ErrorCode]string{
	CodeOK:                             "ok",
	CodeGenericError:                   "generic_error",
	CodeInvalidFeeConfig:               "invalid_fee_config",
	CodeInvalidAmount:                  "invalid_amount",
	CodeInsufficientBalance:            "insufficient_balance",
	CodeInsufficientTreasuryBalance:    "insufficient_treasury_balance",
	CodeInsufficientTreasuryForRewards: "insufficient_treasury_for_rewards",
	CodeNothingStaked:                  "nothing_staked",
	CodeUnauthorized:                   "unauthorized",
	CodeOverflow:                       "overflow",
	CodeConfigExists:                   "config_exists",
	CodeConfigNotFound:                 "config_not_found",
	CodeInvalidAuthority:               "invalid_authority",
	CodeInvalidAccount:                 "invalid_account",
	CodeInvalidParams:                  "invalid_params",
	CodeUnknownMethod:                  "unknown_method",
	CodeStorageFailure:                 "storage_failure",
}

func (code ErrorCode) String() string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	return "code_" + strconv.Itoa(int(code))
}
