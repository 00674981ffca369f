package types

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// AccountIDLength is the width of an account id in bytes.
const AccountIDLength = 32

// AccountID is an opaque fixed-width key supplied by the host environment. It
// addresses users, creators, vaults and configuration entries alike.
type AccountID [AccountIDLength]byte

// BytesToAccountID left-pads b to an AccountID, truncating from the left when b is too long.
func BytesToAccountID(b []byte) AccountID {
	var id AccountID
	if len(b) > AccountIDLength {
		b = b[len(b)-AccountIDLength:]
	}
	copy(id[AccountIDLength-len(b):], b)
	return id
}

// HexToAccountID parses a 0x-prefixed hex string of at most 32 bytes.
func HexToAccountID(s string) (AccountID, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return AccountID{}, errors.Wrapf(err, "invalid account id %q", s)
	}
	if len(b) > AccountIDLength {
		return AccountID{}, errors.Errorf("account id %q longer than %v bytes", s, AccountIDLength)
	}
	return BytesToAccountID(b), nil
}

// DeriveAccountID deterministically derives an id from seeds, e.g.
// DeriveAccountID([]byte("treasury"), mint[:]).
func DeriveAccountID(seeds ...[]byte) AccountID {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte("clawnch"))
	for _, seed := range seeds {
		hasher.Write(seed)
	}
	return BytesToAccountID(hasher.Sum(nil))
}

// StakingVaultID is the identifier reported for the staking vault of user.
func StakingVaultID(user AccountID) AccountID {
	return DeriveAccountID([]byte("staking"), user[:])
}

func (id AccountID) Bytes() []byte { return id[:] }

func (id AccountID) Hex() string { return hexutil.Encode(id[:]) }

func (id AccountID) String() string { return id.Hex() }

func (id AccountID) IsZero() bool { return id == AccountID{} }

func (id AccountID) Equal(other AccountID) bool { return bytes.Equal(id[:], other[:]) }

// MarshalText implements encoding.TextMarshaler
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *AccountID) UnmarshalText(input []byte) error {
	parsed, err := HexToAccountID(string(input))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
