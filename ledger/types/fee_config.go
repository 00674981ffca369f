package types

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/clawnch/ledger/ledger/types/result"
)

// Default split, 10/20/35/35.
const (
	DefaultProtocolBps uint16 = 1000
	DefaultCreatorBps  uint16 = 2000
	DefaultBuybackBps  uint16 = 3500
	DefaultStakingBps  uint16 = 3500
)

// FeeConfig specifies how a trading fee is split among the four destinations.
// The four shares always sum to exactly BpsDenominator.
type FeeConfig struct {
	Authority   AccountID // Identity allowed to update the configuration
	ProtocolBps uint16    // Share credited to the fee vault
	CreatorBps  uint16    // Share transferred to the token creator
	BuybackBps  uint16    // Share credited to the treasury for buybacks
	StakingBps  uint16    // Share credited to the staking reward pool
}

// NewFeeConfig returns a validated FeeConfig.
func NewFeeConfig(authority AccountID, protocolBps, creatorBps, buybackBps, stakingBps uint16) (*FeeConfig, error) {
	fc := &FeeConfig{
		Authority:   authority,
		ProtocolBps: protocolBps,
		CreatorBps:  creatorBps,
		BuybackBps:  buybackBps,
		StakingBps:  stakingBps,
	}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return fc, nil
}

// DefaultFeeConfig returns the 1000/2000/3500/3500 split owned by authority.
func DefaultFeeConfig(authority AccountID) *FeeConfig {
	return &FeeConfig{
		Authority:   authority,
		ProtocolBps: DefaultProtocolBps,
		CreatorBps:  DefaultCreatorBps,
		BuybackBps:  DefaultBuybackBps,
		StakingBps:  DefaultStakingBps,
	}
}

// TotalBps sums the four shares without wrapping.
func (fc *FeeConfig) TotalBps() uint32 {
	return uint32(fc.ProtocolBps) + uint32(fc.CreatorBps) + uint32(fc.BuybackBps) + uint32(fc.StakingBps)
}

// Validate checks that the shares sum to exactly 10000 bps.
func (fc *FeeConfig) Validate() error {
	if total := fc.TotalBps(); total != uint32(BpsDenominator) {
		return errors.Wrapf(result.ErrInvalidFeeConfig, "shares sum to %v bps, expected %v", total, BpsDenominator)
	}
	return nil
}

func (fc *FeeConfig) String() string {
	if fc == nil {
		return "nil-FeeConfig"
	}
	return fmt.Sprintf("FeeConfig{%v protocol:%v creator:%v buyback:%v staking:%v}",
		fc.Authority.Hex(), fc.ProtocolBps, fc.CreatorBps, fc.BuybackBps, fc.StakingBps)
}
