package state

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"

	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
	"github.com/clawnch/ledger/store"
	"github.com/clawnch/ledger/store/database"
	"github.com/clawnch/ledger/store/kvstore"
)

//
// ------------------------- StoreView -------------------------
//

// StoreView reads through to the database and stages every write in memory.
// Nothing reaches the database until Save, which writes all staged entries in
// one batch.
type StoreView struct {
	db     database.Database
	writes map[string][]byte // nil value marks a deletion
}

// NewStoreView creates an instance of the StoreView
func NewStoreView(db database.Database) *StoreView {
	return &StoreView{
		db:     db,
		writes: make(map[string][]byte),
	}
}

// Get returns the value corresponding the key, nil if absent
func (sv *StoreView) Get(key []byte) ([]byte, error) {
	if value, ok := sv.writes[string(key)]; ok {
		return value, nil
	}
	value, err := sv.db.Get(key)
	if err == store.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read key %x", key)
	}
	return value, nil
}

// Set stages the value for the key
func (sv *StoreView) Set(key []byte, value []byte) {
	if value == nil {
		value = []byte{}
	}
	sv.writes[string(key)] = value
}

// Delete stages the removal of the key
func (sv *StoreView) Delete(key []byte) {
	sv.writes[string(key)] = nil
}

// Dirty reports whether any write is staged
func (sv *StoreView) Dirty() bool {
	return len(sv.writes) > 0
}

// Save writes the staged entries to the database as one atomic batch.
func (sv *StoreView) Save() error {
	if !sv.Dirty() {
		return nil
	}

	keys := make([]string, 0, len(sv.writes))
	for key := range sv.writes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	batch := sv.db.NewBatch()
	for _, key := range keys {
		value := sv.writes[key]
		var err error
		if value == nil {
			err = batch.Delete([]byte(key))
		} else {
			err = batch.Put([]byte(key), value)
		}
		if err != nil {
			return errors.Wrap(err, "failed to stage ledger write")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "failed to commit ledger batch")
	}

	sv.writes = make(map[string][]byte)
	return nil
}

func (sv *StoreView) getRecord(key []byte, record interface{}) (bool, error) {
	raw, err := sv.Get(key)
	if err != nil || raw == nil {
		return false, err
	}
	if err := kvstore.Decode(raw, record); err != nil {
		return false, errors.Wrapf(err, "failed to decode record %x", key)
	}
	return true, nil
}

func (sv *StoreView) setRecord(key []byte, record interface{}) error {
	raw, err := kvstore.Encode(record)
	if err != nil {
		return errors.Wrapf(err, "failed to encode record %x", key)
	}
	sv.Set(key, raw)
	return nil
}

// GetFeeConfig returns the fee configuration stored under id, nil if absent.
func (sv *StoreView) GetFeeConfig(id types.AccountID) (*types.FeeConfig, error) {
	fc := &types.FeeConfig{}
	found, err := sv.getRecord(FeeConfigKey(id), fc)
	if !found {
		return nil, err
	}
	return fc, nil
}

// SetFeeConfig re-validates the configuration before staging it.
func (sv *StoreView) SetFeeConfig(id types.AccountID, fc *types.FeeConfig) error {
	if err := fc.Validate(); err != nil {
		return err
	}
	return sv.setRecord(FeeConfigKey(id), fc)
}

func (sv *StoreView) GetFeeVault(id types.AccountID) (*types.FeeVault, error) {
	fv := &types.FeeVault{}
	found, err := sv.getRecord(FeeVaultKey(id), fv)
	if !found {
		return nil, err
	}
	return fv, nil
}

func (sv *StoreView) SetFeeVault(id types.AccountID, fv *types.FeeVault) error {
	return sv.setRecord(FeeVaultKey(id), fv)
}

func (sv *StoreView) GetTreasury(id types.AccountID) (*types.TokenTreasury, error) {
	tr := &types.TokenTreasury{}
	found, err := sv.getRecord(TreasuryKey(id), tr)
	if !found {
		return nil, err
	}
	return tr, nil
}

func (sv *StoreView) SetTreasury(id types.AccountID, tr *types.TokenTreasury) error {
	return sv.setRecord(TreasuryKey(id), tr)
}

// GetStakingVault returns the vault of user, nil if the user never staked.
func (sv *StoreView) GetStakingVault(user types.AccountID) (*types.StakingVault, error) {
	vault := &types.StakingVault{}
	found, err := sv.getRecord(StakingVaultKey(user), vault)
	if !found {
		return nil, err
	}
	return vault, nil
}

func (sv *StoreView) SetStakingVault(user types.AccountID, vault *types.StakingVault) error {
	return sv.setRecord(StakingVaultKey(user), vault)
}

// ListStakingVaults returns every staking vault, staged writes included, in key order.
func (sv *StoreView) ListStakingVaults() ([]*types.StakingVault, error) {
	prefix := StakingVaultKeyPrefix()
	raws := make(map[string][]byte)
	err := sv.db.Iterate(prefix, func(key, value []byte) bool {
		raws[string(key)] = value
		return true
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to iterate staking vaults")
	}
	for key, value := range sv.writes {
		if !bytes.HasPrefix([]byte(key), prefix) {
			continue
		}
		if value == nil {
			delete(raws, key)
		} else {
			raws[key] = value
		}
	}

	keys := make([]string, 0, len(raws))
	for key := range raws {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	vaults := make([]*types.StakingVault, 0, len(keys))
	for _, key := range keys {
		vault := &types.StakingVault{}
		if err := kvstore.Decode(raws[key], vault); err != nil {
			return nil, errors.Wrapf(err, "failed to decode staking vault %x", key)
		}
		vaults = append(vaults, vault)
	}
	return vaults, nil
}

// GetTotalStaked returns the principal held by all staking vaults. The
// treasury custodies it, so that much of the treasury balance is reserved.
func (sv *StoreView) GetTotalStaked() (uint64, error) {
	var total uint64
	_, err := sv.getRecord(TotalStakedKey(), &total)
	return total, err
}

// SetTotalStaked stages a new total principal.
func (sv *StoreView) SetTotalStaked(total uint64) error {
	return sv.setRecord(TotalStakedKey(), total)
}

//
// ------------------------- Balances -------------------------
//

// GetBalance returns the token balance of id, zero for unknown accounts.
func (sv *StoreView) GetBalance(id types.AccountID) (uint64, error) {
	var balance uint64
	_, err := sv.getRecord(BalanceKey(id), &balance)
	return balance, err
}

// SetBalance stages a new balance for id.
func (sv *StoreView) SetBalance(id types.AccountID, balance uint64) error {
	return sv.setRecord(BalanceKey(id), balance)
}

// Credit adds amount to the balance of id, failing with ErrOverflow past u64.
func (sv *StoreView) Credit(id types.AccountID, amount uint64) (uint64, error) {
	balance, err := sv.GetBalance(id)
	if err != nil {
		return 0, err
	}
	updated, err := types.CheckedAdd(balance, amount)
	if err != nil {
		return 0, errors.Wrapf(err, "credit %v", id)
	}
	return updated, sv.SetBalance(id, updated)
}

// Debit subtracts amount from the balance of id, failing with
// ErrInsufficientBalance instead of going below zero.
func (sv *StoreView) Debit(id types.AccountID, amount uint64) (uint64, error) {
	balance, err := sv.GetBalance(id)
	if err != nil {
		return 0, err
	}
	if amount > balance {
		return 0, errors.Wrapf(result.ErrInsufficientBalance, "debit %v: balance %v, requested %v", id, balance, amount)
	}
	updated := balance - amount
	return updated, sv.SetBalance(id, updated)
}
