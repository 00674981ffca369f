package execution

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/clawnch/ledger/core"
	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/store/database"
	"github.com/clawnch/ledger/store/database/backend"
)

// --------------- Test Utilities --------------- //

var testGenesisTime = time.Unix(1700000000, 0)

type execTest struct {
	db       database.Database
	state    *st.LedgerState
	clock    *clockwork.FakeClock
	accounts types.Accounts
	executor *Executor

	authority types.AccountID
	alice     types.AccountID
	bob       types.AccountID
	creator   types.AccountID
}

func newExecTest() *execTest {
	return newExecTestWithDB(backend.NewMemDatabase(), core.AllowAll)
}

func newExecTestWithDB(db database.Database, authorizer core.Authorizer) *execTest {
	et := &execTest{
		db:        db,
		state:     st.NewLedgerState(db),
		clock:     clockwork.NewFakeClockAt(testGenesisTime),
		accounts:  types.TestAccounts(),
		authority: types.TestAccountID("authority"),
		alice:     types.TestAccountID("alice"),
		bob:       types.TestAccountID("bob"),
		creator:   types.TestAccountID("creator"),
	}
	et.executor = NewExecutor(et.state, et.accounts, core.NewClock(et.clock), authorizer)
	return et
}

func (et *execTest) exec(tx types.Tx) (types.Event, error) {
	return et.executor.ExecuteTx(tx)
}

func (et *execTest) initConfig() {
	_, err := et.exec(&types.InitConfigTx{
		Caller:      et.authority,
		ProtocolBps: types.DefaultProtocolBps,
		CreatorBps:  types.DefaultCreatorBps,
		BuybackBps:  types.DefaultBuybackBps,
		StakingBps:  types.DefaultStakingBps,
	})
	if err != nil {
		panic(err)
	}
}

func (et *execTest) deposit(id types.AccountID, amount uint64) {
	if _, err := et.exec(&types.DepositTx{Account: id, Amount: amount}); err != nil {
		panic(err)
	}
}

func (et *execTest) balance(id types.AccountID) uint64 {
	var balance uint64
	err := et.state.View(func(view *st.StoreView) error {
		var err error
		balance, err = view.GetBalance(id)
		return err
	})
	if err != nil {
		panic(err)
	}
	return balance
}

func (et *execTest) totalStaked() uint64 {
	var total uint64
	err := et.state.View(func(view *st.StoreView) error {
		var err error
		total, err = view.GetTotalStaked()
		return err
	})
	if err != nil {
		panic(err)
	}
	return total
}

func (et *execTest) vault(user types.AccountID) *types.StakingVault {
	var vault *types.StakingVault
	err := et.state.View(func(view *st.StoreView) error {
		var err error
		vault, err = view.GetStakingVault(user)
		return err
	})
	if err != nil {
		panic(err)
	}
	return vault
}

func (et *execTest) advance(d time.Duration) {
	et.clock.Advance(d)
}

// failOnDemandDatabase fails every batch write while armed.
type failOnDemandDatabase struct {
	*backend.MemDatabase
	fail bool
}

type failOnDemandBatch struct {
	database.Batch
	db *failOnDemandDatabase
}

func (db *failOnDemandDatabase) NewBatch() database.Batch {
	return &failOnDemandBatch{Batch: db.MemDatabase.NewBatch(), db: db}
}

func (b *failOnDemandBatch) Write() error {
	if b.db.fail {
		return errStorage
	}
	return b.Batch.Write()
}

type storageError struct{}

func (storageError) Error() string { return "storage unavailable" }

var errStorage error = storageError{}
