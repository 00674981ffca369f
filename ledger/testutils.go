package ledger

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/clawnch/ledger/core"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/metrics"
	"github.com/clawnch/ledger/store/database"
	"github.com/clawnch/ledger/store/database/backend"
)

var testGenesisTime = time.Unix(1700000000, 0)

type testLedger struct {
	*Ledger
	clock   *clockwork.FakeClock
	sink    *core.ChannelSink
	metrics *metrics.Metrics

	authority types.AccountID
}

func newTestLedger() *testLedger {
	return newTestLedgerWithDB(backend.NewMemDatabase())
}

func newTestLedgerWithDB(db database.Database) *testLedger {
	tl := &testLedger{
		clock:     clockwork.NewFakeClockAt(testGenesisTime),
		sink:      core.NewChannelSink(1024),
		metrics:   metrics.New(),
		authority: types.TestAccountID("authority"),
	}
	ledger, err := NewLedger(Params{
		DB:        db,
		Accounts:  types.TestAccounts(),
		Clock:     core.NewClock(tl.clock),
		EventSink: tl.sink,
		Metrics:   tl.metrics,
	})
	if err != nil {
		panic(err)
	}
	tl.Ledger = ledger
	return tl
}

func (tl *testLedger) initDefaultConfig() {
	_, err := tl.InitializeConfig(tl.authority,
		types.DefaultProtocolBps, types.DefaultCreatorBps, types.DefaultBuybackBps, types.DefaultStakingBps)
	if err != nil {
		panic(err)
	}
}

// drain returns the events emitted so far.
func (tl *testLedger) drain() []types.Event {
	events := []types.Event{}
	for {
		select {
		case event := <-tl.sink.Events():
			events = append(events, event)
		default:
			return events
		}
	}
}
