package node

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/common/util"
	"github.com/clawnch/ledger/core"
	ld "github.com/clawnch/ledger/ledger"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/metrics"
	"github.com/clawnch/ledger/rpc"
	"github.com/clawnch/ledger/store"
	"github.com/clawnch/ledger/store/database"
	"github.com/clawnch/ledger/store/kvstore"
)

var logger = util.GetLoggerForModule("node")

// SchemaVersion is the layout of the ledger records. A data directory written
// with another layout is refused.
const SchemaVersion uint64 = 1

var schemaKey = []byte("node/schema")

type Node struct {
	Store   store.Store
	DB      database.Database
	Ledger  *ld.Ledger
	Metrics *metrics.Metrics
	Events  *core.ChannelSink
	RPC     *rpc.ClawnchRPCServer

	eventLog core.EventSink

	// Life cycle
	group   *errgroup.Group
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

type Params struct {
	DB         database.Database
	Accounts   types.Accounts
	Clock      core.Clock
	Authorizer core.Authorizer
}

func NewNode(params *Params) (*Node, error) {
	kv := kvstore.NewKVStore(params.DB)
	if err := checkSchema(kv); err != nil {
		return nil, err
	}

	m := metrics.New()
	events := core.NewChannelSink(viper.GetInt(common.CfgEventBufferSize))
	ledger, err := ld.NewLedger(ld.Params{
		DB:         params.DB,
		Accounts:   params.Accounts,
		Clock:      params.Clock,
		Authorizer: params.Authorizer,
		EventSink:  events,
		Metrics:    m,
	})
	if err != nil {
		return nil, err
	}

	node := &Node{
		Store:    kv,
		DB:       params.DB,
		Ledger:   ledger,
		Metrics:  m,
		Events:   events,
		eventLog: core.NewLogSink(util.GetLoggerForModule("event")),
	}

	if viper.GetBool(common.CfgRPCEnabled) {
		node.RPC = rpc.NewClawnchRPCServer(ledger, m)
	}

	return node, nil
}

// checkSchema stamps an empty store with SchemaVersion and refuses a store
// stamped with anything else.
func checkSchema(kv store.Store) error {
	var version uint64
	err := kv.Get(schemaKey, &version)
	if err == store.ErrKeyNotFound {
		return kv.Put(schemaKey, SchemaVersion)
	}
	if err != nil {
		return errors.Wrap(err, "failed to read schema version")
	}
	if version != SchemaVersion {
		return errors.Errorf("data directory has schema version %v, expected %v", version, SchemaVersion)
	}
	return nil
}

// Start starts sub components and kick off the main loop.
func (n *Node) Start(ctx context.Context) error {
	c, cancel := context.WithCancel(ctx)
	n.ctx = c
	n.cancel = cancel

	n.group, c = errgroup.WithContext(c)
	n.group.Go(func() error {
		n.forwardEvents(c)
		return nil
	})

	if n.RPC != nil {
		if err := n.RPC.Start(c); err != nil {
			cancel()
			return err
		}
	}
	metrics.Start(c, n.Metrics)

	logger.Info("Node started")
	return nil
}

// forwardEvents hands committed ledger events to the event log until ctx is done.
func (n *Node) forwardEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			if dropped := n.Events.Dropped(); dropped > 0 {
				logger.Warnf("%v events dropped on a full buffer", dropped)
			}
			return
		case event := <-n.Events.Events():
			n.eventLog.Emit(event)
		}
	}
}

// Stop notifies all sub components to stop without blocking.
func (n *Node) Stop() {
	if n.cancel != nil {
		n.stopped = true
		n.cancel()
	}
}

// Wait blocks until all sub components stop, then closes the database.
func (n *Node) Wait() error {
	var err error
	if n.group != nil {
		err = n.group.Wait()
	}
	if n.RPC != nil {
		n.RPC.Wait()
	}
	n.DB.Close()
	return err
}
