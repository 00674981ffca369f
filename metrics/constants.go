package metrics

const namespace = "clawnch"

const (
	MOperations = "ledger_operations_total"

	MFeesDistributed = "fees_distributed_total"
	MFeeDust         = "fee_dust_total"
	MBuybacks        = "buyback_amount_total"
	MFeesWithdrawn   = "fees_withdrawn_total"
	MDeposits        = "deposit_amount_total"
	MStaked          = "staked_amount_total"
	MUnstaked        = "unstaked_principal_total"
	MRewardsPaid     = "rewards_paid_total"

	MRPCRequests = "rpc_requests_total"
	MRPCDuration = "rpc_request_duration_seconds"
)

// Labels
const (
	LOperation = "operation"
	LResult    = "result"
	LBucket    = "bucket"
	LMethod    = "method"
)

// Fee buckets
const (
	BucketProtocol = "protocol"
	BucketCreator  = "creator"
	BucketBuyback  = "buyback"
	BucketStaking  = "staking"
)
