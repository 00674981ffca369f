package common

import (
	"github.com/spf13/viper"
)

const (
	// CfgConfigPath defines custom config path
	CfgConfigPath = "config.path"

	// CfgDataPath defines custom DB path
	CfgDataPath = "data.path"

	// CfgStorageBackend selects the key/value backend: "leveldb", "badger" or "memory".
	CfgStorageBackend = "storage.backend"
	// CfgStorageCacheSize is the number of ledger entries kept in the read cache, 0 disables it.
	CfgStorageCacheSize = "storage.cacheSize"
	// CfgStorageLevelDBCache is the leveldb block cache in MiB.
	CfgStorageLevelDBCache = "storage.leveldbCache"
	// CfgStorageLevelDBHandles is the number of open files leveldb may keep.
	CfgStorageLevelDBHandles = "storage.leveldbHandles"

	// CfgProtocolConfigID is the account id of the fee configuration entry.
	CfgProtocolConfigID = "protocol.configID"
	// CfgProtocolFeeVaultID is the account id of the fee vault.
	CfgProtocolFeeVaultID = "protocol.feeVaultID"
	// CfgProtocolTreasuryID is the account id of the token treasury.
	CfgProtocolTreasuryID = "protocol.treasuryID"
	// CfgProtocolStakingPoolID is the account id credited with the staking share of fees.
	// Left empty, the treasury receives it.
	CfgProtocolStakingPoolID = "protocol.stakingPoolID"
	// CfgProtocolMintID is the token mint the treasury holds.
	CfgProtocolMintID = "protocol.mintID"
	// CfgProtocolAuthorizedCallers restricts privileged operations to the listed
	// ids, comma separated. Empty defers to the stored authority alone.
	CfgProtocolAuthorizedCallers = "protocol.authorizedCallers"

	// CfgFeeProtocolBps is the default protocol share used by `init`.
	CfgFeeProtocolBps = "fee.protocolBps"
	// CfgFeeCreatorBps is the default creator share used by `init`.
	CfgFeeCreatorBps = "fee.creatorBps"
	// CfgFeeBuybackBps is the default buyback share used by `init`.
	CfgFeeBuybackBps = "fee.buybackBps"
	// CfgFeeStakingBps is the default staking share used by `init`.
	CfgFeeStakingBps = "fee.stakingBps"

	// CfgEventBufferSize is the capacity of the in-process event channel.
	CfgEventBufferSize = "event.bufferSize"

	// CfgRPCEnabled sets whether to run RPC service.
	CfgRPCEnabled = "rpc.enabled"
	// CfgRPCAddress sets the binding address of RPC service.
	CfgRPCAddress = "rpc.address"
	// CfgRPCPort sets the port of RPC service.
	CfgRPCPort = "rpc.port"
	// CfgRPCMaxConnections limits concurrent connections accepted by RPC server.
	CfgRPCMaxConnections = "rpc.maxConnections"
	// CfgRPCTimeoutSecs set a timeout for RPC.
	CfgRPCTimeoutSecs = "rpc.timeoutSecs"

	// CfgMetricsServer is the address of a standalone prometheus endpoint. The
	// RPC server exposes /metrics regardless.
	CfgMetricsServer = "metrics.server"

	// CfgLogLevels sets the log level.
	CfgLogLevels = "log.levels"
)

// InitialConfig is the default configuration produced by init command.
const InitialConfig = `# Clawnch ledger configuration
storage:
  backend: leveldb
rpc:
  enabled: true
  port: 16900
fee:
  protocolBps: 1000
  creatorBps: 2000
  buybackBps: 3500
  stakingBps: 3500
`

func init() {
	viper.SetDefault(CfgStorageBackend, "leveldb")
	viper.SetDefault(CfgStorageCacheSize, 4096)
	viper.SetDefault(CfgStorageLevelDBCache, 256)
	viper.SetDefault(CfgStorageLevelDBHandles, 0)

	viper.SetDefault(CfgProtocolConfigID, "")
	viper.SetDefault(CfgProtocolFeeVaultID, "")
	viper.SetDefault(CfgProtocolTreasuryID, "")
	viper.SetDefault(CfgProtocolStakingPoolID, "")
	viper.SetDefault(CfgProtocolMintID, "")
	viper.SetDefault(CfgProtocolAuthorizedCallers, "")

	viper.SetDefault(CfgFeeProtocolBps, 1000)
	viper.SetDefault(CfgFeeCreatorBps, 2000)
	viper.SetDefault(CfgFeeBuybackBps, 3500)
	viper.SetDefault(CfgFeeStakingBps, 3500)

	viper.SetDefault(CfgEventBufferSize, 1024)

	viper.SetDefault(CfgRPCEnabled, true)
	viper.SetDefault(CfgRPCAddress, "0.0.0.0")
	viper.SetDefault(CfgRPCPort, "16900")
	viper.SetDefault(CfgRPCMaxConnections, 200)
	viper.SetDefault(CfgRPCTimeoutSecs, 60)

	viper.SetDefault(CfgMetricsServer, "")

	viper.SetDefault(CfgLogLevels, "*:info")
}

// WriteInitialConfig writes initial config file to file system.
func WriteInitialConfig(filePath string) error {
	return WriteFileAtomic(filePath, []byte(InitialConfig), 0600)
}
