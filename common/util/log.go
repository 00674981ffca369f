package util

import (
	"os"
	"strings"
	"sync"

	isatty "github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/clawnch/ledger/common"
)

const defaultLogLevel = "warn"

var (
	logLevels map[string]string
	loggers   = map[string]*log.Entry{}
	mu        sync.Mutex
)

func init() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	customFormatter.DisableColors = !isatty.IsTerminal(os.Stdout.Fd())
	log.SetFormatter(customFormatter)

	logLevels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
}

// InitLog re-reads the log level config. It is called once the config file is loaded.
func InitLog() {
	mu.Lock()
	defer mu.Unlock()

	logLevels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
	if lvl, err := log.ParseLevel(logLevels["*"]); err == nil {
		log.SetLevel(lvl)
	}
	for module, entry := range loggers {
		entry.Logger.SetLevel(levelForModule(module))
	}
}

// GetLoggerForModule returns a logger whose level follows the per-module setting
// in `log.levels`, e.g. "*:info,ledger:debug".
func GetLoggerForModule(module string) *log.Entry {
	mu.Lock()
	defer mu.Unlock()

	if entry, ok := loggers[module]; ok {
		entry.Logger.SetLevel(levelForModule(module))
		return entry
	}

	logger := log.New()
	logger.Formatter = log.StandardLogger().Formatter
	logger.Out = log.StandardLogger().Out
	logger.SetLevel(levelForModule(module))

	entry := logger.WithFields(log.Fields{"prefix": module})
	loggers[module] = entry
	return entry
}

func levelForModule(module string) log.Level {
	lvlStr, ok := logLevels[module]
	if !ok {
		lvlStr = logLevels["*"]
	}
	lvl, err := log.ParseLevel(lvlStr)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

func parseLogLevelConfig(cfg string) map[string]string {
	ret := map[string]string{}
	for _, item := range strings.Split(cfg, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), ":", 2)
		if len(parts) != 2 {
			continue
		}
		ret[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if _, ok := ret["*"]; !ok {
		ret["*"] = defaultLogLevel
	}
	return ret
}
