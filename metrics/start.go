package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/common/util"
)

var logger = util.GetLoggerForModule("metrics")

// Start serves the registry on the standalone address configured under
// metrics.server until ctx is cancelled. It returns immediately when no
// address is configured.
func Start(ctx context.Context, m *Metrics) {
	mserver := viper.GetString(common.CfgMetricsServer)
	if mserver == "" || m == nil {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              mserver,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Serving metrics on %v", mserver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("Metrics server stopped: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()
}
