package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clawnch/ledger/core"
	"github.com/clawnch/ledger/node"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start Clawnch ledger node.",
	Run:   runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) {
	accounts, err := node.LoadAccounts()
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Invalid protocol accounts")
	}
	authorizer, err := node.LoadAuthorizer()
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Invalid authorizer config")
	}

	dataPath := getDataPath()
	db, err := node.OpenDatabase(dataPath)
	if err != nil {
		log.WithFields(log.Fields{"err": err, "path": dataPath}).Fatal("Failed to open the db")
	}

	n, err := node.NewNode(&node.Params{
		DB:         db,
		Accounts:   accounts,
		Clock:      core.NewSystemClock(),
		Authorizer: authorizer,
	})
	if err != nil {
		db.Close()
		log.WithFields(log.Fields{"err": err}).Fatal("Failed to create node")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := n.Start(ctx); err != nil {
		n.Stop()
		n.Wait()
		log.WithFields(log.Fields{"err": err}).Fatal("Failed to start node")
	}
	log.WithFields(log.Fields{"treasury": accounts.Treasury, "feeVault": accounts.FeeVault}).Info("Clawnch ledger started")

	<-ctx.Done()
	n.Stop()
	if err := n.Wait(); err != nil {
		log.WithFields(log.Fields{"err": err}).Error("Node stopped with error")
	}
}
