package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/logging"
	"github.com/rputra/rootcalc/internal/server"
)

// runServe starts the HTTP API and blocks until shutdown.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(os.Stderr, "server")
	srv := server.New(a.Config.Addr, a.Factory, logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
