package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hwgrade/cmd"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Interrupting stops the tests and kills their processes.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		if !errors.Is(err, cmd.ErrTestsFailed) {
			log.WithError(err).Error("Failed")
		}
		stop()
		os.Exit(1)
	}
}
