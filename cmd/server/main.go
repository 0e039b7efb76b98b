// Command server serves the verb-root catalog over HTTP.
//
// Configuration comes from CONFIG_PATH (or ./config.yaml) and environment
// variables; see internal/config. Send SIGHUP to reload the catalog.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/cherokee-verbs/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Printf("server: %v", err)
		cancel()
		os.Exit(1)
	}
}
