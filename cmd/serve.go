package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/bumlambs-max/Accounting-2.0/server"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr   string
	backup string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the book as an HTTP service" }
func (*serveCmd) Usage() string {
	return `fbk serve [-addr <addr>] [-backup <dir>]

  Serves the book over HTTP: clients post events and read reports, and
  every change is debounced to the remote store. The local book file is
  kept as a mirror of the served state.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to FARMBOOK_ADDR.")
	f.StringVar(&c.backup, "backup", "", "Directory for nightly JSON exports. Empty disables them.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := config()
	addr := c.addr
	if addr == "" {
		addr = cfg.Addr
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating logger:", err)
		return subcommands.ExitFailure
	}
	defer logger.Sync()

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if _, err := ownerKey(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	store, cleanup, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	session := accounting.NewSession(b, store,
		accounting.WithLogger(logger),
		accounting.WithDebounce(cfg.Debounce),
		accounting.WithMirror(cfg.BookFile),
	)
	// A fresh store has no book yet, serving the local one is fine.
	if err := session.Open(ctx); err != nil {
		log.Println("warning, could not sync with the store, serving the local book:", err)
	}
	defer session.Close()

	if c.backup != "" {
		backup := server.NewBackup(session, c.backup, logger)
		backup.Start()
		defer backup.Stop()
	}

	srv := server.New(session, logger)
	logger.Info("serving farm books", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
