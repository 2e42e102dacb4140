package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	goerrors "github.com/go-errors/errors"

	"github.com/nocturnecity/image-reframer/internal"
)

// Build metadata variables, set by -ldflags at compile time.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(internal.LoadConfig(), os.Stdout)
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "reframer: %v\n", err)
		var stackErr *goerrors.Error
		if strings.EqualFold(a.logLVL, "debug") && errors.As(err, &stackErr) {
			fmt.Fprintln(os.Stderr, string(stackErr.Stack()))
		}
		stop()
		os.Exit(1)
	}
}
