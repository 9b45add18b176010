package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OFFER-HUB/protocol-offer-hub/app"
)

var ErrNoAccount = errors.New(
	"no account given and no key configured, pass an address or run 'offerhub key generate'",
)

// OpenSession builds a contract client from the loaded configuration.
func OpenSession() (*app.Session, func(), error) {
	if err := Config.Network.Validate(); err != nil {
		return nil, nil, err
	}
	return app.NewSession(Logger, Config, app.TerminalPrompt())
}

// CommandContext is cancelled on interrupt or termination.
func CommandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// ResolveAccount resolves an alias or literal address, defaulting to the configured key's
// account when arg is empty.
func ResolveAccount(session *app.Session, arg string) (string, error) {
	if arg != "" {
		return session.Book.Resolve(arg)
	}
	if session.Key == nil {
		return "", ErrNoAccount
	}
	return session.Key.Address(), nil
}
