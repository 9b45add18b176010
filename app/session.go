package app

import (
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/aliases"
	"github.com/OFFER-HUB/protocol-offer-hub/offerhub"
	"github.com/OFFER-HUB/protocol-offer-hub/signer"
	"github.com/OFFER-HUB/protocol-offer-hub/transport/grpcledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	tstore "github.com/OFFER-HUB/protocol-offer-hub/types/store"
)

// Session is a contract client ready for use together with the local state
// it was built from. Journal is nil when the journal is disabled and Key is
// nil when no key file exists.
type Session struct {
	Client  *offerhub.Client
	Journal tstore.JournalStore
	Book    *aliases.Book
	Key     *signer.Key
}

func newSession(
	client *offerhub.Client,
	journal tstore.JournalStore,
	book *aliases.Book,
	key *signer.Key,
) *Session {
	return &Session{
		Client:  client,
		Journal: journal,
		Book:    book,
		Key:     key,
	}
}

// Relay serves the ledger RPC of an upstream endpoint on a local listener.
type Relay struct {
	Server *grpcledger.Server
	logger *zap.Logger
}

func newRelay(upstream ledger.Transport, logger *zap.Logger) *Relay {
	return &Relay{
		Server: grpcledger.NewServer(upstream, logger),
		logger: logger.With(zap.String("process", "relay")),
	}
}
