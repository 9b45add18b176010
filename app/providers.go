package app

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/aliases"
	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/offerhub"
	"github.com/OFFER-HUB/protocol-offer-hub/signer"
	"github.com/OFFER-HUB/protocol-offer-hub/store"
	"github.com/OFFER-HUB/protocol-offer-hub/transport/grpcledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	tstore "github.com/OFFER-HUB/protocol-offer-hub/types/store"
)

// Prompt is where a confirming signer reads answers and writes its summary.
type Prompt struct {
	In  *os.File
	Out *os.File
}

// TerminalPrompt talks to the process's stdin and stderr.
func TerminalPrompt() Prompt {
	return Prompt{In: os.Stdin, Out: os.Stderr}
}

func provideTransport(
	network *config.NetworkConfig,
) (*grpcledger.Client, func(), error) {
	conn, err := grpcledger.Dial(network)
	if err != nil {
		return nil, nil, err
	}
	return grpcledger.NewClient(conn, network.RPCTimeout), func() {
		conn.Close()
	}, nil
}

func provideJournal(
	logger *zap.Logger,
	dbConfig *config.DBConfig,
) (tstore.JournalStore, func(), error) {
	if dbConfig.Disabled {
		return nil, func() {}, nil
	}

	db, err := store.NewPebbleDB(logger, dbConfig)
	if err != nil {
		return nil, nil, err
	}
	return store.NewPebbleJournalStore(db, logger), func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing journal", zap.Error(err))
		}
	}, nil
}

func provideBook(alias *config.AliasConfig) (*aliases.Book, error) {
	return aliases.Open(alias.AddressBook)
}

// provideKey yields a nil key when the key file does not exist; the session
// is then read-only.
func provideKey(keyConfig *config.KeyConfig) (*signer.Key, error) {
	key, err := signer.LoadKey(keyConfig.KeyFile)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, nil
		}
		return nil, err
	}
	return key, nil
}

func provideSigner(
	key *signer.Key,
	keyConfig *config.KeyConfig,
	prompt Prompt,
	logger *zap.Logger,
) ledger.Signer {
	if key == nil {
		return nil
	}

	local := signer.NewLocalSigner(key, logger)
	if !keyConfig.Confirm {
		return local
	}
	return signer.NewConfirmingSigner(local, prompt.In, prompt.Out)
}

func provideClient(
	transport ledger.Transport,
	network *config.NetworkConfig,
	sig ledger.Signer,
	journal tstore.JournalStore,
	key *signer.Key,
	logger *zap.Logger,
) *offerhub.Client {
	opts := []offerhub.Option{offerhub.WithLogger(logger)}
	if sig != nil {
		opts = append(opts, offerhub.WithSigner(sig))
	}
	if journal != nil {
		opts = append(opts, offerhub.WithJournal(journal))
	}
	if key != nil {
		opts = append(opts, offerhub.WithAccount(key.Address()))
	}
	return offerhub.NewClient(transport, network, opts...)
}
