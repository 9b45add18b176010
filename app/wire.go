//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/transport/grpcledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

var configSet = wire.NewSet(
	wire.FieldsOf(new(*config.Config), "Network", "Key", "DB", "Alias"),
)

var storeSet = wire.NewSet(
	provideJournal,
	provideBook,
)

var transportSet = wire.NewSet(
	provideTransport,
	wire.Bind(new(ledger.Transport), new(*grpcledger.Client)),
)

var signerSet = wire.NewSet(
	provideKey,
	provideSigner,
)

var clientSet = wire.NewSet(
	configSet,
	storeSet,
	transportSet,
	signerSet,
	provideClient,
)

func NewSession(*zap.Logger, *config.Config, Prompt) (*Session, func(), error) {
	panic(wire.Build(clientSet, newSession))
}

func NewRelay(*zap.Logger, *config.Config) (*Relay, func(), error) {
	panic(wire.Build(configSet, transportSet, newRelay))
}
