package app

import (
	"context"

	"github.com/multiformats/go-multiaddr"
	mn "github.com/multiformats/go-multiaddr/net"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/OFFER-HUB/protocol-offer-hub/transport/grpcledger"
)

// Serve listens on listenAddr, a multiaddr, until ctx is done.
func (r *Relay) Serve(ctx context.Context, listenAddr string) error {
	ma, err := multiaddr.NewMultiaddr(listenAddr)
	if err != nil {
		return errors.Wrap(err, "serve")
	}

	lis, err := mn.Listen(ma)
	if err != nil {
		return errors.Wrap(err, "serve")
	}

	s := grpc.NewServer(grpcledger.ServerOptions()...)
	grpcledger.RegisterLedgerServer(s, r.Server)
	grpcledger.InitializeMetrics(s)

	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	r.logger.Info("relay listening", zap.String("addr", lis.Multiaddr().String()))
	err = s.Serve(mn.NetListener(lis))
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return errors.Wrap(err, "serve")
	}
	return nil
}
