package grpcledger

import (
	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
)

var (
	clientMetrics = grpcprom.NewClientMetrics(
		grpcprom.WithClientHandlingTimeHistogram(),
	)
	serverMetrics = grpcprom.NewServerMetrics(
		grpcprom.WithServerHandlingTimeHistogram(),
	)
)

func init() {
	prometheus.MustRegister(clientMetrics, serverMetrics)
}

// ServerOptions returns the message limits and per-RPC metrics every ledger
// server runs with.
func ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.MaxRecvMsgSize(MaxMessageSize),
		grpc.MaxSendMsgSize(MaxMessageSize),
		grpc.ChainUnaryInterceptor(serverMetrics.UnaryServerInterceptor()),
	}
}

// InitializeMetrics zeroes the per-method series for every service
// registered on s.
func InitializeMetrics(s *grpc.Server) {
	serverMetrics.InitializeMetrics(s)
}
