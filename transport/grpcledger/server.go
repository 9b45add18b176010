package grpcledger

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

// Server exposes any ledger.Transport over gRPC.
type Server struct {
	backend ledger.Transport
	logger  *zap.Logger
}

var _ LedgerServer = (*Server)(nil)

func NewServer(backend ledger.Transport, logger *zap.Logger) *Server {
	return &Server{
		backend: backend,
		logger:  logger.Named("grpc_ledger_server"),
	}
}

func (s *Server) GetAccount(
	ctx context.Context,
	req *wrapperspb.StringValue,
) (*wrapperspb.BytesValue, error) {
	acct, err := s.backend.GetAccount(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("get account", err)
	}
	if acct == nil {
		return nil, s.toStatus("get account", ledger.ErrAccountNotFound)
	}
	return s.encode("get account", acct)
}

func (s *Server) GetLatestLedger(
	ctx context.Context,
	_ *emptypb.Empty,
) (*wrapperspb.UInt64Value, error) {
	latest, err := s.backend.GetLatestLedger(ctx)
	if err != nil {
		return nil, s.toStatus("get latest ledger", err)
	}
	return wrapperspb.UInt64(latest), nil
}

func (s *Server) Simulate(
	ctx context.Context,
	req *wrapperspb.BytesValue,
) (*wrapperspb.BytesValue, error) {
	res, err := s.backend.Simulate(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("simulate", err)
	}
	if res == nil {
		return nil, s.emptyResponse("simulate")
	}
	return s.encode("simulate", res)
}

func (s *Server) Submit(
	ctx context.Context,
	req *wrapperspb.BytesValue,
) (*wrapperspb.BytesValue, error) {
	res, err := s.backend.Submit(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("submit", err)
	}
	if res == nil {
		return nil, s.emptyResponse("submit")
	}
	return s.encode("submit", res)
}

func (s *Server) GetTransaction(
	ctx context.Context,
	req *wrapperspb.StringValue,
) (*wrapperspb.BytesValue, error) {
	res, err := s.backend.GetTransaction(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("get transaction", err)
	}
	if res == nil {
		res = &ledger.TransactionStatus{Status: ledger.TxNotFound}
	}
	return s.encode("get transaction", res)
}

type canonicalMessage interface {
	ToCanonicalBytes() ([]byte, error)
}

func (s *Server) encode(
	op string,
	msg canonicalMessage,
) (*wrapperspb.BytesValue, error) {
	data, err := msg.ToCanonicalBytes()
	if err != nil {
		s.logger.Error("could not encode response", zap.String("op", op), zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes(data), nil
}

func (s *Server) emptyResponse(op string) error {
	s.logger.Error("backend returned no response", zap.String("op", op))
	return status.Errorf(codes.Internal, "%s: backend returned no response", op)
}

func (s *Server) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logger.Warn("backend call failed", zap.String("op", op), zap.Error(err))
	return status.Error(codes.Unavailable, err.Error())
}
