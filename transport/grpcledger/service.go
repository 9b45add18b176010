// Package grpcledger carries the ledger transport over gRPC. Payloads are
// the canonical byte forms of the transport types wrapped in well known
// protobuf wrappers, so no generated code is needed.
package grpcledger

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "offerhub.ledger.v1.Ledger"

const (
	getAccountMethod      = "/" + serviceName + "/GetAccount"
	getLatestLedgerMethod = "/" + serviceName + "/GetLatestLedger"
	simulateMethod        = "/" + serviceName + "/Simulate"
	submitMethod          = "/" + serviceName + "/Submit"
	getTransactionMethod  = "/" + serviceName + "/GetTransaction"
)

// LedgerServer is the server side of the service.
type LedgerServer interface {
	GetAccount(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	GetLatestLedger(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	Simulate(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Submit(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	GetTransaction(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
}

func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&ledgerServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(LedgerServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(
		srv any,
		ctx context.Context,
		dec func(any) error,
		interceptor grpc.UnaryServerInterceptor,
	) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ledgerServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetAccount",
			Handler: unaryHandler(
				getAccountMethod,
				LedgerServer.GetAccount,
			),
		},
		{
			MethodName: "GetLatestLedger",
			Handler: unaryHandler(
				getLatestLedgerMethod,
				LedgerServer.GetLatestLedger,
			),
		},
		{
			MethodName: "Simulate",
			Handler:    unaryHandler(simulateMethod, LedgerServer.Simulate),
		},
		{
			MethodName: "Submit",
			Handler:    unaryHandler(submitMethod, LedgerServer.Submit),
		},
		{
			MethodName: "GetTransaction",
			Handler: unaryHandler(
				getTransactionMethod,
				LedgerServer.GetTransaction,
			),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "offerhub/ledger/v1/ledger.proto",
}
