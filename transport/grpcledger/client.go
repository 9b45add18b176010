package grpcledger

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/multiformats/go-multiaddr"
	mn "github.com/multiformats/go-multiaddr/net"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

// MaxMessageSize bounds gRPC messages in both directions.
const MaxMessageSize = 16 * 1024 * 1024

// Client implements ledger.Transport against a remote Ledger service.
type Client struct {
	cc      grpc.ClientConnInterface
	timeout time.Duration
}

var _ ledger.Transport = (*Client)(nil)

// NewClient bounds every call by timeout. Zero leaves calls bounded only by
// their context.
func NewClient(cc grpc.ClientConnInterface, timeout time.Duration) *Client {
	return &Client{cc: cc, timeout: timeout}
}

func (c *Client) call(ctx context.Context, method string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.cc.Invoke(ctx, method, in, out); err != nil {
		return fromStatus(err)
	}
	return nil
}

// Dial opens a connection to the network's RPC endpoint.
func Dial(network *config.NetworkConfig) (*grpc.ClientConn, error) {
	ma, err := multiaddr.NewMultiaddr(network.RPCMultiaddr)
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}

	_, addr, err := mn.DialArgs(ma)
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}

	creds := insecure.NewCredentials()
	if network.TLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(creds),
		grpc.WithChainUnaryInterceptor(clientMetrics.UnaryClientInterceptor()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallSendMsgSize(MaxMessageSize),
			grpc.MaxCallRecvMsgSize(MaxMessageSize),
		),
	)
	return conn, errors.Wrap(err, "dial")
}

func (c *Client) GetAccount(
	ctx context.Context,
	address string,
) (*ledger.AccountInfo, error) {
	out := &wrapperspb.BytesValue{}
	if err := c.call(ctx, getAccountMethod, wrapperspb.String(address), out); err != nil {
		return nil, err
	}

	acct := &ledger.AccountInfo{}
	if err := acct.FromCanonicalBytes(out.GetValue()); err != nil {
		return nil, errors.Wrap(err, "get account")
	}
	return acct, nil
}

func (c *Client) GetLatestLedger(ctx context.Context) (uint64, error) {
	out := &wrapperspb.UInt64Value{}
	if err := c.call(ctx, getLatestLedgerMethod, &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) Simulate(
	ctx context.Context,
	envelope []byte,
) (*ledger.SimulationResult, error) {
	out := &wrapperspb.BytesValue{}
	if err := c.call(ctx, simulateMethod, wrapperspb.Bytes(envelope), out); err != nil {
		return nil, err
	}

	res := &ledger.SimulationResult{}
	if err := res.FromCanonicalBytes(out.GetValue()); err != nil {
		return nil, errors.Wrap(err, "simulate")
	}
	return res, nil
}

func (c *Client) Submit(
	ctx context.Context,
	envelope []byte,
) (*ledger.SubmitResult, error) {
	out := &wrapperspb.BytesValue{}
	if err := c.call(ctx, submitMethod, wrapperspb.Bytes(envelope), out); err != nil {
		return nil, err
	}

	res := &ledger.SubmitResult{}
	if err := res.FromCanonicalBytes(out.GetValue()); err != nil {
		return nil, errors.Wrap(err, "submit")
	}
	return res, nil
}

func (c *Client) GetTransaction(
	ctx context.Context,
	hash string,
) (*ledger.TransactionStatus, error) {
	out := &wrapperspb.BytesValue{}
	if err := c.call(ctx, getTransactionMethod, wrapperspb.String(hash), out); err != nil {
		return nil, err
	}

	res := &ledger.TransactionStatus{}
	if err := res.FromCanonicalBytes(out.GetValue()); err != nil {
		return nil, errors.Wrap(err, "get transaction")
	}
	return res, nil
}

// fromStatus maps well known status codes back to the errors the rest of
// the module checks for.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return errors.Wrap(ledger.ErrAccountNotFound, st.Message())
	case codes.Canceled:
		return errors.Wrap(context.Canceled, st.Message())
	case codes.DeadlineExceeded:
		return errors.Wrap(context.DeadlineExceeded, st.Message())
	}
	return err
}
