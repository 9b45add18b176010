package grpcledger

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/mocks"
)

const account = "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX"

func setupClient(t *testing.T, backend ledger.Transport) *Client {
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(ServerOptions()...)
	RegisterLedgerServer(srv, NewServer(backend, zap.NewNop()))
	InitializeMetrics(srv)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(clientMetrics.UnaryClientInterceptor()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewClient(conn, 5*time.Second)
}

func TestClient_RoundTrip(t *testing.T) {
	backend := &mocks.MockTransport{}
	backend.On("GetAccount", mock.Anything, account).
		Return(&ledger.AccountInfo{Address: account, Sequence: 42, Balance: 1000}, nil)
	backend.On("GetLatestLedger", mock.Anything).Return(uint64(777), nil)
	backend.On("Simulate", mock.Anything, []byte{0x01}).
		Return(&ledger.SimulationResult{
			MinResourceFee: 90,
			Resources: ledger.Resources{
				Instructions: 5,
				ReadOnly:     [][]byte{{0xaa}},
			},
			ReturnValue:  []byte{0x00, 0x00, 0x00, 0x00},
			LatestLedger: 777,
		}, nil)
	backend.On("Submit", mock.Anything, []byte{0x02}).
		Return(&ledger.SubmitResult{Hash: "ab", Status: ledger.SubmitPending}, nil)
	backend.On("GetTransaction", mock.Anything, "ab").
		Return(&ledger.TransactionStatus{
			Status:     ledger.TxSuccess,
			Ledger:     778,
			ResultMeta: []byte{0x09},
		}, nil)

	client := setupClient(t, backend)
	ctx := context.Background()

	acct, err := client.GetAccount(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), acct.Sequence)
	assert.Equal(t, uint64(1000), acct.Balance)

	latest, err := client.GetLatestLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(777), latest)

	sim, err := client.Simulate(ctx, []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, uint64(90), sim.MinResourceFee)
	assert.Equal(t, [][]byte{{0xaa}}, sim.Resources.ReadOnly)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, sim.ReturnValue)

	sub, err := client.Submit(ctx, []byte{0x02})
	require.NoError(t, err)
	assert.Equal(t, ledger.SubmitPending, sub.Status)

	st, err := client.GetTransaction(ctx, "ab")
	require.NoError(t, err)
	assert.Equal(t, ledger.TxSuccess, st.Status)
	assert.Equal(t, []byte{0x09}, st.ResultMeta)

	backend.AssertExpectations(t)
}

func TestClient_ErrorMapping(t *testing.T) {
	backend := &mocks.MockTransport{}
	backend.On("GetAccount", mock.Anything, account).
		Return(nil, ledger.ErrAccountNotFound)
	backend.On("Simulate", mock.Anything, mock.Anything).
		Return(nil, errors.New("backend down"))

	client := setupClient(t, backend)

	_, err := client.GetAccount(context.Background(), account)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = client.Simulate(context.Background(), []byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}

func TestServer_NilBackendResponses(t *testing.T) {
	backend := &mocks.MockTransport{}
	backend.On("GetAccount", mock.Anything, account).Return(nil, nil)
	backend.On("Simulate", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("Submit", mock.Anything, mock.Anything).Return(nil, nil)
	backend.On("GetTransaction", mock.Anything, "ab").Return(nil, nil)

	client := setupClient(t, backend)
	ctx := context.Background()

	_, err := client.GetAccount(ctx, account)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = client.Simulate(ctx, []byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend returned no response")

	_, err = client.Submit(ctx, []byte{0x02})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend returned no response")

	st, err := client.GetTransaction(ctx, "ab")
	require.NoError(t, err)
	assert.Equal(t, ledger.TxNotFound, st.Status)

	backend.AssertExpectations(t)
}

func handledTotal(
	t *testing.T,
	c prometheus.Collector,
	family string,
	method string,
) float64 {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "grpc_method" && lp.GetValue() == method {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}

func TestMetrics_CountHandledCalls(t *testing.T) {
	backend := &mocks.MockTransport{}
	backend.On("GetLatestLedger", mock.Anything).Return(uint64(9), nil)

	client := setupClient(t, backend)

	serverBefore := handledTotal(t, serverMetrics, "grpc_server_handled_total", "GetLatestLedger")
	clientBefore := handledTotal(t, clientMetrics, "grpc_client_handled_total", "GetLatestLedger")

	_, err := client.GetLatestLedger(context.Background())
	require.NoError(t, err)

	assert.Equal(t, serverBefore+1,
		handledTotal(t, serverMetrics, "grpc_server_handled_total", "GetLatestLedger"))
	assert.Equal(t, clientBefore+1,
		handledTotal(t, clientMetrics, "grpc_client_handled_total", "GetLatestLedger"))
}

func TestDial_InvalidMultiaddr(t *testing.T) {
	_, err := Dial(&config.NetworkConfig{RPCMultiaddr: "not a multiaddr"})
	assert.Error(t, err)

	conn, err := Dial(&config.NetworkConfig{RPCMultiaddr: "/ip4/127.0.0.1/tcp/8000"})
	require.NoError(t, err)
	assert.NoError(t, conn.Close())
}
