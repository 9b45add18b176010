// Package offerhub is the typed facade over the Offer Hub contract. Write
// operations run the full transaction lifecycle; reads are answered by
// simulation alone.
package offerhub

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/txn"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/store"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

const (
	methodRegisterProfile    = "register_profile"
	methodUpdateProfile      = "update_profile_data"
	methodAddClaim           = "add_claim"
	methodLinkIdentifier     = "link_did"
	methodGetProfile         = "get_profile"
	methodGetClaim           = "get_claim"
	methodGetReceiverClaims  = "get_user_claims"
	methodGetIssuerClaims    = "get_issuer_claims"
	methodGetTotalClaims     = "get_total_claims"
	methodGetIdentifier      = "get_did"
	methodGetReputationScore = "get_reputation_score"
)

// Client is safe for concurrent use. It holds no state besides its
// configuration and collaborators.
type Client struct {
	invoker *txn.Invoker
	account string
	logger  *zap.Logger
}

type options struct {
	signer  ledger.Signer
	journal store.JournalStore
	account string
	logger  *zap.Logger
}

type Option func(*options)

func WithSigner(signer ledger.Signer) Option {
	return func(o *options) { o.signer = signer }
}

func WithJournal(journal store.JournalStore) Option {
	return func(o *options) { o.journal = journal }
}

// WithAccount sets the source account of read queries. Without it reads
// are simulated from the configured read-only account.
func WithAccount(address string) Option {
	return func(o *options) { o.account = address }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func NewClient(
	transport ledger.Transport,
	network *config.NetworkConfig,
	opts ...Option,
) *Client {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	var invokerOpts []txn.Option
	if o.signer != nil {
		invokerOpts = append(invokerOpts, txn.WithSigner(o.signer))
	}
	if o.journal != nil {
		invokerOpts = append(invokerOpts, txn.WithJournal(o.journal))
	}

	return &Client{
		invoker: txn.NewInvoker(transport, network, o.logger, invokerOpts...),
		account: o.account,
		logger:  o.logger.Named("offerhub"),
	}
}

func (c *Client) Network() *config.NetworkConfig { return c.invoker.Network() }

// RegisterProfile creates the owner's profile. The owner signs.
func (c *Client) RegisterProfile(
	ctx context.Context,
	in ProfileInput,
) (*Receipt, error) {
	if err := c.requireSigner(); err != nil {
		return nil, err
	}
	args, err := profileArgs(in, false)
	if err != nil {
		return nil, err
	}
	_, receipt, err := c.invoke(ctx, in.Owner, methodRegisterProfile, args)
	return receipt, err
}

// UpdateProfile replaces every mutable field of the owner's profile.
func (c *Client) UpdateProfile(
	ctx context.Context,
	in ProfileInput,
) (*Receipt, error) {
	if err := c.requireSigner(); err != nil {
		return nil, err
	}
	args, err := profileArgs(in, true)
	if err != nil {
		return nil, err
	}
	_, receipt, err := c.invoke(ctx, in.Owner, methodUpdateProfile, args)
	return receipt, err
}

// AddClaim issues a claim from issuer to receiver and returns its id.
func (c *Client) AddClaim(
	ctx context.Context,
	issuer string,
	receiver string,
	claimType string,
	proofHash []byte,
) (uint64, *Receipt, error) {
	if err := c.requireSigner(); err != nil {
		return 0, nil, err
	}
	issuerArg, err := addressArg("issuer", issuer)
	if err != nil {
		return 0, nil, err
	}
	receiverArg, err := addressArg("receiver", receiver)
	if err != nil {
		return 0, nil, err
	}
	typeArg, err := arg("claim_type", claimType, wire.Shape{
		Tag:      wire.TagString,
		NonEmpty: true,
	})
	if err != nil {
		return 0, nil, err
	}
	hashArg, err := arg("proof_hash", proofHash, proofHashShape)
	if err != nil {
		return 0, nil, err
	}

	result, receipt, err := c.invoke(
		ctx,
		issuer,
		methodAddClaim,
		[]wire.Value{issuerArg, receiverArg, typeArg, hashArg},
	)
	if err != nil {
		return 0, receipt, err
	}

	native, err := txn.DecodeReturn(result, claimIDShape)
	if err != nil {
		return 0, receipt, err
	}
	id, ok := native.(uint64)
	if !ok {
		return 0, receipt, &wire.DecodingError{
			Tag:    wire.TagVoid,
			Reason: "add_claim returned no claim id",
		}
	}
	return id, receipt, nil
}

// LinkIdentifier links a decentralized identifier to the owner's profile.
func (c *Client) LinkIdentifier(
	ctx context.Context,
	owner string,
	identifier string,
) (*Receipt, error) {
	if err := c.requireSigner(); err != nil {
		return nil, err
	}
	ownerArg, err := addressArg("owner", owner)
	if err != nil {
		return nil, err
	}
	if err := ValidateIdentifier(identifier); err != nil {
		return nil, err
	}
	_, receipt, err := c.invoke(
		ctx,
		owner,
		methodLinkIdentifier,
		[]wire.Value{ownerArg, wire.String(identifier)},
	)
	return receipt, err
}

// GetProfile returns nil when the account has no profile.
func (c *Client) GetProfile(ctx context.Context, account string) (*Profile, error) {
	accountArg, err := addressArg("account", account)
	if err != nil {
		return nil, err
	}
	v, err := c.query(ctx, methodGetProfile, accountArg)
	if err != nil {
		return nil, err
	}
	return decodeProfile(v)
}

// GetClaim returns nil when no claim has the id.
func (c *Client) GetClaim(ctx context.Context, id uint64) (*Claim, error) {
	idArg, err := arg("claim_id", id, claimIDShape)
	if err != nil {
		return nil, err
	}
	v, err := c.query(ctx, methodGetClaim, idArg)
	if err != nil {
		return nil, err
	}
	return decodeClaim(v)
}

func (c *Client) GetClaimsByReceiver(
	ctx context.Context,
	account string,
) ([]Claim, error) {
	return c.claimsOf(ctx, methodGetReceiverClaims, account)
}

func (c *Client) GetClaimsByIssuer(
	ctx context.Context,
	account string,
) ([]Claim, error) {
	return c.claimsOf(ctx, methodGetIssuerClaims, account)
}

func (c *Client) claimsOf(
	ctx context.Context,
	method string,
	account string,
) ([]Claim, error) {
	accountArg, err := addressArg("account", account)
	if err != nil {
		return nil, err
	}
	v, err := c.query(ctx, method, accountArg)
	if err != nil {
		return nil, err
	}
	return decodeClaims(v)
}

func (c *Client) GetTotalClaims(ctx context.Context) (uint64, error) {
	v, err := c.query(ctx, methodGetTotalClaims)
	if err != nil {
		return 0, err
	}
	if wire.IsAbsent(v) {
		return 0, nil
	}
	return wire.AsUint64(v)
}

// GetIdentifier returns the linked identifier, or false when none is
// linked or the account has no profile.
func (c *Client) GetIdentifier(
	ctx context.Context,
	account string,
) (string, bool, error) {
	accountArg, err := addressArg("account", account)
	if err != nil {
		return "", false, err
	}
	v, err := c.query(ctx, methodGetIdentifier, accountArg)
	if err != nil {
		return "", false, err
	}
	if wire.IsAbsent(v) {
		return "", false, nil
	}
	s, err := wire.AsString(v)
	if err != nil {
		return "", false, err
	}
	return s, s != "", nil
}

func (c *Client) GetReputationScore(
	ctx context.Context,
	account string,
) (uint64, error) {
	accountArg, err := addressArg("account", account)
	if err != nil {
		return 0, err
	}
	v, err := c.query(ctx, methodGetReputationScore, accountArg)
	if err != nil {
		return 0, err
	}
	if wire.IsAbsent(v) {
		return 0, nil
	}
	return wire.AsUint64(v)
}

// GetProfileSummary fetches the profile, reputation, received claims and
// identifier of an account concurrently. A missing profile yields a nil
// Profile and empty remaining fields rather than an error.
func (c *Client) GetProfileSummary(
	ctx context.Context,
	account string,
) (*ProfileSummary, error) {
	if _, err := addressArg("account", account); err != nil {
		return nil, err
	}

	summary := &ProfileSummary{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.Profile, err = c.GetProfile(gctx, account)
		return err
	})
	g.Go(func() (err error) {
		summary.Reputation, err = c.GetReputationScore(gctx, account)
		return err
	})
	g.Go(func() (err error) {
		summary.Claims, err = c.GetClaimsByReceiver(gctx, account)
		return err
	})
	g.Go(func() (err error) {
		summary.Identifier, _, err = c.GetIdentifier(gctx, account)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// Resume continues a journaled write that was submitted but never reached
// finality.
func (c *Client) Resume(ctx context.Context, hash string) (wire.Value, *Receipt, error) {
	ctx = withCallID(ctx)
	tx, err := c.invoker.Resume(ctx, hash)
	if err != nil {
		return nil, receiptOf(ctx, tx), err
	}
	return tx.Result, receiptOf(ctx, tx), nil
}

func (c *Client) requireSigner() error {
	if !c.invoker.HasSigner() {
		return ErrSignerRequired
	}
	return nil
}

func (c *Client) invoke(
	ctx context.Context,
	source string,
	method string,
	args []wire.Value,
) (wire.Value, *Receipt, error) {
	ctx = withCallID(ctx)
	c.logger.Debug(
		"invoking",
		zap.String("call_id", txn.CallID(ctx)),
		zap.String("method", method),
		zap.String("source", source),
	)

	tx, err := c.invoker.Invoke(ctx, source, method, args...)
	if err != nil {
		c.logger.Info(
			"invocation failed",
			zap.String("call_id", txn.CallID(ctx)),
			zap.String("method", method),
			zap.String("kind", txn.ErrorKind(err)),
			zap.Error(err),
		)
		return nil, receiptOf(ctx, tx), err
	}
	return tx.Result, receiptOf(ctx, tx), nil
}

func (c *Client) query(
	ctx context.Context,
	method string,
	args ...wire.Value,
) (wire.Value, error) {
	ctx = withCallID(ctx)
	c.logger.Debug(
		"querying",
		zap.String("call_id", txn.CallID(ctx)),
		zap.String("method", method),
	)
	return c.invoker.Query(ctx, c.account, method, args...)
}

func withCallID(ctx context.Context) context.Context {
	if txn.CallID(ctx) != "" {
		return ctx
	}
	return txn.WithCallID(ctx, uuid.NewString())
}

func receiptOf(ctx context.Context, tx *txn.Tx) *Receipt {
	if tx == nil || tx.Hash == "" {
		return nil
	}
	r := &Receipt{
		CallID:   txn.CallID(ctx),
		Hash:     tx.Hash,
		Fee:      tx.Envelope.Fee,
		Attempts: tx.Attempts,
	}
	if tx.Status != nil {
		r.Ledger = tx.Status.Ledger
	}
	return r
}
