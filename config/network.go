package config

import (
	"time"

	"github.com/multiformats/go-multiaddr"
	"github.com/pkg/errors"
)

const (
	defaultNetworkName       = "futurenet"
	defaultBaseFee           = uint64(100)
	defaultExpirationLedgers = uint64(30)
	defaultPollInterval      = 1 * time.Second
	defaultMaxPollAttempts   = 180
	defaultRPCTimeout        = 30 * time.Second

	// NullAccount is the all-zero account used as the source of read-only
	// invocations when no signer is available.
	NullAccount = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"
)

type NetworkConfig struct {
	// Name selects a preset whose values fill any field left empty here.
	Name       string `yaml:"name"`
	Passphrase string `yaml:"passphrase"`
	ContractID string `yaml:"contractId"`
	// RPCMultiaddr is the ledger RPC endpoint, e.g. /dns/rpc.example/tcp/443.
	RPCMultiaddr string `yaml:"rpcMultiaddr"`
	TLS          bool   `yaml:"tls"`
	// BaseFee is the inclusion fee in base units placed on every envelope
	// before simulation adds the resource fee.
	BaseFee uint64 `yaml:"baseFee"`
	// ExpirationLedgers is how many ledgers past the latest one an envelope
	// stays valid for.
	ExpirationLedgers uint64 `yaml:"expirationLedgers"`
	// PollInterval is the spacing between transaction status queries.
	PollInterval time.Duration `yaml:"pollInterval"`
	// MaxPollAttempts bounds the number of status queries before giving up
	// with a finality timeout.
	MaxPollAttempts int `yaml:"maxPollAttempts"`
	// RPCTimeout bounds each individual transport call.
	RPCTimeout time.Duration `yaml:"rpcTimeout"`
	// ReadOnlySource is the source account for reads without a signer.
	ReadOnlySource string `yaml:"readOnlySource"`
}

var presets = map[string]NetworkConfig{
	"futurenet": {
		Name:         "futurenet",
		Passphrase:   "Test SDF Future Network ; October 2022",
		RPCMultiaddr: "/dns/rpc-futurenet.stellar.org/tcp/443",
		TLS:          true,
	},
	"testnet": {
		Name:         "testnet",
		Passphrase:   "Test SDF Network ; September 2015",
		RPCMultiaddr: "/dns/soroban-testnet.stellar.org/tcp/443",
		TLS:          true,
	},
	"standalone": {
		Name:         "standalone",
		Passphrase:   "Standalone Network ; February 2017",
		RPCMultiaddr: "/ip4/127.0.0.1/tcp/8000",
		TLS:          false,
	},
}

// Preset returns the named network preset.
func Preset(name string) (NetworkConfig, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames lists the known presets.
func PresetNames() []string {
	return []string{"futurenet", "testnet", "standalone"}
}

// WithDefaults returns a copy of the NetworkConfig with any missing fields
// set from its preset and then from the package defaults.
func (c NetworkConfig) WithDefaults() NetworkConfig {
	cpy := c
	if cpy.Name == "" {
		cpy.Name = defaultNetworkName
	}
	if p, ok := presets[cpy.Name]; ok {
		if cpy.Passphrase == "" {
			cpy.Passphrase = p.Passphrase
		}
		if cpy.RPCMultiaddr == "" {
			cpy.RPCMultiaddr = p.RPCMultiaddr
			cpy.TLS = p.TLS
		}
	}
	if cpy.BaseFee == 0 {
		cpy.BaseFee = defaultBaseFee
	}
	if cpy.ExpirationLedgers == 0 {
		cpy.ExpirationLedgers = defaultExpirationLedgers
	}
	if cpy.PollInterval == 0 {
		cpy.PollInterval = defaultPollInterval
	}
	if cpy.MaxPollAttempts == 0 {
		cpy.MaxPollAttempts = defaultMaxPollAttempts
	}
	if cpy.RPCTimeout == 0 {
		cpy.RPCTimeout = defaultRPCTimeout
	}
	if cpy.ReadOnlySource == "" {
		cpy.ReadOnlySource = NullAccount
	}
	return cpy
}

// Validate reports configuration that cannot be used to reach a contract.
func (c NetworkConfig) Validate() error {
	if c.Passphrase == "" {
		return errors.Wrap(errors.New("missing passphrase"), "validate")
	}
	if c.ContractID == "" {
		return errors.Wrap(errors.New("missing contract id"), "validate")
	}
	if _, err := multiaddr.NewMultiaddr(c.RPCMultiaddr); err != nil {
		return errors.Wrap(err, "validate")
	}
	if c.MaxPollAttempts < 1 {
		return errors.Wrap(
			errors.New("max poll attempts must be positive"),
			"validate",
		)
	}
	return nil
}
