package cakeclaim

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	NetworkPolygon = "polygon"
	NetworkBNB     = "bnbSmartChain"

	SchemeNative = "native"
	SchemeERC20  = "erc20"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyEnv()
	cfg.applyNetworkDefaults()

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type Config struct {
	Log      LogConfig                `toml:"log"`
	Web      WebConfig                `toml:"web"`
	DB       DBConfig                 `toml:"db"`
	Claim    ClaimConfig              `toml:"claim"`
	Mint     MintConfig               `toml:"mint"`
	Networks map[string]NetworkConfig `toml:"networks"`
	Spaces   SpacesConfig             `toml:"spaces"`
	Alerts   AlertsConfig             `toml:"alerts"`
	Legacy   LegacyConfig             `toml:"legacy"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	AllowOrigins    string   `toml:"allow_origins"`
	StaticDir       string   `toml:"static_dir"`
	RateLimit       int      `toml:"rate_limit"`
	RateLimitWindow Duration `toml:"rate_limit_window"`
	// ProxyHeader carries the client IP when the request comes from one of
	// TrustedProxies. Other peers are identified by their socket address.
	ProxyHeader    string   `toml:"proxy_header"`
	TrustedProxies []string `toml:"trusted_proxies"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type ClaimConfig struct {
	Cooldown            Duration `toml:"cooldown"`
	PollInterval        Duration `toml:"poll_interval"`
	ConfirmationTimeout Duration `toml:"confirmation_timeout"`
	DefaultNetwork      string   `toml:"default_network"`
	VerifyPayments      bool     `toml:"verify_payments"`
	SessionTTL          Duration `toml:"session_ttl"`
}

type MintConfig struct {
	Network         string `toml:"network"`
	ContractAddress string `toml:"contract_address"`
	PrivateKey      string `toml:"private_key"`
	GasLimit        uint64 `toml:"gas_limit"`
}

// NetworkConfig describes one payment network. Scheme selects how the
// claimant pays: "native" sends Amount of the chain currency, "erc20" calls
// transfer on TokenAddress.
type NetworkConfig struct {
	RPCURL           string `toml:"rpc_url"`
	ChainID          int64  `toml:"chain_id"`
	Scheme           string `toml:"scheme"`
	ReceivingAddress string `toml:"receiving_address"`
	TokenAddress     string `toml:"token_address"`
	Amount           string `toml:"amount"`
	GasLimit         uint64 `toml:"gas_limit"`
}

type SpacesConfig struct {
	Key          string `toml:"key"`
	Secret       string `toml:"secret"`
	Region       string `toml:"region"`
	Bucket       string `toml:"bucket"`
	MetadataRoot string `toml:"metadata_root"`
}

func (c SpacesConfig) Enabled() bool {
	return c.Key != "" && c.Secret != "" && c.Bucket != ""
}

type AlertsConfig struct {
	DiscordWebhookURL string `toml:"discord_webhook_url"`
}

type LegacyConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Duration is a time.Duration written as "24h" or "1s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo, Format: "text"},
		Web: WebConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			AllowOrigins:    "*",
			RateLimit:       30,
			RateLimitWindow: Duration{time.Minute},
		},
		DB: DBConfig{Host: "localhost", Port: 5432, PoolSize: 10},
		Claim: ClaimConfig{
			Cooldown:            Duration{24 * time.Hour},
			PollInterval:        Duration{time.Second},
			ConfirmationTimeout: Duration{2 * time.Minute},
			DefaultNetwork:      NetworkPolygon,
			VerifyPayments:      true,
			SessionTTL:          Duration{5 * time.Minute},
		},
		Mint: MintConfig{Network: NetworkPolygon, GasLimit: 300000},
		Networks: map[string]NetworkConfig{
			NetworkPolygon: {
				RPCURL:   "https://polygon-rpc.com",
				ChainID:  137,
				Scheme:   SchemeNative,
				Amount:   "10",
				GasLimit: 100000,
			},
			NetworkBNB: {
				RPCURL:   "https://bsc-dataseed.binance.org",
				ChainID:  56,
				Scheme:   SchemeERC20,
				Amount:   "10",
				GasLimit: 0x186A0,
			},
		},
		Legacy: LegacyConfig{Database: "nft"},
	}
}

// applyEnv lets deployments keep secrets out of the TOML file.
func (c *Config) applyEnv() {
	if v := os.Getenv("PRIVATE_KEY"); v != "" {
		c.Mint.PrivateKey = v
	}
	if v := os.Getenv("BOTC_CONTRACT_ADDRESS"); v != "" {
		c.Mint.ContractAddress = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Web.Port = port
		}
	}
	if v := os.Getenv("RECEIVING_ADDRESS"); v != "" {
		for name, network := range c.Networks {
			network.ReceivingAddress = v
			c.Networks[name] = network
		}
	}
	if v := os.Getenv("FOMO3D_CONTRACT_ADDRESS"); v != "" {
		if network, ok := c.Networks[NetworkBNB]; ok {
			network.TokenAddress = v
			c.Networks[NetworkBNB] = network
		}
	}
}

// applyNetworkDefaults fills the fields a partial [networks.<id>] table
// leaves empty for the two built-in networks.
func (c *Config) applyNetworkDefaults() {
	defaults := DefaultConfig().Networks
	for name, network := range c.Networks {
		def, ok := defaults[name]
		if !ok {
			continue
		}
		if network.RPCURL == "" {
			network.RPCURL = def.RPCURL
		}
		if network.ChainID == 0 {
			network.ChainID = def.ChainID
		}
		if network.Scheme == "" {
			network.Scheme = def.Scheme
		}
		if network.Amount == "" {
			network.Amount = def.Amount
		}
		if network.GasLimit == 0 {
			network.GasLimit = def.GasLimit
		}
		c.Networks[name] = network
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Claim.Cooldown.Duration <= 0 {
		errs = append(errs, errors.New("claim.cooldown must be positive"))
	}
	if c.Claim.PollInterval.Duration <= 0 {
		errs = append(errs, errors.New("claim.poll_interval must be positive"))
	}
	if c.Claim.ConfirmationTimeout.Duration <= 0 {
		errs = append(errs, errors.New("claim.confirmation_timeout must be positive"))
	}
	// a verification lock must outlive the wait it guards
	if c.Claim.SessionTTL.Duration <= c.Claim.ConfirmationTimeout.Duration {
		errs = append(errs, fmt.Errorf("claim.session_ttl (%s) must exceed claim.confirmation_timeout (%s)",
			c.Claim.SessionTTL.Duration, c.Claim.ConfirmationTimeout.Duration))
	}
	if c.Web.ProxyHeader != "" && len(c.Web.TrustedProxies) == 0 {
		errs = append(errs, errors.New("web.trusted_proxies is required when web.proxy_header is set"))
	}
	if _, ok := c.Networks[c.Claim.DefaultNetwork]; !ok {
		errs = append(errs, fmt.Errorf("claim.default_network %q is not configured", c.Claim.DefaultNetwork))
	}
	if _, ok := c.Networks[c.Mint.Network]; !ok {
		errs = append(errs, fmt.Errorf("mint.network %q is not configured", c.Mint.Network))
	}
	for name, network := range c.Networks {
		switch network.Scheme {
		case SchemeNative:
		case SchemeERC20:
			if network.TokenAddress == "" {
				errs = append(errs, fmt.Errorf("networks.%s.token_address is required for erc20 payments", name))
			}
		default:
			errs = append(errs, fmt.Errorf("networks.%s.scheme %q is unknown", name, network.Scheme))
		}
		if network.RPCURL == "" {
			errs = append(errs, fmt.Errorf("networks.%s.rpc_url is required", name))
		}
	}
	return errors.Join(errs...)
}
