package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// NetworksKey is the comma-separated list of crypto codes the daemon
	// should serve, ie. "ZANO" or "ZANO,ZANOTEST"
	NetworksKey = "NETWORKS"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// ListenerIntervalKey is the payment listener poll interval in milliseconds
	ListenerIntervalKey = "LISTENER_INTERVAL"
	// SummaryIntervalKey is the balance/sync summary poll interval in milliseconds
	SummaryIntervalKey = "SUMMARY_INTERVAL"
	// ConfirmationDepthKey is the number of confirmations required before a payment is reported settled
	ConfirmationDepthKey = "CONFIRMATION_DEPTH"
	// HTTPListenAddrKey is the address the status/metrics/prompt HTTP interface listens on
	HTTPListenAddrKey = "HTTP_LISTEN_ADDR"
	// PromptStoreKey switches the prompt registry implementation between those supported
	PromptStoreKey = "PROMPT_STORE"
	// RPCLimitKey caps wallet daemon calls per second per poller, 0 disables the cap
	RPCLimitKey = "RPC_LIMIT"
	// RPCTimeoutKey is the per-call wallet daemon RPC timeout in milliseconds
	RPCTimeoutKey = "RPC_TIMEOUT"
	// ChainKey selects mainnet, testnet or regtest. Cheat-mode endpoints are refused on mainnet
	ChainKey = "CHAIN"
	// PaymentWebhookURLKey is an optional endpoint reconciliation results are POSTed to
	PaymentWebhookURLKey = "PAYMENT_WEBHOOK_URL"
	// RuntimeStatsKey enables periodic logging of memory and goroutine statistics
	RuntimeStatsKey = "RUNTIME_STATS"

	// PromptStoreInMemory ...
	PromptStoreInMemory = "inmemory"
	// PromptStoreBadger ...
	PromptStoreBadger = "badger"

	// ChainMainnet ...
	ChainMainnet = "mainnet"
	// ChainTestnet ...
	ChainTestnet = "testnet"
	// ChainRegtest ...
	ChainRegtest = "regtest"

	// DbLocation is the folder inside the datadir containing the prompt store
	DbLocation = "db"
)

// NetworkConfig holds the daemon endpoints and wallet settings of one
// supported network. Immutable after load.
type NetworkConfig struct {
	CryptoCode             string
	DaemonURI              string
	WalletDaemonURI        string
	CashCowWalletDaemonURI string
	WalletDir              string
	WalletFilename         string
	WalletPassword         string
	Username               string
	Password               string
}

// HasCashCow returns whether a secondary float wallet daemon is configured.
func (n NetworkConfig) HasCashCow() bool {
	return n.CashCowWalletDaemonURI != ""
}

var vip *viper.Viper

// InitConfig loads the daemon configuration from the environment, applying
// defaults and creating the datadir.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ZANOPAY")
	vip.AutomaticEnv()

	vip.SetDefault(NetworksKey, "ZANO")
	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(ListenerIntervalKey, 5000)
	vip.SetDefault(SummaryIntervalKey, 30000)
	vip.SetDefault(ConfirmationDepthKey, 10)
	vip.SetDefault(HTTPListenAddrKey, ":9716")
	vip.SetDefault(PromptStoreKey, PromptStoreBadger)
	vip.SetDefault(RPCLimitKey, 10)
	vip.SetDefault(RPCTimeoutKey, 30000)
	vip.SetDefault(ChainKey, ChainMainnet)
	vip.SetDefault(RuntimeStatsKey, false)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

// Networks returns the configuration of every enabled network. A network
// missing its daemon URI or wallet daemon URI is excluded entirely with a
// single warning: a misconfigured network must not crash the process.
func Networks() []NetworkConfig {
	codes := strings.Split(vip.GetString(NetworksKey), ",")
	networks := make([]NetworkConfig, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		daemonURI := vip.GetString(code + "_DAEMON_URI")
		walletDaemonURI := vip.GetString(code + "_WALLET_DAEMON_URI")
		if daemonURI == "" || walletDaemonURI == "" {
			log.Warnf("%s got disabled as it is not fully configured", code)
			continue
		}
		walletFilename := vip.GetString(code + "_WALLET_FILENAME")
		if walletFilename == "" {
			walletFilename = strings.ToLower(code) + "_wallet"
		}
		networks = append(networks, NetworkConfig{
			CryptoCode:             code,
			DaemonURI:              daemonURI,
			WalletDaemonURI:        walletDaemonURI,
			CashCowWalletDaemonURI: vip.GetString(code + "_CASHCOW_WALLET_DAEMON_URI"),
			WalletDir:              vip.GetString(code + "_WALLET_DAEMON_WALLETDIR"),
			WalletFilename:         walletFilename,
			WalletPassword:         vip.GetString(code + "_WALLET_PASSWORD"),
			Username:               vip.GetString(code + "_DAEMON_USERNAME"),
			Password:               vip.GetString(code + "_DAEMON_PASSWORD"),
		})
	}
	return networks
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetUint64 ...
func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

// GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetMillis reads a duration config value expressed in milliseconds.
func GetMillis(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Millisecond
}

// Set allows overriding a config value, used by tests.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// GetDatadir returns the data directory of the daemon.
func GetDatadir() string {
	return vip.GetString(DatadirKey)
}

func validate() error {
	switch chain := vip.GetString(ChainKey); chain {
	case ChainMainnet, ChainTestnet, ChainRegtest:
	default:
		return fmt.Errorf("unknown chain %q", chain)
	}
	switch store := vip.GetString(PromptStoreKey); store {
	case PromptStoreInMemory, PromptStoreBadger:
	default:
		return fmt.Errorf("unknown prompt store %q", store)
	}
	if vip.GetInt(ListenerIntervalKey) <= 0 {
		return fmt.Errorf("%s must be positive", ListenerIntervalKey)
	}
	if vip.GetInt(SummaryIntervalKey) <= 0 {
		return fmt.Errorf("%s must be positive", SummaryIntervalKey)
	}
	if vip.GetInt(ConfirmationDepthKey) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfirmationDepthKey)
	}
	if vip.GetInt(RPCTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be positive", RPCTimeoutKey)
	}
	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return os.MkdirAll(filepath.Join(datadir, DbLocation), 0755)
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zanopayd"
	}
	return filepath.Join(home, ".zanopayd")
}
