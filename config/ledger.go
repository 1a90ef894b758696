package config

import (
	"io/ioutil"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

var Ledger *LedgerConfig

type GatewayConfig struct {
	// URL of the payment provider. Empty selects the simulated gateway.
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	Latency time.Duration `yaml:"latency"`
}

type ReconcileConfig struct {
	At string `yaml:"at"`
}

type LedgerConfig struct {
	CompanyID int64           `yaml:"company_id"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
}

func defaultLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		CompanyID: 1,
		Gateway: GatewayConfig{
			Timeout: 10 * time.Second,
		},
		Reconcile: ReconcileConfig{
			At: "03:00",
		},
	}
}

// LoadLedgerConfig reads the yaml at path when it exists and lets the environment override it.
func LoadLedgerConfig(path string) (*LedgerConfig, error) {
	c := defaultLedgerConfig()

	buf, err := ioutil.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if err == nil {
		if err := yaml.Unmarshal(buf, c); err != nil {
			return nil, err
		}
	}

	if value := os.Getenv("LEDGER_COMPANY_ID"); len(value) > 0 {
		company_id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, err
		}

		c.CompanyID = company_id
	}

	if value := os.Getenv("PAYMENT_GATEWAY_URL"); len(value) > 0 {
		c.Gateway.URL = value
	}

	if value := os.Getenv("PAYMENT_GATEWAY_TIMEOUT"); len(value) > 0 {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}

		c.Gateway.Timeout = timeout
	}

	if value := os.Getenv("LEDGER_RECONCILE_AT"); len(value) > 0 {
		c.Reconcile.At = value
	}

	return c, nil
}

func ledgerConfigPath() string {
	if path := os.Getenv("LEDGER_CONFIG"); len(path) > 0 {
		return path
	}

	return "config/ledger.yml"
}
