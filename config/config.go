package config

import (
	"github.com/joho/godotenv"
)

// LoadEnvironment reads .env when present; variables already set win.
func LoadEnvironment() {
	_ = godotenv.Load()
}

// LoadLedger is the part of the setup every process needs, including the cli.
func LoadLedger() error {
	LoadEnvironment()
	NewLoggerService()

	c, err := LoadLedgerConfig(ledgerConfigPath())
	if err != nil {
		return err
	}

	Ledger = c

	return ConnectDatabase()
}

func InitializeConfig() error {
	if err := LoadLedger(); err != nil {
		return err
	}
	if err := NewCacheService(); err != nil {
		return err
	}
	if err := NewInfluxDB(); err != nil {
		return err
	}
	if err := ConnectNats(); err != nil {
		return err
	}

	return nil
}
