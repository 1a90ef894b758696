package main

import (
	"fmt"
	"os"

	"github.com/zsmartex/coreledger/config"
	"github.com/zsmartex/coreledger/mq_client"
	"github.com/zsmartex/coreledger/routes"
	"github.com/zsmartex/coreledger/routes/middlewares"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	public_key, err := middlewares.ParsePublicKey(os.Getenv("JWT_PUBLIC_KEY"))
	if err != nil {
		config.Logger.Fatalf("Invalid JWT_PUBLIC_KEY: %v", err)
	}

	ledger := config.NewLedgerService(mq_client.Dial(config.Nats, config.Logger))

	r := routes.SetupRouter(ledger, routes.Options{
		PublicKey: public_key,
		Cache:     config.Redis,
		Logger:    config.Logger,
	})

	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "3000"
	}

	if err := r.Listen(":" + port); err != nil {
		config.Logger.Fatalf("Failed to start ledger api: %v", err)
	}
}
