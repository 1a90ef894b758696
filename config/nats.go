package config

import (
	"os"

	"github.com/nats-io/nats.go"
)

var Nats *nats.Conn

func ConnectNats() error {
	options := []nats.Option{nats.Name("coreledger")}
	if len(os.Getenv("NATS_USER")) > 0 {
		options = append(options, nats.UserInfo(os.Getenv("NATS_USER"), os.Getenv("NATS_PASS")))
	}

	n, err := nats.Connect(os.Getenv("NATS_URL"), options...)
	if err != nil {
		return err
	}

	Nats = n

	return nil
}
