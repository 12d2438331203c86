package main

import (
	"errors"
	"log"

	"github.com/joho/godotenv"

	"grabbot/bot/app"
	"grabbot/core/cmd"
)

var errUnexpectedConfig = errors.New("unexpected config type")

func main() {
	// Local development convenience; production relies on real env vars.
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg, ok := carrier.(*app.Config)
			if !ok {
				return nil, errUnexpectedConfig
			}
			return app.New(cfg)
		},
	})
	if err != nil {
		log.Fatalf("grabbot: %v", err)
	}
}
