// Package config содержит логику чтения конфигурации клиентской
// оболочки FoodHive.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации оболочки.
type Config struct {
	RunAddress     string `env:"RUN_ADDRESS"`
	APIAddress     string `env:"FOODHIVE_API_ADDRESS"`
	StatePath      string `env:"STATE_PATH"`
	GuestOwnerID   string `env:"GUEST_OWNER_ID"`
	GuestTableCart bool   `env:"GUEST_TABLE_CART"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных
// окружения. Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envAPIAddress := cfg.APIAddress
	envStatePath := cfg.StatePath
	envGuestOwnerID := cfg.GuestOwnerID
	_, envGuestTableCartSet := os.LookupEnv("GUEST_TABLE_CART")
	envGuestTableCart := cfg.GuestTableCart

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for the local HTTP interface")
	flag.StringVar(&cfg.APIAddress, "r", "", "FoodHive API address")
	flag.StringVar(&cfg.StatePath, "s", "foodhive-state.db", "path to the persisted state database")
	flag.StringVar(&cfg.GuestOwnerID, "g", "invite", "owner id used for guest carts at a table")
	flag.BoolVar(&cfg.GuestTableCart, "t", false, "load the guest cart for an anonymous session at a table")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envAPIAddress != "" {
		cfg.APIAddress = envAPIAddress
	}
	if envStatePath != "" {
		cfg.StatePath = envStatePath
	}
	if envGuestOwnerID != "" {
		cfg.GuestOwnerID = envGuestOwnerID
	}
	if envGuestTableCartSet {
		cfg.GuestTableCart = envGuestTableCart
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
