package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	ServerPort  string
	DatabaseURL string

	// Seeded administrator credential, inserted on startup if absent.
	AdminUsername string
	AdminPassword string

	// FrontendDir, when set, enables static serving of the shop frontend.
	FrontendDir string

	Checkout Checkout
}

// Checkout carries the optional hardening flags for the checkout engine. Both
// default to off, which reproduces the reference behavior: no stock re-check
// and the client-supplied price taken at face value.
type Checkout struct {
	LockStock   bool
	VerifyPrice bool
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME must be set")
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD must be set")
	}

	lockStock, err := boolEnv("CHECKOUT_LOCK_STOCK")
	if err != nil {
		return nil, err
	}
	verifyPrice, err := boolEnv("CHECKOUT_VERIFY_PRICE")
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:           env,
		ServerPort:    serverPort,
		DatabaseURL:   databaseURL,
		AdminUsername: adminUsername,
		AdminPassword: adminPassword,
		FrontendDir:   os.Getenv("FRONTEND_DIR"),
		Checkout: Checkout{
			LockStock:   lockStock,
			VerifyPrice: verifyPrice,
		},
	}, nil
}

// boolEnv parses an optional boolean variable. A value ParseBool rejects is an
// error rather than a silent false: these flags gate checkout hardening, so a
// typo must not turn it off without a trace.
func boolEnv(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
