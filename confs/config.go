package confs

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadConfig loads environment variables from a .env file if present and
// validates settings the server cannot run without.
func LoadConfig() error {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	if os.Getenv("SESSION_SECRET") == "" {
		return errors.New("SESSION_SECRET is required")
	}
	return nil
}

// SessionSecret returns the key used to sign session tokens.
func SessionSecret() []byte {
	return []byte(os.Getenv("SESSION_SECRET"))
}

// ListenAddr returns the HTTP listen address, defaulting to :3000.
func ListenAddr() string {
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		return addr
	}
	return "0.0.0.0:3000"
}
