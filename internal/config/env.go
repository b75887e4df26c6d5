package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvAPIKey names the environment variable holding the dictionary API key.
const EnvAPIKey = "TIMETYPE_API_KEY"

// LoadEnv loads variables from a dotenv file without overriding the
// process environment. A missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// APIKeyFromEnv returns the trimmed API key from the environment.
func APIKeyFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvAPIKey))
}
