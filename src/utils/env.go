package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

// EnvFilename picks the .env file for goEnv.
func EnvFilename(goEnv string) string {
	if goEnv == "production" {
		return PROD_ENV_FILENAME
	}

	return DEV_ENV_FILENAME
}

// InitEnvironmentVariables loads envFile into the process environment without
// overriding variables that are already set. A missing file is not an error.
func InitEnvironmentVariables(envFile string) error {
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("no env file at %s", envFile)
			return nil
		}

		return fmt.Errorf("failed to load %s file: %w", envFile, err)
	}

	log.Infof("loaded environment from %s", envFile)

	return nil
}

func GetEnv(key string) (string, error) {
	value, found := os.LookupEnv(key)
	if !found || value == "" {
		return "", fmt.Errorf("%s environment variable not set", key)
	}

	return value, nil
}

func GetEnvOrDefault(key, defaultValue string) string {
	value, err := GetEnv(key)
	if err != nil {
		return defaultValue
	}

	return value
}
