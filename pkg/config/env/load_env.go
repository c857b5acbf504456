package env

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// ENV_PATH wins over defaultPaths; the first default path that exists is used otherwise.
// A missing file is only an error in local mode.
func LoadDotEnv(env string, defaultPaths ...string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = firstExisting(defaultPaths)
		slog.Info("ENV_PATH is not set, using default path", "defaultPath", envPath)
	}

	var err error
	if envPath == "" {
		err = errors.New("no .env file found")
	} else {
		err = godotenv.Load(envPath)
	}
	if err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "error", err)
			return err
		}
		slog.Debug("Skipping .env ...")
	}

	return nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if len(paths) > 0 {
		return paths[0]
	}
	return ""
}
