package logger

import (
	"os"

	"go.uber.org/zap"
)

// NewAppLogger builds the process logger. It runs before the config is
// loaded, so it reads APP_ENV and DEBUG straight from the environment.
func NewAppLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if os.Getenv("APP_ENV") == "development" || os.Getenv("DEBUG") == "true" {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func Sync(logger *zap.SugaredLogger) {
	_ = logger.Sync()
}
