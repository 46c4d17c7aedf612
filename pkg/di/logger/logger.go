package logger_di

import (
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/logger/config"
	myZap "github.com/lintang-b-s/settlement-search/pkg/logger/zap"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func New() (*zap.Logger, func(), error) {
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("LOG_TIME_FORMAT")
	_ = viper.BindEnv("LOG_CONSOLE")
	viper.SetDefault("LOG_LEVEL", config.INFO_LEVEL)
	viper.SetDefault("LOG_TIME_FORMAT", time.RFC3339Nano)
	viper.SetDefault("LOG_CONSOLE", false)

	cfg := config.Configuration{
		Level:      viper.GetInt("LOG_LEVEL"),
		TimeFormat: viper.GetString("LOG_TIME_FORMAT"),
		Console:    viper.GetBool("LOG_CONSOLE"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}

	log, err := myZap.New(cfg)

	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = log.Sync()
	}

	return log, cleanup, nil
}
