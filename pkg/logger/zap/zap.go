package zap

import (
	"github.com/lintang-b-s/settlement-search/pkg/logger/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger: json on stdout (or console when cfg.Console), timestamps in cfg.TimeFormat.
func New(cfg config.Configuration) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.Level(cfg.Level))
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.EncoderConfig.TimeKey = "time"
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	if cfg.Console {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return zapCfg.Build()
}
