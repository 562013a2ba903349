package logger

import (
	"strings"

	"europarl-tamv/config"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// InitLogger 根据配置构建 zap 日志并替换全局 logger，返回的函数用于刷新缓冲
func InitLogger(cfg *config.LogConfig) (func(), error) {
	if cfg == nil {
		cfg = config.NewDefaultLogConfig()
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level := strings.ToLower(cfg.Level)
	if level == "" {
		level = "info"
	}
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "解析日志级别失败: %s", cfg.Level)
	}
	zapCfg.Level = atomicLevel

	l, err := zapCfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "初始化日志失败")
	}
	undo := zap.ReplaceGlobals(l)
	return func() {
		_ = l.Sync()
		undo()
	}, nil
}
