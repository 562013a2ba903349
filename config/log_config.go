package config

import (
	"strings"

	"github.com/pkg/errors"
)

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`             // debug / info / warn / error
	Development bool   `json:"development" yaml:"development"` // 使用控制台格式输出
}

func (l *LogConfig) Validate() []error {
	var errs = make([]error, 0)
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, errors.Errorf("不支持的日志级别: %s", l.Level))
	}
	return errs
}

func NewDefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level: "info",
	}
}
