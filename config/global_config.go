package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type IConfig interface {
	Validate() []error
}

var (
	_ IConfig = (*GlobalConfig)(nil)
	_ IConfig = (*ConvertConfig)(nil)
	_ IConfig = (*DuckDBConfig)(nil)
	_ IConfig = (*LogConfig)(nil)
)

type GlobalConfig struct {
	ConvertConfig *ConvertConfig `json:"convert" yaml:"convert"`
	DuckDBConfig  *DuckDBConfig  `json:"duckdb" yaml:"duckdb"`
	LogConfig     *LogConfig     `json:"log" yaml:"log"`
}

func (g *GlobalConfig) Validate() []error {
	var errs = make([]error, 0)
	if g.ConvertConfig == nil {
		errs = append(errs, errors.Errorf("convert 配置未设置"))
	} else if es := g.ConvertConfig.Validate(); len(es) > 0 {
		errs = append(errs, es...)
	}
	if g.DuckDBConfig != nil {
		if es := g.DuckDBConfig.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	if g.LogConfig != nil {
		if es := g.LogConfig.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	return errs
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		ConvertConfig: NewDefaultConvertConfig(),
		DuckDBConfig:  NewDefaultDuckDBConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}

func TryLoadFromDisk(configFilePath string) (*GlobalConfig, error) {
	_, err := os.Stat(configFilePath)
	if err != nil {
		return nil, err
	}
	dir, file := filepath.Split(configFilePath)
	fileType := filepath.Ext(file)
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(file, fileType))
	v.SetConfigType(strings.TrimPrefix(fileType, "."))
	// 路径只允许通过配置文件修改，不读取环境变量
	if err := v.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		return nil, errors.Errorf("解析配置文件错误:%s", err.Error())
	}
	cfg := NewDefaultGlobalConfig()
	if err := v.Unmarshal(cfg, func(config *mapstructure.DecoderConfig) {
		config.TagName = strings.TrimPrefix(fileType, ".")
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault 配置文件不存在时使用默认配置，其余错误原样返回
func LoadOrDefault(configFilePath string) (*GlobalConfig, bool, error) {
	cfg, err := TryLoadFromDisk(configFilePath)
	if err == nil {
		return cfg, true, nil
	}
	if os.IsNotExist(errors.Cause(err)) {
		return NewDefaultGlobalConfig(), false, nil
	}
	return nil, false, err
}
