package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
)

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type DuckDBConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"` // 是否将转换结果导出到 DuckDB
	DBPath  string `json:"dbPath" yaml:"dbPath"`   // DuckDB 数据库文件路径
	Table   string `json:"table" yaml:"table"`     // 导出表名
}

func (d *DuckDBConfig) Validate() []error {
	var errs = make([]error, 0)
	if !d.Enabled {
		return errs
	}
	if d.DBPath == "" {
		errs = append(errs, errors.Errorf("DuckDB 数据库路径不能为空"))
		return errs
	}
	if !tableNameRegex.MatchString(d.Table) {
		errs = append(errs, errors.Errorf("DuckDB 表名不合法: %q", d.Table))
	}

	// 确保目录存在
	dir := filepath.Dir(d.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		errs = append(errs, errors.Errorf("创建 DuckDB 目录失败: %v", err))
	}

	return errs
}

func NewDefaultDuckDBConfig() *DuckDBConfig {
	return &DuckDBConfig{
		Enabled: false,
		DBPath:  "./data/tamv.duckdb",
		Table:   "tamv_annotations",
	}
}

func (d *DuckDBConfig) DSN() string {
	return d.DBPath
}
