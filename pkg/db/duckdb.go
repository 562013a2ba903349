package db

import (
	"database/sql"
	"sync"

	"europarl-tamv/config"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var duckDB *sql.DB
var duckDBOnce sync.Once

// InitDuckDB 初始化 duckdb 连接
func InitDuckDB(cfg *config.DuckDBConfig) error {
	var err error
	duckDBOnce.Do(func() {
		duckDB, err = OpenDuckDB(cfg.DSN())
		if err != nil {
			zap.S().Errorf("连接 duckdb 失败: %v", err)
			return
		}
		zap.S().Debug("duckdb 初始化完成...")
	})
	return err
}

// OpenDuckDB 打开并测试一个 duckdb 连接，dsn 为空时使用内存数据库
func OpenDuckDB(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "打开 duckdb 失败")
	}

	// 测试连接
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "duckdb 连接测试失败")
	}
	return conn, nil
}

// GetDuckDB 获取 DuckDB 连接
func GetDuckDB() *sql.DB {
	return duckDB
}

// CloseDuckDB 关闭 DuckDB 连接
func CloseDuckDB() error {
	if duckDB == nil {
		return nil
	}
	return duckDB.Close()
}
