package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"europarl-tamv/pkg/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ExportService 将转换结果写入 DuckDB，便于后续按分类做误差分析
type ExportService struct {
	db    *sql.DB
	table string
}

func NewExportService(db *sql.DB, table string) *ExportService {
	return &ExportService{
		db:    db,
		table: table,
	}
}

// CreateTable 表不存在时创建，已有数据保留
func (s *ExportService) CreateTable(ctx context.Context) error {
	if s.db == nil {
		return errors.New("DuckDB 连接未初始化")
	}

	createTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id TEXT,
			seq INTEGER,
			sent_idx INTEGER,
			verb TEXT,
			tense TEXT,
			aspect TEXT,
			mood TEXT,
			voice TEXT,
			category TEXT,
			source TEXT,
			created_at TIMESTAMP,
			PRIMARY KEY (run_id, seq)
		)
	`, s.table)

	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return errors.Wrap(err, "创建表失败")
	}

	zap.S().Debugf("DuckDB 表 %s 就绪", s.table)
	return nil
}

// Export 在一个事务中写入本次运行的全部记录，返回 run_id
func (s *ExportService) Export(ctx context.Context, records []*model.NormalizedRecord) (string, error) {
	if err := s.CreateTable(ctx); err != nil {
		return "", err
	}

	runID := uuid.NewString()
	createdAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "开启事务失败")
	}
	defer tx.Rollback()

	insertSQL := fmt.Sprintf(`
		INSERT INTO %s (run_id, seq, sent_idx, verb, tense, aspect, mood, voice, category, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.table)

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return "", errors.Wrap(err, "准备插入语句失败")
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.ExecContext(ctx,
			runID,
			i,
			rec.Index,
			rec.Verb,
			string(rec.Tense),
			string(rec.Aspect),
			string(rec.Mood),
			string(rec.Voice),
			rec.Category,
			rec.Source,
			createdAt,
		)
		if err != nil {
			return "", errors.Wrapf(err, "插入第 %d 条记录失败", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "提交事务失败")
	}

	zap.S().Infof("已导出 %d 条记录到 DuckDB 表 %s, run_id=%s", len(records), s.table, runID)
	return runID, nil
}

// CountRun 获取某次运行导出的记录数量
func (s *ExportService) CountRun(ctx context.Context, runID string) (int64, error) {
	if s.db == nil {
		return 0, errors.New("DuckDB 连接未初始化")
	}

	var count any
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE run_id = ?", s.table)
	if err := s.db.QueryRowContext(ctx, query, runID).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "查询数量失败")
	}

	n, err := cast.ToInt64E(count)
	if err != nil {
		return 0, errors.Wrap(err, "解析数量失败")
	}
	return n, nil
}

// CategoryCounts 统计某次运行各分类的记录数
func (s *ExportService) CategoryCounts(ctx context.Context, runID string) (map[string]int64, error) {
	if s.db == nil {
		return nil, errors.New("DuckDB 连接未初始化")
	}

	query := fmt.Sprintf("SELECT category, COUNT(*) FROM %s WHERE run_id = ? GROUP BY category", s.table)
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, errors.Wrap(err, "查询分类统计失败")
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var count any
		if err := rows.Scan(&category, &count); err != nil {
			return nil, errors.Wrap(err, "扫描分类统计失败")
		}
		n, err := cast.ToInt64E(count)
		if err != nil {
			return nil, errors.Wrap(err, "解析数量失败")
		}
		counts[category] = n
	}
	return counts, rows.Err()
}
