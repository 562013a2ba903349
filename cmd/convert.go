package cmd

import (
	"context"
	"errors"
	"sort"

	"europarl-tamv/config"
	"europarl-tamv/pkg/db"
	"europarl-tamv/pkg/logger"
	"europarl-tamv/pkg/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewConvertCommand(configFilePath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "转换 TMV-annotator 输出",
		Long:  "读取 TMV-annotator 的标注结果，映射为 TAMV 格式写入输出文件，并打印转换摘要",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, *configFilePath)
		},
	}
	return cmd
}

func runConvert(cmd *cobra.Command, configFilePath string) error {
	cfg, found, err := config.LoadOrDefault(configFilePath)
	if err != nil {
		zap.S().Errorf("读取本地配置文件错误:%s", err.Error())
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		err := errors.Join(errs...)
		zap.S().Errorf("本地配置文件验证错误:%s", err)
		return err
	}

	syncLogger, err := logger.InitLogger(cfg.LogConfig)
	if err != nil {
		return err
	}
	defer syncLogger()

	if found {
		zap.S().Debugf("使用配置文件: %s", configFilePath)
	} else {
		zap.S().Debugf("配置文件 %s 不存在，使用默认配置", configFilePath)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	conversionService := service.NewConversionService(cfg.ConvertConfig)
	result, err := conversionService.Convert(ctx)
	if err != nil {
		zap.S().Errorf("转换失败:%s", err.Error())
		return err
	}

	result.PrintSummary(cmd.OutOrStdout(), cfg.ConvertConfig.SampleSize)

	if cfg.DuckDBConfig == nil || !cfg.DuckDBConfig.Enabled {
		return nil
	}
	return exportToDuckDB(ctx, cfg.DuckDBConfig, result)
}

func exportToDuckDB(ctx context.Context, cfg *config.DuckDBConfig, result *service.ConversionResult) error {
	if err := db.InitDuckDB(cfg); err != nil {
		zap.S().Errorf("DuckDB 连接错误:%s", err.Error())
		return err
	}
	defer db.CloseDuckDB()

	exportService := service.NewExportService(db.GetDuckDB(), cfg.Table)
	runID, err := exportService.Export(ctx, result.Records)
	if err != nil {
		zap.S().Errorf("导出失败:%s", err.Error())
		return err
	}

	reportExport(ctx, exportService, runID)
	return nil
}

// exportStats 一次导出的统计信息
type exportStats struct {
	Count      int64
	Categories map[string]int64
}

// reportExport 记录本次导出的数量和分类分布，统计失败只打印警告
func reportExport(ctx context.Context, exportService *service.ExportService, runID string) *exportStats {
	stats := &exportStats{}

	count, err := exportService.CountRun(ctx, runID)
	if err != nil {
		zap.S().Warnf("获取统计信息失败:%s", err.Error())
	} else {
		stats.Count = count
		zap.S().Infof("DuckDB 中本次导出的记录数量: %d", count)
	}

	categories, err := exportService.CategoryCounts(ctx, runID)
	if err != nil {
		zap.S().Warnf("获取分类统计失败:%s", err.Error())
		return stats
	}
	stats.Categories = categories

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		zap.S().Infof("分类 %s: %d", name, categories[name])
	}
	return stats
}
