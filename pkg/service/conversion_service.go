package service

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"europarl-tamv/config"
	"europarl-tamv/pkg/model"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// contextCheckInterval 每处理多少行检查一次 context
const contextCheckInterval = 1000

type ConversionService struct {
	converter *RecordConverter
	cfg       *config.ConvertConfig
}

func NewConversionService(cfg *config.ConvertConfig) *ConversionService {
	return &ConversionService{
		converter: NewRecordConverter(),
		cfg:       cfg,
	}
}

// MoodCount 某个语气的出现次数
type MoodCount struct {
	Mood  model.Mood
	Count int
}

// ConversionResult 一次转换的结果，Records 保持输入顺序
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Lines      int
	Records    []*model.NormalizedRecord
}

// MoodDistribution 按首次出现的顺序统计语气分布
func (r *ConversionResult) MoodDistribution() []MoodCount {
	counts := make([]MoodCount, 0)
	pos := make(map[model.Mood]int)
	for _, rec := range r.Records {
		i, ok := pos[rec.Mood]
		if !ok {
			i = len(counts)
			pos[rec.Mood] = i
			counts = append(counts, MoodCount{Mood: rec.Mood})
		}
		counts[i].Count++
	}
	return counts
}

// PrintSummary 输出转换数量、前 sampleSize 条样例以及语气分布
func (r *ConversionResult) PrintSummary(w io.Writer, sampleSize int) {
	fmt.Fprintf(w, "Converted %d verb annotations\n", len(r.Records))
	fmt.Fprintf(w, "Output: %s\n", r.OutputPath)

	fmt.Fprintln(w, "\nSample conversions:")
	for i, rec := range r.Records {
		if i >= sampleSize {
			break
		}
		fmt.Fprintf(w, "  %s: %s\n", rec.Verb, rec.Tag())
	}

	dist := r.MoodDistribution()
	parts := make([]string, 0, len(dist))
	for _, mc := range dist {
		parts = append(parts, fmt.Sprintf("%s: %d", mc.Mood, mc.Count))
	}
	fmt.Fprintf(w, "\nMood distribution: {%s}\n", strings.Join(parts, ", "))
}

// Convert 读取整个输入文件，转换后写入输出文件
// 输入文件不存在、输出文件无法写入或句子序号非法时返回错误
func (s *ConversionService) Convert(ctx context.Context) (*ConversionResult, error) {
	startTime := time.Now()
	result := &ConversionResult{
		InputPath:  s.cfg.InputPath(),
		OutputPath: s.cfg.OutputPath(),
		Records:    make([]*model.NormalizedRecord, 0),
	}

	if err := s.readInput(ctx, result); err != nil {
		return nil, err
	}
	if err := s.writeOutput(result); err != nil {
		return nil, err
	}

	zap.S().Infof("转换完成: 读取 %d 行, 输出 %d 条", result.Lines, len(result.Records))
	zap.S().Debugf("耗时：%s", time.Since(startTime))
	return result, nil
}

func (s *ConversionService) readInput(ctx context.Context, result *ConversionResult) error {
	f, err := os.Open(result.InputPath)
	if err != nil {
		return errors.Wrap(err, "打开输入文件失败")
	}
	defer f.Close()

	zap.S().Debugf("读取输入文件: %s", result.InputPath)
	return s.convertLines(ctx, f, result)
}

// maxLineSize 单行最大长度
const maxLineSize = 16 * 1024 * 1024

// scanLines 以 \n、\r\n 或单独的 \r 作为行结束符
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// \r 位于缓冲区末尾时需要更多数据判断是否为 \r\n
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (s *ConversionService) convertLines(ctx context.Context, r io.Reader, result *ConversionResult) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := scanner.Text()
		result.Lines++

		if result.Lines%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, "转换被取消")
			}
		}

		rec, err := s.converter.ParseLine(line)
		if err != nil {
			return errors.Wrapf(err, "第 %d 行", result.Lines)
		}
		if rec == nil {
			zap.S().Debugf("第 %d 行: 列数不足或非限定动词，跳过", result.Lines)
		} else {
			result.Records = append(result.Records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "读取输入文件失败")
	}
	return nil
}

// writeOutput 写入表头和所有记录，失败时输出文件可能不完整
func (s *ConversionService) writeOutput(result *ConversionResult) error {
	f, err := os.Create(result.OutputPath)
	if err != nil {
		return errors.Wrap(err, "创建输出文件失败")
	}
	defer f.Close()

	if err := WriteRecords(f, result.Records); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "关闭输出文件失败")
	}
	return nil
}

// WriteRecords 以 tab 分隔格式写出表头和记录
func WriteRecords(w io.Writer, records []*model.NormalizedRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(model.NormalizedHeader, "\t") + "\n"); err != nil {
		return errors.Wrap(err, "写入表头失败")
	}
	for _, rec := range records {
		if _, err := bw.WriteString(strings.Join(rec.Fields(), "\t") + "\n"); err != nil {
			return errors.Wrapf(err, "写入记录失败: %d %s", rec.Index, rec.Verb)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "写入输出文件失败")
	}
	return nil
}
