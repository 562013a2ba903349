package config

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// ConvertConfig 描述输入输出文件的位置
type ConvertConfig struct {
	DataDir    string `json:"dataDir" yaml:"dataDir"`       // 数据目录
	InputFile  string `json:"inputFile" yaml:"inputFile"`   // TMV-annotator 输出文件名
	OutputFile string `json:"outputFile" yaml:"outputFile"` // TAMV 格式输出文件名
	SampleSize int    `json:"sampleSize" yaml:"sampleSize"` // 控制台打印的样例条数
}

func (c *ConvertConfig) Validate() []error {
	var errs = make([]error, 0)
	if c.DataDir == "" {
		errs = append(errs, errors.Errorf("数据目录不能为空"))
	}
	if c.InputFile == "" {
		errs = append(errs, errors.Errorf("输入文件名不能为空"))
	}
	if c.OutputFile == "" {
		errs = append(errs, errors.Errorf("输出文件名不能为空"))
	}
	if c.InputFile != "" && c.InputFile == c.OutputFile {
		errs = append(errs, errors.Errorf("输入文件与输出文件不能相同: %s", c.InputFile))
	}
	if c.SampleSize < 0 {
		errs = append(errs, errors.Errorf("样例条数不能为负数: %d", c.SampleSize))
	}
	return errs
}

func NewDefaultConvertConfig() *ConvertConfig {
	return &ConvertConfig{
		DataDir:    "./data",
		InputFile:  "europarl_expected.tsv",
		OutputFile: "europarl_tamv.tsv",
		SampleSize: 5,
	}
}

func (c *ConvertConfig) InputPath() string {
	return filepath.Join(c.DataDir, c.InputFile)
}

func (c *ConvertConfig) OutputPath() string {
	return filepath.Join(c.DataDir, c.OutputFile)
}
