package service

import (
	"strconv"
	"strings"

	"europarl-tamv/pkg/model"

	"github.com/pkg/errors"
)

// ErrInvalidIndex 句子序号不是整数
var ErrInvalidIndex = errors.New("句子序号不是整数")

type RecordConverter struct{}

func NewRecordConverter() *RecordConverter {
	return &RecordConverter{}
}

// ParseLine 将一行 TMV-annotator 输出转换为 TAMV 记录
// 列数不足、非限定动词或时态为 "-" 时返回 nil, nil（静默跳过）
// 只有句子序号无法解析时返回错误
func (c *RecordConverter) ParseLine(line string) (*model.NormalizedRecord, error) {
	raw, err := c.ParseRawRecord(line)
	if err != nil || raw == nil {
		return nil, err
	}
	if !raw.IsFinite() {
		return nil, nil
	}
	return c.Normalize(raw), nil
}

// ParseRawRecord 按 tab 拆分一行，列数不足 10 时返回 nil
// 第 10 列之后的内容忽略
func (c *RecordConverter) ParseRawRecord(line string) (*model.RawRecord, error) {
	parts := strings.Split(strings.TrimSpace(line), "\t")
	if len(parts) < model.RawRecordFields {
		return nil, nil
	}

	sentIdx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidIndex, "%q", parts[0])
	}

	return &model.RawRecord{
		SentenceIndex: sentIdx,
		TokenPosition: parts[1],
		VerbPhrase:    parts[2],
		Finite:        parts[3],
		Lemma:         parts[4],
		Tense:         parts[5],
		Mood:          parts[6],
		Voice:         parts[7],
		Progressive:   parts[8],
		Negation:      parts[9],
	}, nil
}

// Normalize 把原始标注映射到 TAMV 四个维度并分类，调用方需保证 raw 为限定动词
func (c *RecordConverter) Normalize(raw *model.RawRecord) *model.NormalizedRecord {
	// 语气直接使用 TMV-annotator 的标注，不根据时态推断
	rec := &model.NormalizedRecord{
		Index:  raw.SentenceIndex,
		Verb:   raw.Lemma,
		Tense:  MapTense(raw.Tense),
		Aspect: DeriveAspect(raw.Tense, raw.Progressive),
		Mood:   MapMood(raw.Mood),
		Voice:  MapVoice(raw.Voice),
		Source: model.SourceEuroparl,
	}
	rec.Category = Classify(rec)
	return rec
}

// MapTense 完成时折叠为基础时态，条件式按其形式归为现在/过去，未知代码默认 PRESENT
func MapTense(code string) model.Tense {
	switch code {
	case "pres", "presPerf", "condI":
		return model.TensePresent
	case "past", "pastPerf", "condII":
		return model.TensePast
	case "futureI", "futureII":
		return model.TenseFuture
	default:
		return model.TensePresent
	}
}

// IsPerfectCode 代码包含 "Perf" 或为 futureII / condII
func IsPerfectCode(code string) bool {
	return strings.Contains(code, "Perf") || code == "futureII" || code == "condII"
}

func DeriveAspect(code, progressive string) model.Aspect {
	perfect := IsPerfectCode(code)
	prog := progressive == "yes"

	switch {
	case perfect && prog:
		return model.AspectPerfectProgressive
	case perfect:
		return model.AspectPerfect
	case prog:
		return model.AspectProgressive
	default:
		return model.AspectSimple
	}
}

// MapMood 未知值或 "-" 默认 INDICATIVE
func MapMood(code string) model.Mood {
	switch code {
	case "subjunctive":
		return model.MoodSubjunctive
	case "indicative":
		return model.MoodIndicative
	default:
		return model.MoodIndicative
	}
}

// MapVoice 未知值或 "-" 默认 ACTIVE
func MapVoice(code string) model.Voice {
	switch code {
	case "passive":
		return model.VoicePassive
	case "active":
		return model.VoiceActive
	default:
		return model.VoiceActive
	}
}

// Classify 按 语气 > 语态 > 体 > 时态 的优先级给出报告分类
func Classify(rec *model.NormalizedRecord) string {
	switch {
	case rec.Mood == model.MoodSubjunctive:
		return "mood_subjunctive"
	case rec.Voice == model.VoicePassive:
		return "voice_passive"
	case rec.Aspect != model.AspectSimple:
		return "aspect_" + strings.ToLower(string(rec.Aspect))
	default:
		return "tense_" + strings.ToLower(string(rec.Tense))
	}
}
