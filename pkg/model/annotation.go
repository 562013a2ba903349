package model

import "strconv"

// SourceEuroparl 标识数据来源
const SourceEuroparl = "Ramm et al. (Europarl)"

// RawRecordFields 一行 TMV-annotator 输出至少包含的列数
const RawRecordFields = 10

type Tense string

const (
	TensePresent Tense = "PRESENT"
	TensePast    Tense = "PAST"
	TenseFuture  Tense = "FUTURE"
)

type Aspect string

const (
	AspectSimple             Aspect = "SIMPLE"
	AspectPerfect            Aspect = "PERFECT"
	AspectProgressive        Aspect = "PROGRESSIVE"
	AspectPerfectProgressive Aspect = "PERFECT_PROGRESSIVE"
)

type Mood string

const (
	MoodIndicative  Mood = "INDICATIVE"
	MoodSubjunctive Mood = "SUBJUNCTIVE"
)

type Voice string

const (
	VoiceActive  Voice = "ACTIVE"
	VoicePassive Voice = "PASSIVE"
)

// RawRecord 表示 TMV-annotator 输出中的一行（europarl_expected.tsv）
type RawRecord struct {
	SentenceIndex int    // 句子序号
	TokenPosition string // 词元位置
	VerbPhrase    string // 动词短语
	Finite        string // 是否限定动词 yes/no
	Lemma         string // 词元
	Tense         string // pres, past, presPerf, pastPerf, futureI, futureII, condI, condII 或 "-"
	Mood          string // indicative, subjunctive 或 "-"
	Voice         string // active, passive 或 "-"
	Progressive   string // yes/no
	Negation      string // yes/no
}

// IsFinite 非限定动词的时态/语气/语态均为 "-"，不参与转换
func (r *RawRecord) IsFinite() bool {
	return r.Tense != "-" && r.Finite != "no"
}

// NormalizedRecord 表示 TAMV 验证格式中的一行（europarl_tamv.tsv）
type NormalizedRecord struct {
	Index    int    `json:"index"`
	Verb     string `json:"verb"`
	Tense    Tense  `json:"tense"`
	Aspect   Aspect `json:"aspect"`
	Mood     Mood   `json:"mood"`
	Voice    Voice  `json:"voice"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

// NormalizedHeader 输出文件表头
var NormalizedHeader = []string{"index", "verb", "tense", "aspect", "mood", "voice", "category", "source"}

// Fields 按表头顺序返回各列
func (n *NormalizedRecord) Fields() []string {
	return []string{
		strconv.Itoa(n.Index),
		n.Verb,
		string(n.Tense),
		string(n.Aspect),
		string(n.Mood),
		string(n.Voice),
		n.Category,
		n.Source,
	}
}

// Tag 返回 TENSE-ASPECT-MOOD-VOICE 形式的标签
func (n *NormalizedRecord) Tag() string {
	return string(n.Tense) + "-" + string(n.Aspect) + "-" + string(n.Mood) + "-" + string(n.Voice)
}
