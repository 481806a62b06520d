package news

import (
	"math"
	"regexp"
	"strings"
)

// ControversyScore is the 0-100 provocation metric with its discrete label
// and the per-component breakdown it was combined from.
type ControversyScore struct {
	Value     int       `json:"score"`
	Label     string    `json:"label"`
	Emoji     string    `json:"emoji"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown holds the five sub-scores, each in [0,100].
type Breakdown struct {
	Keyword  int `json:"keyword"`
	Pattern  int `json:"pattern"`
	Question int `json:"question"`
	Emotion  int `json:"emotion"`
	Length   int `json:"length"`
}

// Weights combines the breakdown into the final value. Tuned by hand; the
// defaults are a product decision, not a derivable constant.
type Weights struct {
	Keyword  float64
	Pattern  float64
	Question float64
	Emotion  float64
	Length   float64
}

// Thresholds are the label breakpoints; comparison is >=, ties go up.
type Thresholds struct {
	Explosive int
	Hot       int
	Spicy     int
}

// ScorerConfig bundles everything tunable about the scorer.
type ScorerConfig struct {
	Weights        Weights
	Thresholds     Thresholds
	Lexicon        []WeightedKeyword
	Emotion        []string
	KeywordCeiling int // cumulative lexicon weight at which the keyword component saturates
}

// DefaultScorerConfig returns the tuned production constants.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Weights:        Weights{Keyword: 0.30, Pattern: 0.25, Question: 0.20, Emotion: 0.15, Length: 0.10},
		Thresholds:     Thresholds{Explosive: 75, Hot: HotThreshold, Spicy: 40},
		Lexicon:        DefaultControversyLexicon(),
		Emotion:        DefaultEmotionLexicon(),
		KeywordCeiling: 4,
	}
}

// HotThreshold is the default is_hot cutoff; a configured scorer may move it
// together with the Hot label breakpoint.
const HotThreshold = 60

const patternIncrement = 25
const emotionIncrement = 40

var (
	capsRunRe  = regexp.MustCompile(`[A-ZА-ЯЁ]{3,}`)
	versusRe   = regexp.MustCompile(`(?i)\S+\s+(vs\.?|против)\s+\S+`)
	contrastRe = regexp.MustCompile(`(?i)(^|[^\p{L}])(but|however|но|однако)($|[^\p{L}])`)
)

// Scorer computes controversy scores. Stateless after construction.
type Scorer struct {
	cfg      ScorerConfig
	lexMatch []*matcher
	emotion  []*matcher
}

// NewScorer builds a scorer; zero-value config fields fall back to defaults.
func NewScorer(cfg ScorerConfig) *Scorer {
	def := DefaultScorerConfig()
	if cfg.Weights == (Weights{}) {
		cfg.Weights = def.Weights
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = def.Thresholds
	}
	if cfg.Lexicon == nil {
		cfg.Lexicon = def.Lexicon
	}
	if cfg.Emotion == nil {
		cfg.Emotion = def.Emotion
	}
	if cfg.KeywordCeiling <= 0 {
		cfg.KeywordCeiling = def.KeywordCeiling
	}
	s := &Scorer{cfg: cfg}
	for _, wk := range cfg.Lexicon {
		s.lexMatch = append(s.lexMatch, newMatcher([]string{wk.Keyword}))
	}
	for _, k := range cfg.Emotion {
		s.emotion = append(s.emotion, newMatcher([]string{k}))
	}
	return s
}

// Score is total: any input, including empty or malformed text, yields a
// well-formed score. Empty text bottoms out at zero on every component.
func (s *Scorer) Score(title, summary string) ControversyScore {
	text := strings.TrimSpace(title + " " + summary)
	if text == "" {
		return s.finish(Breakdown{})
	}
	lower := strings.ToLower(text)

	b := Breakdown{
		Keyword:  s.keywordComponent(lower),
		Pattern:  s.patternComponent(title, text, lower),
		Question: questionComponent(text),
		Emotion:  s.emotionComponent(lower),
		Length:   lengthComponent(text),
	}
	return s.finish(b)
}

func (s *Scorer) finish(b Breakdown) ControversyScore {
	w := s.cfg.Weights
	v := w.Keyword*float64(b.Keyword) +
		w.Pattern*float64(b.Pattern) +
		w.Question*float64(b.Question) +
		w.Emotion*float64(b.Emotion) +
		w.Length*float64(b.Length)
	value := int(math.Round(v))
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	label, emoji := s.labelFor(value)
	return ControversyScore{Value: value, Label: label, Emoji: emoji, Breakdown: b}
}

// HotThreshold returns the configured is_hot cutoff. It is the same
// breakpoint that produces the Hot label, so labels and is_hot never
// disagree under tuned thresholds.
func (s *Scorer) HotThreshold() int {
	return s.cfg.Thresholds.Hot
}

func (s *Scorer) labelFor(value int) (string, string) {
	t := s.cfg.Thresholds
	switch {
	case value >= t.Explosive:
		return "Explosive", "💥"
	case value >= t.Hot:
		return "Hot", "🔥"
	case value >= t.Spicy:
		return "Spicy", "🌶️"
	default:
		return "Mild", "😐"
	}
}

// keywordComponent sums lexicon weights over the text and scales onto
// [0,100], saturating once the cumulative weight reaches the ceiling.
func (s *Scorer) keywordComponent(lower string) int {
	raw := 0
	for i, wk := range s.cfg.Lexicon {
		if s.lexMatch[i].match(lower) {
			raw += wk.Weight
		}
	}
	score := raw * 100 / s.cfg.KeywordCeiling
	if score > 100 {
		score = 100
	}
	return score
}

// patternComponent checks structural provocation markers: a question-mark
// ending, an ALL-CAPS run, an "X vs Y" construct and contrast conjunctions.
func (s *Scorer) patternComponent(title, text, lower string) int {
	score := 0
	if strings.HasSuffix(strings.TrimSpace(title), "?") {
		score += patternIncrement
	}
	if capsRunRe.MatchString(text) {
		score += patternIncrement
	}
	if versusRe.MatchString(text) {
		score += patternIncrement
	}
	if contrastRe.MatchString(lower) {
		score += patternIncrement
	}
	if score > 100 {
		score = 100
	}
	return score
}

func questionComponent(text string) int {
	switch strings.Count(text, "?") {
	case 0:
		return 30
	case 1:
		return 70
	default:
		return 100
	}
}

func (s *Scorer) emotionComponent(lower string) int {
	score := 0
	for _, m := range s.emotion {
		if m.match(lower) {
			score += emotionIncrement
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

// lengthComponent rewards short punchy items: headlines without a body read
// more provocative than long measured write-ups.
func lengthComponent(text string) int {
	switch n := len([]rune(text)); {
	case n < 100:
		return 100
	case n <= 200:
		return 80
	case n <= 300:
		return 60
	default:
		return 40
	}
}
