package news

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreIsTotalAndBounded(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	inputs := []struct{ title, summary string }{
		{"", ""},
		{"   ", "\t\n"},
		{"обычная новость без примет", "ничего провокационного тут нет"},
		{"WHY IS EVERYTHING ON FIRE???", "shock horror scandal catastrophe sensation"},
		{"ÐŸÑ€Ð¸Ð²ÐµÑ‚ mojibake", "<<<<>>>> ???? &&&&"},
		{strings.Repeat("слово ", 200), strings.Repeat("word ", 200)},
		{"???", "???"},
	}
	for _, in := range inputs {
		got := s.Score(in.title, in.summary)
		assert.GreaterOrEqual(t, got.Value, 0, "title=%q", in.title)
		assert.LessOrEqual(t, got.Value, 100, "title=%q", in.title)
		for _, c := range []int{got.Breakdown.Keyword, got.Breakdown.Pattern, got.Breakdown.Question, got.Breakdown.Emotion, got.Breakdown.Length} {
			assert.GreaterOrEqual(t, c, 0)
			assert.LessOrEqual(t, c, 100)
		}
		assert.NotEmpty(t, got.Label)
	}
}

func TestScoreEmptyTextBottomsOut(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	got := s.Score("", "")
	assert.Equal(t, 0, got.Value)
	assert.Equal(t, Breakdown{}, got.Breakdown)
	assert.Equal(t, "Mild", got.Label)
}

func TestLabelThresholds(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	cases := []struct {
		value int
		label string
	}{
		{100, "Explosive"},
		{75, "Explosive"},
		{74, "Hot"},
		{60, "Hot"},
		{59, "Spicy"},
		{40, "Spicy"},
		{39, "Mild"},
		{0, "Mild"},
	}
	for _, c := range cases {
		label, emoji := s.labelFor(c.value)
		assert.Equal(t, c.label, label, "value=%d", c.value)
		assert.NotEmpty(t, emoji)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	first := s.Score("Скандал в парламенте?", "Министр против оппозиции, но итог неясен")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Score("Скандал в парламенте?", "Министр против оппозиции, но итог неясен"))
	}
}

func TestScoreProvocativeAIHeadline(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	got := s.Score("GPT-5 заменит программистов?", "")
	require.GreaterOrEqual(t, got.Value, 60, "breakdown: %+v", got.Breakdown)
	assert.Contains(t, []string{"Hot", "Explosive"}, got.Label)

	// The markers the headline actually carries.
	assert.Equal(t, 100, got.Breakdown.Keyword, "gpt + заменит saturate the lexicon ceiling")
	assert.Equal(t, 70, got.Breakdown.Question)
	assert.Equal(t, 100, got.Breakdown.Length)
	assert.GreaterOrEqual(t, got.Breakdown.Pattern, 50, "trailing ? and the GPT caps run")
}

func TestQuestionComponentSteps(t *testing.T) {
	assert.Equal(t, 30, questionComponent("no questions here"))
	assert.Equal(t, 70, questionComponent("really?"))
	assert.Equal(t, 100, questionComponent("really? truly?"))
}

func TestLengthComponentBreakpoints(t *testing.T) {
	assert.Equal(t, 100, lengthComponent(strings.Repeat("a", 99)))
	assert.Equal(t, 80, lengthComponent(strings.Repeat("a", 150)))
	assert.Equal(t, 60, lengthComponent(strings.Repeat("a", 250)))
	assert.Equal(t, 40, lengthComponent(strings.Repeat("a", 400)))
	// Rune count, not byte count: 50 Cyrillic letters are well under 100.
	assert.Equal(t, 100, lengthComponent(strings.Repeat("ж", 50)))
}

func TestCustomWeightsRespected(t *testing.T) {
	cfg := DefaultScorerConfig()
	cfg.Weights = Weights{Question: 1.0}

	s := NewScorer(cfg)
	got := s.Score("а?", "")
	assert.Equal(t, 70, got.Value, "question component alone should decide the value")
}
