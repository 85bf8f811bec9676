package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/service/practice"
	"github.com/heartmarshall/deutsch-vocab/internal/service/stats"
)

// practiceServiceMock is a hand-written moq-style mock of practiceService.
type practiceServiceMock struct {
	NextWordFunc         func(ctx context.Context, input practice.NextWordInput) (*practice.NextWordResult, error)
	SubmitAnswerFunc     func(ctx context.Context, input practice.SubmitAnswerInput) (*practice.Evaluation, error)
	SubmitCorrectionFunc func(ctx context.Context, input practice.CorrectionInput) (*practice.Evaluation, error)
	MarkDifficultyFunc   func(ctx context.Context, input practice.DifficultyInput) (*practice.DifficultyResult, error)
	ResetFunc            func(ctx context.Context, input practice.ResetInput) (*practice.ResetResult, error)

	mu          sync.Mutex
	nextCalls   []practice.NextWordInput
	answerCalls []practice.SubmitAnswerInput
	resetCalls  []practice.ResetInput
}

func (m *practiceServiceMock) NextWord(ctx context.Context, input practice.NextWordInput) (*practice.NextWordResult, error) {
	m.mu.Lock()
	m.nextCalls = append(m.nextCalls, input)
	m.mu.Unlock()
	if m.NextWordFunc == nil {
		panic("practiceServiceMock.NextWordFunc: method is nil but NextWord was just called")
	}
	return m.NextWordFunc(ctx, input)
}

func (m *practiceServiceMock) SubmitAnswer(ctx context.Context, input practice.SubmitAnswerInput) (*practice.Evaluation, error) {
	m.mu.Lock()
	m.answerCalls = append(m.answerCalls, input)
	m.mu.Unlock()
	if m.SubmitAnswerFunc == nil {
		panic("practiceServiceMock.SubmitAnswerFunc: method is nil but SubmitAnswer was just called")
	}
	return m.SubmitAnswerFunc(ctx, input)
}

func (m *practiceServiceMock) SubmitCorrection(ctx context.Context, input practice.CorrectionInput) (*practice.Evaluation, error) {
	if m.SubmitCorrectionFunc == nil {
		panic("practiceServiceMock.SubmitCorrectionFunc: method is nil but SubmitCorrection was just called")
	}
	return m.SubmitCorrectionFunc(ctx, input)
}

func (m *practiceServiceMock) MarkDifficulty(ctx context.Context, input practice.DifficultyInput) (*practice.DifficultyResult, error) {
	if m.MarkDifficultyFunc == nil {
		panic("practiceServiceMock.MarkDifficultyFunc: method is nil but MarkDifficulty was just called")
	}
	return m.MarkDifficultyFunc(ctx, input)
}

func (m *practiceServiceMock) Reset(ctx context.Context, input practice.ResetInput) (*practice.ResetResult, error) {
	m.mu.Lock()
	m.resetCalls = append(m.resetCalls, input)
	m.mu.Unlock()
	if m.ResetFunc == nil {
		panic("practiceServiceMock.ResetFunc: method is nil but Reset was just called")
	}
	return m.ResetFunc(ctx, input)
}

// statsServiceMock is a hand-written moq-style mock of statsService.
type statsServiceMock struct {
	LevelStatsFunc        func(ctx context.Context, level string) (domain.LevelStats, error)
	OverviewFunc          func(ctx context.Context, levels []string) (*stats.Overview, error)
	TopDifficultWordsFunc func(ctx context.Context, level string, limit int) ([]domain.WordRecord, error)
	ListLevelsFunc        func(ctx context.Context) ([]stats.LevelSummary, error)
}

func (m *statsServiceMock) LevelStats(ctx context.Context, level string) (domain.LevelStats, error) {
	if m.LevelStatsFunc == nil {
		panic("statsServiceMock.LevelStatsFunc: method is nil but LevelStats was just called")
	}
	return m.LevelStatsFunc(ctx, level)
}

func (m *statsServiceMock) Overview(ctx context.Context, levels []string) (*stats.Overview, error) {
	if m.OverviewFunc == nil {
		panic("statsServiceMock.OverviewFunc: method is nil but Overview was just called")
	}
	return m.OverviewFunc(ctx, levels)
}

func (m *statsServiceMock) TopDifficultWords(ctx context.Context, level string, limit int) ([]domain.WordRecord, error) {
	if m.TopDifficultWordsFunc == nil {
		panic("statsServiceMock.TopDifficultWordsFunc: method is nil but TopDifficultWords was just called")
	}
	return m.TopDifficultWordsFunc(ctx, level, limit)
}

func (m *statsServiceMock) ListLevels(ctx context.Context) ([]stats.LevelSummary, error) {
	if m.ListLevelsFunc == nil {
		panic("statsServiceMock.ListLevelsFunc: method is nil but ListLevels was just called")
	}
	return m.ListLevelsFunc(ctx)
}

type attemptListerMock struct {
	ListRecentFunc func(ctx context.Context, level string, limit int) ([]domain.Attempt, error)
}

func (m *attemptListerMock) ListRecent(ctx context.Context, level string, limit int) ([]domain.Attempt, error) {
	return m.ListRecentFunc(ctx, level, limit)
}
