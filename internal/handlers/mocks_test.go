package handlers_test

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"essaycoach-be/internal/models"
	"essaycoach-be/internal/repository"
	"essaycoach-be/internal/services"
)

type mockStatisticsService struct {
	rollupFn             func(ctx context.Context, userID string) (models.RollupStatistics, string)
	sectionSummaryFn     func(ctx context.Context, userID, sectionID string) (models.SectionSummary, error)
	recordErrorStatFn    func(ctx context.Context, userID string, req models.RecordErrorStatRequest) (*models.ErrorStatRecord, error)
	recordCompletenessFn func(ctx context.Context, userID string, req models.RecordCompletenessRequest) (*models.CompletenessStatRecord, error)
	putStyleFn           func(ctx context.Context, userID, sectionID string, a models.WritingStyleAnalysis) (models.WritingStyleAnalysis, error)
	getStyleFn           func(ctx context.Context, userID, sectionID string) (*models.WritingStyleAnalysis, error)
	refreshFn            func(ctx context.Context, userID string) (int, error)
	recordErrorCheckFn   func(ctx context.Context, userID, sectionID string, t models.SectionType, r models.ErrorCheckResult) (*models.ErrorStatRecord, error)
	recordVerdictFn      func(ctx context.Context, userID, sectionID string, t models.SectionType, v models.CompletenessVerdict) (*models.CompletenessStatRecord, error)
}

func (m *mockStatisticsService) Rollup(ctx context.Context, userID string) (models.RollupStatistics, string) {
	if m.rollupFn != nil {
		return m.rollupFn(ctx, userID)
	}
	return models.RollupStatistics{}, "live"
}

func (m *mockStatisticsService) SectionSummary(ctx context.Context, userID, sectionID string) (models.SectionSummary, error) {
	if m.sectionSummaryFn != nil {
		return m.sectionSummaryFn(ctx, userID, sectionID)
	}
	return models.SectionSummary{}, nil
}

func (m *mockStatisticsService) RecordErrorStat(ctx context.Context, userID string, req models.RecordErrorStatRequest) (*models.ErrorStatRecord, error) {
	if m.recordErrorStatFn != nil {
		return m.recordErrorStatFn(ctx, userID, req)
	}
	return &models.ErrorStatRecord{}, nil
}

func (m *mockStatisticsService) RecordCompleteness(ctx context.Context, userID string, req models.RecordCompletenessRequest) (*models.CompletenessStatRecord, error) {
	if m.recordCompletenessFn != nil {
		return m.recordCompletenessFn(ctx, userID, req)
	}
	return &models.CompletenessStatRecord{}, nil
}

func (m *mockStatisticsService) PutStyleAnalysis(ctx context.Context, userID, sectionID string, a models.WritingStyleAnalysis) (models.WritingStyleAnalysis, error) {
	if m.putStyleFn != nil {
		return m.putStyleFn(ctx, userID, sectionID, a)
	}
	return a, nil
}

func (m *mockStatisticsService) GetStyleAnalysis(ctx context.Context, userID, sectionID string) (*models.WritingStyleAnalysis, error) {
	if m.getStyleFn != nil {
		return m.getStyleFn(ctx, userID, sectionID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockStatisticsService) RefreshStyleAnalyses(ctx context.Context, userID string) (int, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockStatisticsService) RecordErrorCheck(ctx context.Context, userID, sectionID string, t models.SectionType, r models.ErrorCheckResult) (*models.ErrorStatRecord, error) {
	if m.recordErrorCheckFn != nil {
		return m.recordErrorCheckFn(ctx, userID, sectionID, t, r)
	}
	return &models.ErrorStatRecord{}, nil
}

func (m *mockStatisticsService) RecordCompletenessVerdict(ctx context.Context, userID, sectionID string, t models.SectionType, v models.CompletenessVerdict) (*models.CompletenessStatRecord, error) {
	if m.recordVerdictFn != nil {
		return m.recordVerdictFn(ctx, userID, sectionID, t, v)
	}
	return &models.CompletenessStatRecord{}, nil
}

type mockProgressService struct {
	monthlyFn func(ctx context.Context, userID string) (models.ProgressReport, error)
}

func (m *mockProgressService) MonthlyReport(ctx context.Context, userID string) (models.ProgressReport, error) {
	if m.monthlyFn != nil {
		return m.monthlyFn(ctx, userID)
	}
	return models.ProgressReport{}, nil
}

type mockAnalysisService struct {
	errorsFn       func(ctx context.Context, text string, t models.SectionType) models.ErrorCheckResult
	completenessFn func(ctx context.Context, text string, t models.SectionType, previous []string) models.CompletenessVerdict
	styleFn        func(ctx context.Context, text string) models.StyleResult
}

var _ services.AnalysisService = (*mockAnalysisService)(nil)

func (m *mockAnalysisService) CheckErrors(ctx context.Context, text string, t models.SectionType) models.ErrorCheckResult {
	if m.errorsFn != nil {
		return m.errorsFn(ctx, text, t)
	}
	return services.DefaultErrorResult()
}

func (m *mockAnalysisService) CheckCompleteness(ctx context.Context, text string, t models.SectionType, previous []string) models.CompletenessVerdict {
	if m.completenessFn != nil {
		return m.completenessFn(ctx, text, t, previous)
	}
	return services.DefaultCompleteness()
}

func (m *mockAnalysisService) AnalyzeStyle(ctx context.Context, text string) models.StyleResult {
	if m.styleFn != nil {
		return m.styleFn(ctx, text)
	}
	return services.DefaultStyle()
}

type mockEssayService struct {
	sectionsFn     func(ctx context.Context, userID string) ([]models.EssaySection, error)
	saveSectionsFn func(ctx context.Context, userID string, sections []models.EssaySection) ([]models.EssaySection, error)
	updateFn       func(ctx context.Context, userID, sectionID, content string) (models.EssaySection, error)
	addBodyFn      func(ctx context.Context, userID string) ([]models.EssaySection, models.EssaySection, error)
	deleteBodyFn   func(ctx context.Context, userID, sectionID string) ([]models.EssaySection, error)
	submitFn       func(ctx context.Context, userID, username string, req models.SubmitEssayRequest) (*models.Post, error)
	listPostsFn    func(ctx context.Context, userID string, page, perPage int) ([]models.Post, int, error)
}

func (m *mockEssayService) Sections(ctx context.Context, userID string) ([]models.EssaySection, error) {
	if m.sectionsFn != nil {
		return m.sectionsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockEssayService) SaveSections(ctx context.Context, userID string, sections []models.EssaySection) ([]models.EssaySection, error) {
	if m.saveSectionsFn != nil {
		return m.saveSectionsFn(ctx, userID, sections)
	}
	return sections, nil
}

func (m *mockEssayService) UpdateContent(ctx context.Context, userID, sectionID, content string) (models.EssaySection, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, sectionID, content)
	}
	return models.EssaySection{ID: sectionID, Content: content}, nil
}

func (m *mockEssayService) AddBodySection(ctx context.Context, userID string) ([]models.EssaySection, models.EssaySection, error) {
	if m.addBodyFn != nil {
		return m.addBodyFn(ctx, userID)
	}
	return nil, models.EssaySection{}, nil
}

func (m *mockEssayService) DeleteBodySection(ctx context.Context, userID, sectionID string) ([]models.EssaySection, error) {
	if m.deleteBodyFn != nil {
		return m.deleteBodyFn(ctx, userID, sectionID)
	}
	return nil, nil
}

func (m *mockEssayService) Submit(ctx context.Context, userID, username string, req models.SubmitEssayRequest) (*models.Post, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, userID, username, req)
	}
	return &models.Post{}, nil
}

func (m *mockEssayService) ListPosts(ctx context.Context, userID string, page, perPage int) ([]models.Post, int, error) {
	if m.listPostsFn != nil {
		return m.listPostsFn(ctx, userID, page, perPage)
	}
	return nil, 0, nil
}

// mockUserStore keeps users in a map keyed by email.
type mockUserStore struct {
	users     map[string]*models.User
	createErr error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]*models.User{}}
}

func (m *mockUserStore) Create(_ context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserStore) UpdateRefreshToken(_ context.Context, userID, token string) error {
	for _, u := range m.users {
		if u.ID.Hex() == userID {
			u.RefreshToken = token
			return nil
		}
	}
	return errors.New("user not found")
}

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(context.Context) error {
	return m.err
}
