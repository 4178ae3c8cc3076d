package job

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) List(ctx context.Context, filter repository.ArticleFilter, offset, limit int) ([]*domain.Article, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) IncrementViewCount(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func setupFlushJob(t *testing.T) (*ViewCountFlushJob, *MockArticleRepository, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	mockRepo := new(MockArticleRepository)
	return NewViewCountFlushJob(mockRepo, rdb, zap.NewNop()), mockRepo, mr, rdb
}

func TestViewCountFlushJob_Run_FlushesCounters(t *testing.T) {
	job, mockRepo, mr, _ := setupFlushJob(t)

	articleID1 := uuid.New()
	articleID2 := uuid.New()
	mr.Set(viewCountKeyPrefix+articleID1.String(), "7")
	mr.Set(viewCountKeyPrefix+articleID2.String(), "3")

	mockRepo.On("IncrementViewCount", mock.Anything, articleID1, int64(7)).Return(nil)
	mockRepo.On("IncrementViewCount", mock.Anything, articleID2, int64(3)).Return(nil)

	job.Run()

	mockRepo.AssertExpectations(t)

	// Counters are consumed once applied
	assert.False(t, mr.Exists(viewCountKeyPrefix+articleID1.String()))
	assert.False(t, mr.Exists(viewCountKeyPrefix+articleID2.String()))
}

func TestViewCountFlushJob_Run_NoCounters(t *testing.T) {
	job, mockRepo, _, _ := setupFlushJob(t)

	job.Run()

	mockRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestViewCountFlushJob_Run_RestoresCounterOnError(t *testing.T) {
	job, mockRepo, mr, _ := setupFlushJob(t)

	articleID := uuid.New()
	key := viewCountKeyPrefix + articleID.String()
	mr.Set(key, "5")

	mockRepo.On("IncrementViewCount", mock.Anything, articleID, int64(5)).
		Return(assert.AnError)

	job.Run()

	mockRepo.AssertExpectations(t)

	// The counter survives a failed flush
	val, err := mr.Get(key)
	assert.NoError(t, err)
	count, _ := strconv.ParseInt(val, 10, 64)
	assert.Equal(t, int64(5), count)
}

func TestViewCountFlushJob_Run_DropsMalformedKeys(t *testing.T) {
	job, mockRepo, mr, _ := setupFlushJob(t)

	key := viewCountKeyPrefix + "not-a-uuid"
	mr.Set(key, "4")

	job.Run()

	mockRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, mr.Exists(key))
}

func TestViewCountFlushJob_Run_IgnoresOtherKeys(t *testing.T) {
	job, mockRepo, mr, _ := setupFlushJob(t)

	mr.Set("auth:blacklist:sometoken", "1")

	job.Run()

	mockRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, mr.Exists("auth:blacklist:sometoken"))
}
