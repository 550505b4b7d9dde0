package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dietdesk/backend/internal/calculator"
	"github.com/dietdesk/backend/internal/domain"
	"github.com/dietdesk/backend/internal/infrastructure/usda"
	"go.uber.org/zap"
)

const (
	searchCachePrefix = "foods:search:"
	itemCachePrefix   = "foods:item:"
	sourceCache       = "Cache"
	defaultCacheTTL   = 720 * time.Hour // 30 days
)

// specialCharsRegex removes characters that cause USDA API/nginx proxy errors
var specialCharsRegex = regexp.MustCompile(`[#%+@!^*()=\[\]{}<>|\\~` + "`" + `]`)

// FoodServiceConfig holds configuration for the food service
type FoodServiceConfig struct {
	CacheTTL            time.Duration
	MaxResults          int
	MinMatchScore       float64
	EnableFuzzyMatching bool
	EnableDebugLogging  bool
}

// FoodService looks foods up in FoodData Central with caching and feeds
// them to the nutrient totals aggregator
type FoodService struct {
	cache           domain.CacheRepository
	usdaClient      domain.USDAClient
	preprocessor    *QueryPreprocessor
	matchingService *MatchingService
	cacheTTL        time.Duration
	logger          *zap.Logger
}

// NewFoodService creates a new food service. usdaClient may be nil, in which
// case lookups fail with ErrFoodSourceUnavailable.
func NewFoodService(
	cache domain.CacheRepository,
	usdaClient domain.USDAClient,
	config FoodServiceConfig,
	logger *zap.Logger,
) *FoodService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &FoodService{
		cache:        cache,
		usdaClient:   usdaClient,
		preprocessor: NewQueryPreprocessor(logger, config.EnableDebugLogging),
		matchingService: NewMatchingService(MatchConfig{
			MinScore:            config.MinMatchScore,
			MaxResults:          config.MaxResults,
			EnableFuzzyMatching: config.EnableFuzzyMatching,
			EnableDebugLogging:  config.EnableDebugLogging,
		}, logger),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Available reports whether a food database is configured
func (s *FoodService) Available() bool {
	return s.usdaClient != nil
}

// SearchFoods returns the foods best matching a free-text query.
// Flow: normalize query -> check cache -> search USDA -> rank -> cache -> return
func (s *FoodService) SearchFoods(ctx context.Context, query string) ([]domain.FoodItem, error) {
	if !s.Available() {
		return nil, domain.ErrFoodSourceUnavailable
	}

	normalized := s.preprocessor.PreprocessQuery(query)
	if normalized == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := searchCachePrefix + normalized
	var cached []domain.FoodItem
	if s.getFromCache(ctx, cacheKey, &cached) {
		for i := range cached {
			cached[i].Source = sourceCache
		}
		return cached, nil
	}

	searchResult, err := s.usdaClient.SearchFoods(ctx, sanitizeForUSDA(normalized))
	if err != nil {
		return nil, upstreamError(err)
	}

	foods, err := s.matchingService.RankFoods(ctx, normalized, searchResult.Foods)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range foods {
		foods[i].CachedAt = now
		// Search hits carry full macronutrients, so they double as item entries
		s.setInCache(ctx, itemCachePrefix+foods[i].FdcID, foods[i])
	}
	s.setInCache(ctx, cacheKey, foods)

	s.logger.Info("food search",
		zap.String("query", normalized),
		zap.Int("results", len(foods)),
	)
	return foods, nil
}

// GetFood returns a single food by FoodData Central ID
func (s *FoodService) GetFood(ctx context.Context, fdcID string) (*domain.FoodItem, error) {
	if !s.Available() {
		return nil, domain.ErrFoodSourceUnavailable
	}

	fdcID = strings.TrimSpace(fdcID)
	if id, err := strconv.Atoi(fdcID); err != nil || id <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := itemCachePrefix + fdcID
	var cached domain.FoodItem
	if s.getFromCache(ctx, cacheKey, &cached) {
		cached.Source = sourceCache
		return &cached, nil
	}

	usdaFood, err := s.usdaClient.GetFoodDetails(ctx, fdcID)
	if err != nil {
		return nil, upstreamError(err)
	}

	food := usda.MapToFoodItem(usdaFood)
	food.CachedAt = time.Now().UTC()
	s.setInCache(ctx, cacheKey, food)
	return &food, nil
}

// CalculateTotals resolves selections that reference a food by ID and
// aggregates the nutrients of the whole selection
func (s *FoodService) CalculateTotals(ctx context.Context, selections []domain.FoodSelection) (*domain.NutrientTotals, error) {
	resolved := make([]domain.FoodSelection, len(selections))
	copy(resolved, selections)

	for i := range resolved {
		if resolved[i].Food != nil || resolved[i].FdcID == "" {
			continue
		}
		food, err := s.GetFood(ctx, resolved[i].FdcID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		resolved[i].Food = food
	}

	return calculator.SumNutrients(resolved)
}

// getFromCache decodes a cached value into dst and reports whether it was found
func (s *FoodService) getFromCache(ctx context.Context, key string, dst interface{}) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// setInCache stores a value, logging instead of failing the request
func (s *FoodService) setInCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// upstreamError keeps not-found and cancellation as they are and marks
// everything else as a USDA failure
func upstreamError(err error) error {
	switch {
	case errors.Is(err, domain.ErrFoodNotFound),
		errors.Is(err, domain.ErrUSDAAPIFailure),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}
}

// sanitizeForUSDA strips characters the FoodData Central proxy rejects
func sanitizeForUSDA(query string) string {
	query = strings.ReplaceAll(query, "&", " and ")
	query = specialCharsRegex.ReplaceAllString(query, " ")
	return strings.Join(strings.Fields(query), " ")
}
