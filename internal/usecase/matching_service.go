package usecase

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dietdesk/backend/internal/domain"
	"github.com/dietdesk/backend/internal/infrastructure/usda"
	"go.uber.org/zap"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Token weight categories for scoring
const (
	weightFood        = 3.0 // Core food terms (milk, chicken, rice)
	weightDescriptive = 2.0 // Descriptive terms (whole, raw, cooked)
	weightDefault     = 1.0 // Everything else
	fuzzyWeightFactor = 0.8 // Fuzzy matches get 80% of normal weight
)

// Scoring bonuses
const (
	baseScoreMultiplier     = 70.0 // Base score max before bonuses
	substringMatchBonus     = 10.0 // Query is a substring of the description
	leadingTermBonus        = 10.0 // Description starts with a query food term
	dataTypeFoundationBonus = 10.0
	dataTypeSRLegacyBonus   = 8.0
	dataTypeSurveyBonus     = 5.0
	maxScore                = 100.0
)

const (
	defaultMinScore   = 15.0
	defaultMaxResults = 10
)

// foodTerms contains high-importance food keywords (weight 3.0)
var foodTerms = map[string]bool{
	// Proteins
	"chicken": true, "beef": true, "pork": true, "fish": true, "salmon": true,
	"turkey": true, "lamb": true, "shrimp": true, "tuna": true, "egg": true,
	"eggs": true, "lentils": true, "chickpeas": true, "beans": true, "tofu": true,
	// Dairy
	"milk": true, "cheese": true, "yogurt": true, "butter": true, "cream": true,
	// Grains
	"bread": true, "rice": true, "pasta": true, "oats": true, "bulgur": true,
	"wheat": true, "flour": true, "noodles": true, "cereal": true,
	// Produce
	"apple": true, "banana": true, "orange": true, "lettuce": true, "tomato": true,
	"potato": true, "onion": true, "carrot": true, "broccoli": true, "spinach": true,
	"strawberry": true, "grape": true, "lemon": true, "avocado": true, "cucumber": true,
	"pepper": true, "corn": true,
	// Nuts, oils, sweets
	"walnuts": true, "almonds": true, "hazelnuts": true, "oil": true, "honey": true,
	"sugar": true, "chocolate": true,
}

// descriptiveTerms contains medium-importance descriptive keywords (weight 2.0)
var descriptiveTerms = map[string]bool{
	// Cut
	"breast": true, "thigh": true, "ground": true, "fillet": true, "wing": true,
	// Preparation
	"whole": true, "skim": true, "reduced": true, "fat": true, "low": true,
	"nonfat": true, "fresh": true, "frozen": true, "canned": true, "dried": true,
	"raw": true, "cooked": true, "grilled": true, "boiled": true, "baked": true,
	"fried": true, "roasted": true, "steamed": true, "olive": true,
	// Type descriptors
	"white": true, "brown": true, "plain": true, "unsweetened": true,
	"boneless": true, "skinless": true, "lean": true,
}

// stopWords are dropped before matching
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "with": true, "without": true,
	"for": true, "by": true, "from": true, "to": true, "ns": true,
	"as": true, "nfs": true, "g": true, "oz": true, "ml": true,
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	MinScore            float64
	MaxResults          int
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
	EnableDebugLogging  bool
}

// MatchingService ranks FoodData Central hits against a food query
type MatchingService struct {
	minScore            float64
	maxResults          int
	enableFuzzyMatching bool
	fuzzyEditDistance   int
	enableDebugLogging  bool
	logger              *zap.Logger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig, logger *zap.Logger) *MatchingService {
	minScore := config.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}

	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1 // Default edit distance of 1
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &MatchingService{
		minScore:            minScore,
		maxResults:          maxResults,
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   fuzzyDist,
		enableDebugLogging:  config.EnableDebugLogging,
		logger:              logger,
	}
}

// RankFoods scores every USDA hit against the query, drops those below the
// minimum score and returns the best ones mapped to food items, highest
// score first
func (s *MatchingService) RankFoods(
	ctx context.Context,
	query string,
	usdaFoods []domain.USDAFood,
) ([]domain.FoodItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if len(usdaFoods) == 0 {
		return nil, domain.ErrFoodNotFound
	}

	ranked := make([]domain.FoodItem, 0, len(usdaFoods))
	for i := range usdaFoods {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		food := &usdaFoods[i]
		score, matchedTokens := s.calculateMatchScore(query, food.Description, food.DataType)

		if s.enableDebugLogging {
			s.logger.Debug("scored food",
				zap.String("description", food.Description),
				zap.String("data_type", food.DataType),
				zap.Float64("score", score),
				zap.Strings("matched", matchedTokens),
			)
		}

		if score < s.minScore {
			continue
		}
		item := usda.MapToFoodItem(food)
		item.MatchScore = math.Round(score*10) / 10
		ranked = append(ranked, item)
	}

	if len(ranked) == 0 {
		return nil, domain.ErrFoodNotFound
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		// Shorter descriptions are usually the plain food
		if len(a.Name) != len(b.Name) {
			return len(a.Name) < len(b.Name)
		}
		return fdcIDLess(a.FdcID, b.FdcID)
	})

	if len(ranked) > s.maxResults {
		ranked = ranked[:s.maxResults]
	}
	return ranked, nil
}

// calculateMatchScore computes similarity between a query and a USDA description.
// Uses a weighted combination of:
//   - Query token coverage, weighted by token importance (most important)
//   - Description token coverage
//   - Jaccard similarity
//
// plus bonuses for substring matches, a leading food term and curated data types.
// Returns the score (0-100) and the list of matched tokens.
func (s *MatchingService) calculateMatchScore(query, description, dataType string) (float64, []string) {
	queryTokens := tokenize(query)
	descTokens := tokenize(description)

	if len(queryTokens) == 0 || len(descTokens) == 0 {
		return 0, nil
	}

	descSet := make(map[string]bool, len(descTokens))
	for _, t := range descTokens {
		descSet[t] = true
	}

	var totalWeight, matchedWeight float64
	for _, t := range queryTokens {
		w := tokenWeight(t)
		totalWeight += w
		switch {
		case descSet[t]:
			matchedWeight += w
		case s.enableFuzzyMatching && s.fuzzyMatchAny(t, descTokens):
			matchedWeight += w * fuzzyWeightFactor
		}
	}
	if matchedWeight == 0 {
		return 0, nil
	}
	queryCoverage := matchedWeight / totalWeight

	exactMatched, matchedTokens := findIntersection(queryTokens, descTokens)
	descCoverage := float64(exactMatched) / float64(len(descTokens))
	jaccard := float64(exactMatched) / float64(findUnion(queryTokens, descTokens))

	score := (queryCoverage*0.60 + descCoverage*0.20 + jaccard*0.20) * baseScoreMultiplier

	queryLower := strings.Join(queryTokens, " ")
	descLower := strings.Join(descTokens, " ")
	if len(queryLower) > 3 && strings.Contains(descLower, queryLower) {
		score += substringMatchBonus
	}

	if foodTerms[descTokens[0]] && containsToken(queryTokens, descTokens[0]) {
		score += leadingTermBonus
	}

	score += dataTypeBonus(dataType)

	if score > maxScore {
		score = maxScore
	}
	return score, matchedTokens
}

func (s *MatchingService) fuzzyMatchAny(token string, candidates []string) bool {
	for _, c := range candidates {
		if fuzzyTokenMatch(token, c, s.fuzzyEditDistance) {
			return true
		}
	}
	return false
}

// dataTypeBonus prefers curated FoodData Central datasets
func dataTypeBonus(dataType string) float64 {
	switch {
	case strings.EqualFold(dataType, "Foundation"):
		return dataTypeFoundationBonus
	case strings.EqualFold(dataType, "SR Legacy"):
		return dataTypeSRLegacyBonus
	case strings.HasPrefix(strings.ToLower(dataType), "survey"):
		return dataTypeSurveyBonus
	default:
		return 0
	}
}

func tokenWeight(token string) float64 {
	switch {
	case foodTerms[token]:
		return weightFood
	case descriptiveTerms[token]:
		return weightDescriptive
	default:
		return weightDefault
	}
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 1 {
			continue
		}
		if stopWords[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func containsToken(tokens []string, t string) bool {
	for _, x := range tokens {
		if x == t {
			return true
		}
	}
	return false
}

func fdcIDLess(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ai < bi
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Only apply fuzzy matching to tokens > 4 chars to avoid false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Two rows instead of a full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// findIntersection returns the count of common tokens and the list of matched tokens
func findIntersection(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}

	return len(matched), matched
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
