package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const maxQueryLength = 100

// QueryPreprocessor cleans free-text food queries before they reach the
// food database and the cache key space
type QueryPreprocessor struct {
	logger             *zap.Logger
	enableDebugLogging bool
}

// Compiled regex patterns for query preprocessing
var (
	// Quantities with a unit: "150g", "150 gr", "2 adet", "1,5 su bardağı", "250 ml"
	quantityPattern = regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s*(?:kg|g|gr|gram|grams|mg|ml|lt|l|litre|liter|liters|oz|lb|lbs|adet|porsiyon|dilim|tane|kaşık|bardak|su\s+bardağı|çay\s+bardağı|kase|cups?|tbsp|tsp|pieces?|slices?|servings?)(?:[^\p{L}]|$)`)

	// Numbers left alone after unit removal
	bareNumberPattern = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\b`)

	orphanPunctuationPattern = regexp.MustCompile(`\s+[,\-;:]+\s+`)
	edgePunctuationPattern   = regexp.MustCompile(`^[\s,\-;:]+|[\s,\-;:]+$`)
	multiSpacePattern        = regexp.MustCompile(`\s+`)
)

// queryNoiseWords carry no information about which food is meant
var queryNoiseWords = map[string]bool{
	// Portion words
	"porsiyon": true, "adet": true, "dilim": true, "tane": true,
	"bardak": true, "kaşık": true, "kase": true, "avuç": true,
	"serving": true, "portion": true, "cup": true, "slice": true,
	"piece": true, "bowl": true, "handful": true,

	// Generic terms that don't help narrow down
	"food": true, "item": true, "yemek": true, "besin": true,
	"bir": true, "some": true,
}

// turkishFoodTerms maps common Turkish food words to the English terms
// FoodData Central descriptions use
var turkishFoodTerms = map[string]string{
	"tavuk":      "chicken",
	"göğsü":      "breast",
	"göğüs":      "breast",
	"hindi":      "turkey",
	"dana":       "beef",
	"kıyma":      "ground beef",
	"kuzu":       "lamb",
	"balık":      "fish",
	"somon":      "salmon",
	"ton":        "tuna",
	"yumurta":    "egg",
	"süt":        "milk",
	"yoğurt":     "yogurt",
	"peynir":     "cheese",
	"tereyağı":   "butter",
	"zeytinyağı": "olive oil",
	"ekmek":      "bread",
	"pirinç":     "rice",
	"pilav":      "rice cooked",
	"makarna":    "pasta",
	"yulaf":      "oats",
	"mercimek":   "lentils",
	"nohut":      "chickpeas",
	"fasulye":    "beans",
	"patates":    "potato",
	"domates":    "tomato",
	"salatalık":  "cucumber",
	"havuç":      "carrot",
	"ıspanak":    "spinach",
	"brokoli":    "broccoli",
	"elma":       "apple",
	"muz":        "banana",
	"portakal":   "orange",
	"çilek":      "strawberry",
	"üzüm":       "grape",
	"ceviz":      "walnuts",
	"badem":      "almonds",
	"fındık":     "hazelnuts",
	"bal":        "honey",
	"haşlanmış":  "boiled",
	"ızgara":     "grilled",
	"çiğ":        "raw",
	"pişmiş":     "cooked",
	"tam":        "whole",
	"buğday":     "wheat",
	"yağsız":     "nonfat",
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(logger *zap.Logger, enableDebugLogging bool) *QueryPreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryPreprocessor{
		logger:             logger,
		enableDebugLogging: enableDebugLogging,
	}
}

// PreprocessQuery normalizes a food query: quantities and portion words are
// removed, Turkish food words are translated, and the result is lowercased,
// whitespace-collapsed and capped at 100 characters
func (p *QueryPreprocessor) PreprocessQuery(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}

	cleaned := quantityPattern.ReplaceAllString(query, " ")
	cleaned = bareNumberPattern.ReplaceAllString(cleaned, " ")
	cleaned = p.normalizeWords(cleaned)

	cleaned = orphanPunctuationPattern.ReplaceAllString(cleaned, " ")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = edgePunctuationPattern.ReplaceAllString(cleaned, "")

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		// Cut at word boundary
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
		cleaned = strings.ToValidUTF8(cleaned, "")
	}

	if p.enableDebugLogging {
		p.logger.Debug("preprocessed food query",
			zap.String("input", query),
			zap.String("output", cleaned),
		)
	}

	return cleaned
}

// normalizeWords lowercases, drops noise words and translates known
// Turkish food words
func (p *QueryPreprocessor) normalizeWords(s string) string {
	words := strings.Fields(turkishLower(s))
	kept := make([]string, 0, len(words))

	for _, word := range words {
		cleanWord := strings.Trim(word, ",.!?;:-'\"()")
		if cleanWord == "" || queryNoiseWords[cleanWord] {
			continue
		}
		if english, ok := turkishFoodTerms[cleanWord]; ok {
			kept = append(kept, english)
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

// turkishLower lowercases s, mapping the dotted capital İ to a plain i so
// "İNCİR" and "incir" normalize alike
func turkishLower(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "İ", "i"))
}
