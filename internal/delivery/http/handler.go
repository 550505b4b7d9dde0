package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dietdesk/backend/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "dietdesk-backend"
	serviceVersion = "1.0.0"
)

// CalculatorUseCase is the calculator surface the handlers depend on
type CalculatorUseCase interface {
	BMI(weightKg, heightCm float64) (*domain.BMIResult, error)
	BMR(in domain.BMRInput) (*domain.BMRResult, error)
	TDEE(in domain.TDEEInput) (*domain.TDEEResult, error)
	MacroSplit(in domain.MacroSplitInput) (*domain.MacroSplitResult, error)
	IdealWeight(in domain.IdealWeightInput) (*domain.IdealWeightResult, error)
	BodyFat(in domain.BodyFatInput) (*domain.BodyFatResult, error)
	WaterIntake(in domain.WaterIntakeInput) (*domain.WaterIntakeResult, error)
	ProteinNeeds(in domain.ProteinNeedsInput) (*domain.ProteinNeedsResult, error)
	CaloriePlan(in domain.CaloriePlanInput) (*domain.CaloriePlanResult, error)
	Profile(in domain.ProfileInput) (*domain.ProfileResult, error)
}

// FoodUseCase is the food database surface the handlers depend on
type FoodUseCase interface {
	Available() bool
	SearchFoods(ctx context.Context, query string) ([]domain.FoodItem, error)
	GetFood(ctx context.Context, fdcID string) (*domain.FoodItem, error)
	CalculateTotals(ctx context.Context, selections []domain.FoodSelection) (*domain.NutrientTotals, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	calculators CalculatorUseCase
	foods       FoodUseCase
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(calculators CalculatorUseCase, foods FoodUseCase, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		calculators: calculators,
		foods:       foods,
		logger:      logger,
	}
}

type violationResponse struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Violations []violationResponse `json:"violations,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	foodDatabase := "unconfigured"
	if h.foods != nil && h.foods.Available() {
		foodDatabase = "available"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      serviceName,
		"version":      serviceVersion,
		"foodDatabase": foodDatabase,
	})
}

type bmiRequest struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
}

// CalculateBMI handles POST /calculators/bmi
func (h *Handler) CalculateBMI(c *gin.Context) {
	var req bmiRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.BMI(req.WeightKg, req.HeightCm)
	})
}

type bodyRequest struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
	AgeYears int     `json:"ageYears"`
	Sex      string  `json:"sex"`
}

func (r bodyRequest) metrics() domain.BodyMetrics {
	return domain.BodyMetrics{
		WeightKg: r.WeightKg,
		HeightCm: r.HeightCm,
		AgeYears: r.AgeYears,
		Sex:      parseEnum(r.Sex, domain.ParseSex),
	}
}

type bmrRequest struct {
	bodyRequest
	Formula string `json:"formula"`
}

// CalculateBMR handles POST /calculators/bmr
func (h *Handler) CalculateBMR(c *gin.Context) {
	var req bmrRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.BMR(domain.BMRInput{
			BodyMetrics: req.metrics(),
			Formula:     parseEnum(req.Formula, domain.ParseBMRFormula),
		})
	})
}

type tdeeRequest struct {
	BMR           float64 `json:"bmr"`
	ActivityLevel string  `json:"activityLevel"`
}

// CalculateTDEE handles POST /calculators/tdee
func (h *Handler) CalculateTDEE(c *gin.Context) {
	var req tdeeRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.TDEE(domain.TDEEInput{
			BMR:           req.BMR,
			ActivityLevel: parseEnum(req.ActivityLevel, domain.ParseActivityLevel),
		})
	})
}

// CalculateMacros handles POST /calculators/macros
func (h *Handler) CalculateMacros(c *gin.Context) {
	var req domain.MacroSplitInput
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.MacroSplit(req)
	})
}

type idealWeightRequest struct {
	HeightCm float64 `json:"heightCm"`
	Sex      string  `json:"sex"`
	Formula  string  `json:"formula"`
}

// CalculateIdealWeight handles POST /calculators/ideal-weight
func (h *Handler) CalculateIdealWeight(c *gin.Context) {
	var req idealWeightRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.IdealWeight(domain.IdealWeightInput{
			HeightCm: req.HeightCm,
			Sex:      parseEnum(req.Sex, domain.ParseSex),
			Formula:  parseEnum(req.Formula, domain.ParseIdealWeightFormula),
		})
	})
}

type bodyFatRequest struct {
	bodyRequest
	NeckCm  float64 `json:"neckCm"`
	WaistCm float64 `json:"waistCm"`
	HipCm   float64 `json:"hipCm"`
}

// CalculateBodyFat handles POST /calculators/body-fat
func (h *Handler) CalculateBodyFat(c *gin.Context) {
	var req bodyFatRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.BodyFat(domain.BodyFatInput{
			BodyMetrics: req.metrics(),
			NeckCm:      req.NeckCm,
			WaistCm:     req.WaistCm,
			HipCm:       req.HipCm,
		})
	})
}

type waterIntakeRequest struct {
	WeightKg      float64 `json:"weightKg"`
	ActivityLevel string  `json:"activityLevel"`
	Season        string  `json:"season"`
}

// CalculateWaterIntake handles POST /calculators/water-intake
func (h *Handler) CalculateWaterIntake(c *gin.Context) {
	var req waterIntakeRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.WaterIntake(domain.WaterIntakeInput{
			WeightKg:      req.WeightKg,
			ActivityLevel: parseEnum(req.ActivityLevel, domain.ParseActivityLevel),
			Season:        parseEnum(req.Season, domain.ParseSeason),
		})
	})
}

type proteinNeedsRequest struct {
	WeightKg      float64 `json:"weightKg"`
	ActivityLevel string  `json:"activityLevel"`
	Goal          string  `json:"goal"`
}

// CalculateProteinNeeds handles POST /calculators/protein-needs
func (h *Handler) CalculateProteinNeeds(c *gin.Context) {
	var req proteinNeedsRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.ProteinNeeds(domain.ProteinNeedsInput{
			WeightKg:      req.WeightKg,
			ActivityLevel: parseEnum(req.ActivityLevel, domain.ParseActivityLevel),
			Goal:          parseEnum(req.Goal, domain.ParseProteinGoal),
		})
	})
}

type caloriePlanRequest struct {
	CurrentWeightKg float64 `json:"currentWeightKg"`
	TargetWeightKg  float64 `json:"targetWeightKg"`
	DurationWeeks   int     `json:"durationWeeks"`
	ActivityLevel   string  `json:"activityLevel"`
	HeightCm        float64 `json:"heightCm"`
	AgeYears        int     `json:"ageYears"`
	Sex             string  `json:"sex"`
}

// PlanCalories handles POST /calculators/calorie-plan
func (h *Handler) PlanCalories(c *gin.Context) {
	var req caloriePlanRequest
	if !h.bind(c, &req) {
		return
	}
	// Activity and sex are optional here; empty values pass through as empty
	h.respond(c, func() (interface{}, error) {
		return h.calculators.CaloriePlan(domain.CaloriePlanInput{
			CurrentWeightKg: req.CurrentWeightKg,
			TargetWeightKg:  req.TargetWeightKg,
			DurationWeeks:   req.DurationWeeks,
			ActivityLevel:   parseEnum(req.ActivityLevel, domain.ParseActivityLevel),
			HeightCm:        req.HeightCm,
			AgeYears:        req.AgeYears,
			Sex:             parseEnum(req.Sex, domain.ParseSex),
		})
	})
}

type profileRequest struct {
	bodyRequest
	Formula       string                  `json:"formula"`
	ActivityLevel string                  `json:"activityLevel"`
	Split         *domain.MacroSplitInput `json:"split"`
}

// CalculateProfile handles POST /calculators/profile
func (h *Handler) CalculateProfile(c *gin.Context) {
	var req profileRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func() (interface{}, error) {
		return h.calculators.Profile(domain.ProfileInput{
			BodyMetrics:   req.metrics(),
			Formula:       parseEnum(req.Formula, domain.ParseBMRFormula),
			ActivityLevel: parseEnum(req.ActivityLevel, domain.ParseActivityLevel),
			Split:         req.Split,
		})
	})
}

// SearchFoods handles GET /foods/search?q=
func (h *Handler) SearchFoods(c *gin.Context) {
	if !h.foodsConfigured(c) {
		return
	}
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		writeError(c, domain.NewValidationError("q", domain.ErrMissingRequiredField, "q is required"))
		return
	}

	foods, err := h.foods.SearchFoods(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query": query,
		"count": len(foods),
		"foods": foods,
	})
}

// GetFood handles GET /foods/:fdcId
func (h *Handler) GetFood(c *gin.Context) {
	if !h.foodsConfigured(c) {
		return
	}
	food, err := h.foods.GetFood(c.Request.Context(), c.Param("fdcId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

type totalsRequest struct {
	Items []domain.FoodSelection `json:"items"`
}

// CalculateTotals handles POST /foods/totals
func (h *Handler) CalculateTotals(c *gin.Context) {
	var req totalsRequest
	if !h.bind(c, &req) {
		return
	}
	if h.foods == nil {
		writeError(c, domain.ErrFoodSourceUnavailable)
		return
	}
	totals, err := h.foods.CalculateTotals(c.Request.Context(), req.Items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *Handler) foodsConfigured(c *gin.Context) bool {
	if h.foods == nil || !h.foods.Available() {
		writeError(c, domain.ErrFoodSourceUnavailable)
		return false
	}
	return true
}

// bind decodes the JSON body, answering 400 on malformed input
func (h *Handler) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Code:    "INVALID_REQUEST",
			Message: "malformed JSON body: " + err.Error(),
		})
		return false
	}
	return true
}

func (h *Handler) respond(c *gin.Context, fn func() (interface{}, error)) {
	result, err := fn()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// parseEnum maps accepted aliases ("erkek", "very-active") to the canonical
// value. Unparseable input is passed through so the calculator reports it
// along with every other violation.
func parseEnum[T ~string](raw string, parse func(string) (T, error)) T {
	if v, err := parse(raw); err == nil {
		return v
	}
	return T(strings.TrimSpace(raw))
}

// writeError maps domain errors to HTTP responses
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp := errorResponse{
			Code:       "INVALID_REQUEST",
			Message:    verr.Error(),
			Violations: make([]violationResponse, 0, len(verr.Violations)),
		}
		for i, v := range verr.Violations {
			if i == 0 {
				resp.Code = v.Code()
			}
			resp.Violations = append(resp.Violations, violationResponse{
				Field:   v.Field,
				Code:    v.Code(),
				Message: v.Message,
			})
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)
		return
	}

	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, domain.ErrFoodNotFound):
		status, code = http.StatusNotFound, "FOOD_NOT_FOUND"
	case errors.Is(err, domain.ErrRateLimited):
		status, code = http.StatusTooManyRequests, "RATE_LIMITED"
	case errors.Is(err, domain.ErrFoodSourceUnavailable):
		status, code = http.StatusServiceUnavailable, "FOOD_SOURCE_UNAVAILABLE"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT"
	case errors.Is(err, domain.ErrUSDAAPIFailure):
		status, code = http.StatusBadGateway, "UPSTREAM_FAILURE"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, errorResponse{Code: code, Message: message})
}
