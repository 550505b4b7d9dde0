package usecase

import (
	"errors"
	"time"

	"github.com/dietdesk/backend/internal/calculator"
	"github.com/dietdesk/backend/internal/domain"
	"go.uber.org/zap"
)

// CalculatorService exposes the calculator engine to the delivery layer and
// logs every calculation
type CalculatorService struct {
	logger *zap.Logger
}

// NewCalculatorService creates a new calculator service
func NewCalculatorService(logger *zap.Logger) *CalculatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorService{logger: logger}
}

func run[T any](s *CalculatorService, op string, fn func() (*T, error)) (*T, error) {
	start := time.Now()
	result, err := fn()
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.logger.Debug("calculation rejected",
				zap.String("operation", op),
				zap.Int("violations", len(verr.Violations)),
				zap.Error(err),
			)
		} else {
			s.logger.Error("calculation failed", zap.String("operation", op), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Debug("calculation completed",
		zap.String("operation", op),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// BMI computes the body mass index
func (s *CalculatorService) BMI(weightKg, heightCm float64) (*domain.BMIResult, error) {
	return run(s, "bmi", func() (*domain.BMIResult, error) {
		return calculator.BMI(weightKg, heightCm)
	})
}

// BMR computes the basal metabolic rate
func (s *CalculatorService) BMR(in domain.BMRInput) (*domain.BMRResult, error) {
	return run(s, "bmr", func() (*domain.BMRResult, error) {
		return calculator.BMR(in)
	})
}

// TDEE computes total daily energy expenditure from a BMR
func (s *CalculatorService) TDEE(in domain.TDEEInput) (*domain.TDEEResult, error) {
	return run(s, "tdee", func() (*domain.TDEEResult, error) {
		return calculator.TDEE(in)
	})
}

// MacroSplit distributes calories over protein, carbohydrates and fat
func (s *CalculatorService) MacroSplit(in domain.MacroSplitInput) (*domain.MacroSplitResult, error) {
	return run(s, "macros", func() (*domain.MacroSplitResult, error) {
		return calculator.MacroSplit(in)
	})
}

// IdealWeight estimates ideal body weight
func (s *CalculatorService) IdealWeight(in domain.IdealWeightInput) (*domain.IdealWeightResult, error) {
	return run(s, "ideal_weight", func() (*domain.IdealWeightResult, error) {
		return calculator.IdealWeight(in)
	})
}

// BodyFat estimates body fat with the US Navy method
func (s *CalculatorService) BodyFat(in domain.BodyFatInput) (*domain.BodyFatResult, error) {
	return run(s, "body_fat", func() (*domain.BodyFatResult, error) {
		return calculator.BodyFat(in)
	})
}

// WaterIntake computes the daily water target
func (s *CalculatorService) WaterIntake(in domain.WaterIntakeInput) (*domain.WaterIntakeResult, error) {
	return run(s, "water_intake", func() (*domain.WaterIntakeResult, error) {
		return calculator.WaterIntake(in)
	})
}

// ProteinNeeds computes the daily protein target
func (s *CalculatorService) ProteinNeeds(in domain.ProteinNeedsInput) (*domain.ProteinNeedsResult, error) {
	return run(s, "protein_needs", func() (*domain.ProteinNeedsResult, error) {
		return calculator.ProteinNeeds(in)
	})
}

// CaloriePlan plans a deficit or surplus towards a target weight
func (s *CalculatorService) CaloriePlan(in domain.CaloriePlanInput) (*domain.CaloriePlanResult, error) {
	plan, err := run(s, "calorie_plan", func() (*domain.CaloriePlanResult, error) {
		return calculator.CaloriePlan(in)
	})
	if err != nil {
		return nil, err
	}
	if !plan.IsSafe {
		s.logger.Warn("unsafe calorie plan",
			zap.String("type", string(plan.Type)),
			zap.Float64("weekly_change_kg", plan.WeeklyWeightChangeKg),
			zap.Int("duration_weeks", plan.DurationWeeks),
		)
	}
	return plan, nil
}

// Profile chains BMI, BMR, TDEE and the macro split
func (s *CalculatorService) Profile(in domain.ProfileInput) (*domain.ProfileResult, error) {
	return run(s, "profile", func() (*domain.ProfileResult, error) {
		return calculator.Profile(in)
	})
}
