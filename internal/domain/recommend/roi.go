package recommend

import (
	"math"

	"github.com/rigmate/rigmate/internal/domain/model"
)

// Monthly-benefit coefficients in JPY per projected gain point. These are
// fixed, documented constants rather than empirically derived values.
const (
	productivityYenPerPerfPoint = 120
	timeSavedYenPerPerfPoint    = 80
	frustrationYenPerRelPoint   = 50
	powerYenPerEffPoint         = 30
	maintenanceYenPerRelPoint   = 20
	downtimeYenPerRelPoint      = 25

	riskAdjustmentFactor = 0.8
	uncertaintyMinFactor = 0.6
	uncertaintyMaxFactor = 1.4
)

// CalculateROI attaches cost/benefit, payback and risk-adjusted return to a
// plan over the given timeframe. Pure function; no state.
func CalculateROI(plan model.UpgradeRecommendation, timeframeMonths int) model.ROIAnalysis {
	imp := plan.ExpectedImprovement

	monthlyBenefit := imp.PerformanceGain*productivityYenPerPerfPoint +
		imp.PerformanceGain*timeSavedYenPerPerfPoint +
		imp.ReliabilityGain*frustrationYenPerRelPoint +
		imp.EfficiencyGain*powerYenPerEffPoint +
		imp.ReliabilityGain*maintenanceYenPerRelPoint +
		imp.ReliabilityGain*downtimeYenPerRelPoint

	out := model.ROIAnalysis{
		InvestmentCost:  plan.TotalCost,
		MonthlyBenefit:  monthlyBenefit,
		TimeframeMonths: timeframeMonths,
	}

	if monthlyBenefit <= 0 {
		// No benefit means the investment never pays back.
		out.PaybackPeriodMonths = math.Inf(1)
	} else {
		out.PaybackPeriodMonths = plan.TotalCost / monthlyBenefit
	}

	if plan.TotalCost > 0 {
		out.ROI = (monthlyBenefit*float64(timeframeMonths) - plan.TotalCost) / plan.TotalCost * 100
	}
	out.RiskAdjustedROI = out.ROI * riskAdjustmentFactor
	out.UncertaintyRange = model.UncertaintyRange{
		Min: out.ROI * uncertaintyMinFactor,
		Max: out.ROI * uncertaintyMaxFactor,
	}
	return out
}
