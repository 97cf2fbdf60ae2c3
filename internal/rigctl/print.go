package rigctl

import (
	"fmt"
	"math"
	"sort"

	"github.com/fatih/color"

	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/types"
)

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	goodColor   = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	badColor    = color.New(color.FgRed, color.Bold)
	subtleColor = color.New(color.Faint)
)

// scoreColor picks a color by score band.
func scoreColor(score float64) *color.Color {
	switch {
	case score >= 70:
		return goodColor
	case score >= 50:
		return warnColor
	default:
		return badColor
	}
}

func severityColor(s types.Severity) *color.Color {
	switch s {
	case types.SeverityCritical:
		return badColor
	case types.SeverityMajor:
		return warnColor
	default:
		return subtleColor
	}
}

func printAnalysis(result *model.AnalysisResult) {
	headerColor.Println("Build Analysis")
	fmt.Printf("  overall:  %s\n", scoreColor(result.OverallScore).Sprintf("%.1f", result.OverallScore))
	fmt.Printf("  balance:  %s\n", scoreColor(result.BalanceScore).Sprintf("%.1f", result.BalanceScore))
	fmt.Printf("  power:    %.0fW (%.0f%% of PSU)\n",
		result.PerformanceMetrics.TotalPowerDraw,
		result.PerformanceMetrics.PSUUtilization*100)
	fmt.Println()

	headerColor.Println("Components")
	slots := make([]string, 0, len(result.ComponentAnalysis))
	for slot := range result.ComponentAnalysis {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	for _, slot := range slots {
		perf := result.ComponentAnalysis[slot]
		fmt.Printf("  %-14s %s  value %5.1f  modernity %5.1f  %s\n",
			slot,
			scoreColor(perf.PerformanceScore).Sprintf("%5.1f", perf.PerformanceScore),
			perf.ValueScore,
			perf.ModernityScore,
			subtleColor.Sprint(perf.RecommendedAction))
	}
	fmt.Println()

	printCompatibility(result.Compatibility)

	if len(result.Bottlenecks) > 0 {
		headerColor.Println("Bottlenecks")
		for _, b := range result.Bottlenecks {
			fmt.Printf("  %s %s: %s\n",
				severityColor(b.Severity).Sprintf("[%s]", b.Severity),
				b.Type, b.Description)
		}
		fmt.Println()
	}

	printPlans(result.Recommendations)
}

func printCompatibility(result model.CompatibilityResult) {
	headerColor.Println("Compatibility")
	verdict := goodColor.Sprint("compatible")
	if !result.IsCompatible {
		verdict = badColor.Sprint("NOT compatible")
	}
	fmt.Printf("  verdict: %s  score: %s\n", verdict,
		scoreColor(result.Score).Sprintf("%.1f", result.Score))
	for _, is := range result.Issues {
		fmt.Printf("  %s %s: %s\n",
			severityColor(is.Severity).Sprintf("[%s]", is.Severity), is.Type, is.Message)
		if is.Solution != "" {
			subtleColor.Printf("      fix: %s\n", is.Solution)
		}
	}
	for _, w := range result.Warnings {
		fmt.Printf("  %s %s: %s\n",
			severityColor(w.Severity).Sprintf("[%s]", w.Severity), w.Type, w.Message)
	}
	fmt.Println()
}

func printPlans(plans []model.UpgradeRecommendation) {
	if len(plans) == 0 {
		subtleColor.Println("No upgrade plans; the build looks healthy.")
		return
	}
	headerColor.Println("Upgrade Plans")
	for _, plan := range plans {
		fmt.Printf("  %s (priority %.0f, confidence %.0f%%) cost ¥%.0f\n",
			color.New(color.Bold).Sprint(plan.Name), plan.Priority, plan.Confidence*100, plan.TotalCost)
		for i, phase := range plan.Phases {
			fmt.Printf("    %d. %s (¥%.0f, +%.0f)\n", i+1, phase.Name, phase.Cost, phase.EstimatedGain)
		}
		if plan.ROI != nil {
			payback := "never"
			if !math.IsInf(plan.ROI.PaybackPeriodMonths, 1) {
				payback = fmt.Sprintf("%.1f months", plan.ROI.PaybackPeriodMonths)
			}
			subtleColor.Printf("    roi %.2f (risk-adjusted %.2f), payback %s\n",
				plan.ROI.ROI, plan.ROI.RiskAdjustedROI, payback)
		}
		for _, risk := range plan.Risks {
			warnColor.Printf("    risk: %s\n", risk)
		}
	}
}
