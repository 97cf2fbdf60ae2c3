package recommend_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/recommend"
	"github.com/rigmate/rigmate/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("plan-%d", n)
	}
}

func criticalCPU() model.BottleneckResult {
	return model.BottleneckResult{
		Type:                 types.BottleneckCPU,
		Severity:             types.SeverityCritical,
		Description:          "CPU limits the GPU",
		ImprovementPotential: 75,
		CostEstimate:         45000,
		AffectedParts:        []string{"cpu-1"},
	}
}

func majorMemory() model.BottleneckResult {
	return model.BottleneckResult{
		Type:                 types.BottleneckMemory,
		Severity:             types.SeverityMajor,
		Description:          "memory short of target",
		ImprovementPotential: 55,
		CostEstimate:         15000,
		AffectedParts:        []string{"mem-1"},
	}
}

func majorStorage() model.BottleneckResult {
	return model.BottleneckResult{
		Type:                 types.BottleneckStorage,
		Severity:             types.SeverityMajor,
		Description:          "no solid-state device",
		ImprovementPotential: 85,
		CostEstimate:         12000,
		AffectedParts:        []string{"hdd-1"},
	}
}

func TestPlanGenerator(t *testing.T) {
	ctx := context.Background()

	Convey("Given the plan generator", t, func() {
		g := recommend.New(recommend.WithIDFunc(sequentialIDs()))

		Convey("When no bottlenecks exist", func() {
			plans := g.Generate(ctx, nil, 90)

			Convey("Then no plans are produced", func() {
				So(plans, ShouldBeEmpty)
			})
		})

		Convey("When critical and major bottlenecks exist on a weak build", func() {
			plans := g.Generate(ctx, []model.BottleneckResult{
				criticalCPU(), majorMemory(), majorStorage(),
			}, 45)

			Convey("Then all three archetypes are produced", func() {
				So(plans, ShouldHaveLength, 3)
				So(plans[0].Type, ShouldEqual, "urgent")
				So(plans[1].Type, ShouldEqual, "balanced")
				So(plans[2].Type, ShouldEqual, "budget")
			})

			Convey("Then plans are ordered by priority, urgent first at 95", func() {
				So(plans[0].Priority, ShouldEqual, 95)
				So(plans[1].Priority, ShouldEqual, 70)
				So(plans[2].Priority, ShouldEqual, 60)
			})

			Convey("Then the urgent plan covers only critical items", func() {
				So(plans[0].Phases, ShouldHaveLength, 1)
				So(plans[0].TotalCost, ShouldEqual, 45000)
				So(plans[0].Confidence, ShouldEqual, 0.9)
			})

			Convey("Then the balanced plan sequences phases", func() {
				So(plans[1].Phases, ShouldHaveLength, 2)
				So(plans[1].Phases[0].DependsOn, ShouldBeEmpty)
				So(plans[1].Phases[1].DependsOn, ShouldResemble, []int{0})
			})

			Convey("Then the budget plan takes the cheapest high-leverage fixes", func() {
				budget := plans[2]
				// cpu at 45000 is over the ceiling; storage outranks memory
				So(budget.Phases, ShouldHaveLength, 2)
				So(budget.Phases[0].Cost, ShouldEqual, 12000)
				So(budget.TotalCost, ShouldEqual, 27000)
			})

			Convey("Then plan IDs are distinct", func() {
				So(plans[0].ID, ShouldNotEqual, plans[1].ID)
				So(plans[1].ID, ShouldNotEqual, plans[2].ID)
			})

			Convey("Then risks are deduplicated and meaningful", func() {
				So(plans[0].Risks, ShouldContain, "multiple simultaneous replacements raise assembly risk")
				seen := map[string]int{}
				for _, r := range plans[1].Risks {
					seen[r]++
					So(seen[r], ShouldEqual, 1)
				}
			})
		})

		Convey("When the build already scores well", func() {
			plans := g.Generate(ctx, []model.BottleneckResult{majorMemory()}, 80)

			Convey("Then the budget plan is gated off", func() {
				for _, p := range plans {
					So(p.Type, ShouldNotEqual, "budget")
				}
			})
		})

		Convey("When only moderate bottlenecks exist on a weak build", func() {
			moderate := model.BottleneckResult{
				Type:                 types.BottleneckPSU,
				Severity:             types.SeverityModerate,
				ImprovementPotential: 35,
				CostEstimate:         12000,
				AffectedParts:        []string{"psu-1"},
			}
			plans := g.Generate(ctx, []model.BottleneckResult{moderate}, 50)

			Convey("Then only the budget plan applies", func() {
				So(plans, ShouldHaveLength, 1)
				So(plans[0].Type, ShouldEqual, "budget")
			})

			Convey("Then the electrical fix raises the efficiency projection", func() {
				So(plans[0].ExpectedImprovement.EfficiencyGain, ShouldEqual, 20)
			})
		})

		Convey("When more than three affordable fixes exist", func() {
			items := []model.BottleneckResult{}
			for i := 0; i < 5; i++ {
				b := majorMemory()
				b.ImprovementPotential = float64(40 + i)
				items = append(items, b)
			}
			plans := g.Generate(ctx, items, 40)

			var budget *model.UpgradeRecommendation
			for i := range plans {
				if plans[i].Type == "budget" {
					budget = &plans[i]
				}
			}

			Convey("Then the budget plan caps at three phases", func() {
				So(budget, ShouldNotBeNil)
				So(budget.Phases, ShouldHaveLength, 3)
			})

			Convey("Then the highest-leverage fixes are picked first", func() {
				So(budget.Phases[0].EstimatedGain, ShouldEqual, 44)
			})
		})
	})
}

func TestCalculateROI(t *testing.T) {
	Convey("Given the ROI calculator", t, func() {
		Convey("When a plan has cost and projected gains", func() {
			plan := model.UpgradeRecommendation{
				TotalCost: 60000,
				ExpectedImprovement: model.ExpectedImprovement{
					PerformanceGain: 50,
					EfficiencyGain:  5,
					ReliabilityGain: 18,
				},
			}
			roi := recommend.CalculateROI(plan, 36)

			Convey("Then the monthly benefit sums every coefficient", func() {
				// 50*120 + 50*80 + 18*50 + 5*30 + 18*20 + 18*25 = 11860
				So(roi.MonthlyBenefit, ShouldEqual, 11860)
			})

			Convey("Then payback is cost over monthly benefit", func() {
				So(roi.PaybackPeriodMonths, ShouldAlmostEqual, 60000.0/11860, 0.001)
			})

			Convey("Then the ROI is expressed as a percentage over the timeframe", func() {
				expected := (11860.0*36 - 60000) / 60000 * 100
				So(roi.ROI, ShouldAlmostEqual, expected, 0.001)
			})

			Convey("Then risk adjustment shrinks the ROI by a fifth", func() {
				So(roi.RiskAdjustedROI, ShouldAlmostEqual, roi.ROI*0.8, 0.001)
			})

			Convey("Then the uncertainty range brackets the ROI", func() {
				So(roi.UncertaintyRange.Min, ShouldAlmostEqual, roi.ROI*0.6, 0.001)
				So(roi.UncertaintyRange.Max, ShouldAlmostEqual, roi.ROI*1.4, 0.001)
			})
		})

		Convey("When a plan projects no benefit", func() {
			plan := model.UpgradeRecommendation{TotalCost: 10000}
			roi := recommend.CalculateROI(plan, 36)

			Convey("Then the payback period is infinite", func() {
				So(math.IsInf(roi.PaybackPeriodMonths, 1), ShouldBeTrue)
			})
		})

		Convey("When a plan costs nothing", func() {
			plan := model.UpgradeRecommendation{
				ExpectedImprovement: model.ExpectedImprovement{PerformanceGain: 10},
			}
			roi := recommend.CalculateROI(plan, 36)

			Convey("Then no ROI percentage is computed", func() {
				So(roi.ROI, ShouldEqual, 0)
			})
		})
	})
}
