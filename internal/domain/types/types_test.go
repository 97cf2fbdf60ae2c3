package types_test

import (
	"math"
	"testing"

	"github.com/rigmate/rigmate/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClampScore(t *testing.T) {
	Convey("Given the score clamp", t, func() {
		Convey("When the value is inside the range", func() {
			So(types.ClampScore(42.5), ShouldEqual, 42.5)
			So(types.ClampScore(0), ShouldEqual, 0)
			So(types.ClampScore(100), ShouldEqual, 100)
		})

		Convey("When the value is out of range", func() {
			So(types.ClampScore(-3), ShouldEqual, types.MinScore)
			So(types.ClampScore(140), ShouldEqual, types.MaxScore)
		})

		Convey("When the value is NaN", func() {
			So(types.ClampScore(math.NaN()), ShouldEqual, types.MinScore)
		})
	})
}

func TestSeverityRank(t *testing.T) {
	Convey("Given the severity ordering", t, func() {
		Convey("Then ranks strictly increase with severity", func() {
			So(types.SeverityCritical.Rank(), ShouldBeGreaterThan, types.SeverityMajor.Rank())
			So(types.SeverityMajor.Rank(), ShouldBeGreaterThan, types.SeverityModerate.Rank())
			So(types.SeverityModerate.Rank(), ShouldBeGreaterThan, types.SeverityMinor.Rank())
		})

		Convey("Then unknown severities rank below everything", func() {
			So(types.Severity("bogus").Rank(), ShouldEqual, 0)
		})
	})
}

func TestEssentialCategories(t *testing.T) {
	Convey("Given the essential category list", t, func() {
		Convey("Then it covers the parts a build cannot boot without", func() {
			So(types.EssentialCategories, ShouldContain, types.CategoryCPU)
			So(types.EssentialCategories, ShouldContain, types.CategoryMotherboard)
			So(types.EssentialCategories, ShouldContain, types.CategoryMemory)
			So(types.EssentialCategories, ShouldContain, types.CategoryPSU)
			So(types.EssentialCategories, ShouldNotContain, types.CategoryGPU)
		})
	})
}
