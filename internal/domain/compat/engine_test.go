package compat_test

import (
	"context"
	"testing"

	"github.com/rigmate/rigmate/internal/domain/catalog"
	"github.com/rigmate/rigmate/internal/domain/compat"
	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func testCatalog() catalog.Catalog {
	cat, err := catalog.New(catalog.WithEntries([]catalog.Entry{
		{Category: types.CategoryCPU, Manufacturer: "AMD", Model: "Ryzen 7 7700X", Score: 80, Socket: "AM5"},
		{Category: types.CategoryCPU, Manufacturer: "Intel", Model: "Core i3-10100", Score: 30},
		{Category: types.CategoryGPU, Manufacturer: "NVIDIA", Model: "RTX 4080", Score: 90},
	}))
	if err != nil {
		panic(err)
	}
	return cat
}

func part(id string, cat types.Category, specs map[string]any) *model.Part {
	return &model.Part{ID: id, Category: cat, Specifications: specs}
}

// healthyBuild is compatible with every rule.
func healthyBuild() *model.PCConfiguration {
	return &model.PCConfiguration{
		CPU: &model.Part{
			ID: "cpu-1", Category: types.CategoryCPU, Manufacturer: "AMD", Model: "Ryzen 7 7700X",
			Specifications: map[string]any{"socket": "AM5", "tdp": 105},
		},
		GPU: &model.Part{
			ID: "gpu-1", Category: types.CategoryGPU, Manufacturer: "NVIDIA", Model: "RTX 4080",
			Specifications: map[string]any{
				"powerConsumption": 320, "powerConnectors": []any{"16pin"},
				"length": 300, "height": 140,
			},
		},
		Motherboard: part("mb-1", types.CategoryMotherboard, map[string]any{
			"socket": "AM5", "formFactor": "ATX", "memoryTypes": []any{"ddr5"},
			"maxMemory": 128, "cpuPowerConnector": "8pin_cpu",
		}),
		Memory: []model.Part{
			{ID: "mem-1", Category: types.CategoryMemory, Specifications: map[string]any{
				"memoryType": "ddr5", "capacity": 16, "speed": 5600, "powerConsumption": 5,
			}},
			{ID: "mem-2", Category: types.CategoryMemory, Specifications: map[string]any{
				"memoryType": "ddr5", "capacity": 16, "speed": 5600, "powerConsumption": 5,
			}},
		},
		Storage: []model.Part{
			{ID: "ssd-1", Category: types.CategoryStorage, Specifications: map[string]any{
				"type": "nvme", "capacity": 1000, "powerConsumption": 8,
			}},
		},
		PSU: part("psu-1", types.CategoryPSU, map[string]any{
			"wattage":    850,
			"connectors": map[string]any{"24pin": 1, "8pin_cpu": 1, "16pin": 1, "8pin_pcie": 2},
		}),
		Case: part("case-1", types.CategoryCase, map[string]any{
			"supportedFormFactors": []any{"ATX", "mATX"},
			"maxGpuLength":         400, "maxGpuHeight": 170, "maxCoolerHeight": 180,
		}),
		Cooler: part("cooler-1", types.CategoryCooler, map[string]any{
			"height": 155, "coolingCapacity": 250, "powerConsumption": 5,
		}),
		UsageProfile: types.ProfileGaming,
	}
}

func TestRuleEngine(t *testing.T) {
	ctx := context.Background()

	Convey("Given the compatibility rule engine", t, func() {
		engine := compat.New(testCatalog())

		Convey("When checking a healthy build", func() {
			result := engine.Check(ctx, healthyBuild())

			Convey("Then it is compatible with no issues", func() {
				So(result.IsCompatible, ShouldBeTrue)
				So(result.Issues, ShouldBeEmpty)
				So(result.Warnings, ShouldBeEmpty)
			})

			Convey("Then the clean bonus caps the score at 100", func() {
				So(result.Score, ShouldEqual, 100)
			})

			Convey("Then every check reports ok", func() {
				for name, verdict := range result.Details {
					So(verdict, ShouldEqual, "ok")
					So(name, ShouldNotBeEmpty)
				}
			})
		})

		Convey("When the CPU and motherboard sockets differ", func() {
			cfg := healthyBuild()
			cfg.Motherboard.Specifications["socket"] = "LGA1700"
			result := engine.Check(ctx, cfg)

			Convey("Then the build is blocked by a critical issue", func() {
				So(result.IsCompatible, ShouldBeFalse)
				So(result.CriticalCount(), ShouldBeGreaterThanOrEqualTo, 1)
				So(result.Issues[0].Type, ShouldEqual, "socket_mismatch")
				So(result.Issues[0].MustResolve, ShouldBeTrue)
			})

			Convey("Then the socket weight is subtracted", func() {
				So(result.Score, ShouldEqual, 70)
			})
		})

		Convey("When the CPU socket is only known to the catalog", func() {
			cfg := healthyBuild()
			delete(cfg.CPU.Specifications, "socket")
			cfg.Motherboard.Specifications["socket"] = "LGA1700"
			result := engine.Check(ctx, cfg)

			Convey("Then the catalog fallback still detects the mismatch", func() {
				So(result.IsCompatible, ShouldBeFalse)
				So(result.Issues[0].Type, ShouldEqual, "socket_mismatch")
			})
		})

		Convey("When the memory type is unsupported", func() {
			cfg := healthyBuild()
			cfg.Memory[0].Specifications["memoryType"] = "ddr4"
			result := engine.Check(ctx, cfg)

			Convey("Then a critical memory_type issue blocks the build", func() {
				So(result.IsCompatible, ShouldBeFalse)
				So(result.Issues[0].Type, ShouldEqual, "memory_type")
			})
		})

		Convey("When the total memory exceeds the board maximum", func() {
			cfg := healthyBuild()
			cfg.Memory[0].Specifications["capacity"] = 96
			cfg.Memory[1].Specifications["capacity"] = 96
			result := engine.Check(ctx, cfg)

			Convey("Then a memory_capacity issue blocks the build", func() {
				So(result.IsCompatible, ShouldBeFalse)
				So(result.Issues[0].Type, ShouldEqual, "memory_capacity")
			})
		})

		Convey("When the modules run above the JEDEC ceiling", func() {
			cfg := healthyBuild()
			cfg.Memory[0].Specifications["speed"] = 7200
			result := engine.Check(ctx, cfg)

			Convey("Then an overclock warning is raised without blocking", func() {
				So(result.IsCompatible, ShouldBeTrue)
				So(result.Warnings, ShouldNotBeEmpty)
				So(result.Warnings[0].Type, ShouldEqual, "memory_speed")
			})

			Convey("Then each warning costs three points", func() {
				So(result.Score, ShouldEqual, 97)
			})
		})

		Convey("When the PSU lacks the GPU power connector", func() {
			cfg := healthyBuild()
			cfg.PSU.Specifications["connectors"] = map[string]any{"24pin": 1, "8pin_cpu": 1}
			result := engine.Check(ctx, cfg)

			Convey("Then a power_connector issue blocks the build", func() {
				So(result.IsCompatible, ShouldBeFalse)
				So(result.Issues[0].Type, ShouldEqual, "power_connector")
			})
		})

		Convey("When a 6+2pin loadout serves an 8pin PCIe requirement", func() {
			cfg := healthyBuild()
			cfg.GPU.Specifications["powerConnectors"] = []any{"8pin_pcie", "8pin_pcie"}
			cfg.PSU.Specifications["connectors"] = map[string]any{"24pin": 1, "8pin_cpu": 1, "6+2pin": 2}
			result := engine.Check(ctx, cfg)

			Convey("Then the superset connector satisfies it", func() {
				So(result.IsCompatible, ShouldBeTrue)
			})
		})

		Convey("When the GPU is longer than the case allows", func() {
			cfg := healthyBuild()
			cfg.GPU.Specifications["length"] = 420
			result := engine.Check(ctx, cfg)

			Convey("Then a gpu_length issue blocks the build", func() {
				So(result.IsCompatible, ShouldBeFalse)
				So(result.Issues[0].Type, ShouldEqual, "gpu_length")
			})
		})

		Convey("When the GPU barely fits", func() {
			cfg := healthyBuild()
			cfg.GPU.Specifications["length"] = 390
			result := engine.Check(ctx, cfg)

			Convey("Then only a clearance warning is raised", func() {
				So(result.IsCompatible, ShouldBeTrue)
				So(result.Warnings, ShouldNotBeEmpty)
				So(result.Warnings[0].Type, ShouldEqual, "gpu_length")
			})
		})

		Convey("When the cooler barely clears the case", func() {
			cfg := healthyBuild()
			// limit 180, 5% band starts at 171
			cfg.Cooler.Specifications["height"] = 175
			result := engine.Check(ctx, cfg)

			Convey("Then only a clearance warning is raised", func() {
				So(result.IsCompatible, ShouldBeTrue)
				So(result.Issues, ShouldBeEmpty)
				So(result.Warnings, ShouldNotBeEmpty)
				So(result.Warnings[0].Type, ShouldEqual, "cooler_height")
			})
		})

		Convey("When the build draws 600W on a 500W PSU", func() {
			cfg := healthyBuild()
			cfg.PSU.Specifications["wattage"] = 500
			cfg.GPU.Specifications["powerConsumption"] = 480
			// cpu 105 + gpu 480 + mem 10 + ssd 8 + cooler 5 = 608
			result := engine.Check(ctx, cfg)

			Convey("Then the power budget blocks the build", func() {
				So(result.IsCompatible, ShouldBeFalse)
				So(result.Issues[0].Type, ShouldEqual, "power_budget")
			})
		})

		Convey("When utilization lands between the bands", func() {
			cfg := healthyBuild()
			cfg.PSU.Specifications["wattage"] = 530
			// draw 448 / 530 = 84.5%
			result := engine.Check(ctx, cfg)

			Convey("Then a headroom warning is raised without blocking", func() {
				So(result.IsCompatible, ShouldBeTrue)
				So(result.Warnings, ShouldNotBeEmpty)
				So(result.Warnings[0].Type, ShouldEqual, "power_budget")
			})
		})

		Convey("When a weak CPU is paired with a strong GPU", func() {
			cfg := healthyBuild()
			cfg.CPU.Manufacturer = "Intel"
			cfg.CPU.Model = "Core i3-10100"
			delete(cfg.CPU.Specifications, "socket")
			cfg.Motherboard.Specifications["socket"] = ""
			// ratio 30/90 = 0.33 -> critical stage, non-blocking
			result := engine.Check(ctx, cfg)

			Convey("Then the pairing issue is raised but never blocks", func() {
				So(result.IsCompatible, ShouldBeTrue)
				var found bool
				for _, is := range result.Issues {
					if is.Type == "performance_balance" {
						found = true
						So(is.MustResolve, ShouldBeFalse)
						So(is.Severity, ShouldEqual, types.SeverityCritical)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When essential parts are missing", func() {
			cfg := &model.PCConfiguration{
				GPU: healthyBuild().GPU,
			}
			result := engine.Check(ctx, cfg)

			Convey("Then the build is incomplete and reported incompatible", func() {
				So(result.IsCompatible, ShouldBeFalse)
			})

			Convey("Then one missing_component issue per absent essential", func() {
				missing := 0
				for _, is := range result.Issues {
					if is.Type == "missing_component" {
						missing++
						So(is.MustResolve, ShouldBeFalse)
					}
				}
				So(missing, ShouldEqual, 4)
			})
		})
	})

	Convey("Given custom PSU bands", t, func() {
		engine := compat.New(testCatalog(), compat.WithPSUBands(0.95, 0.85))
		cfg := healthyBuild()
		cfg.PSU.Specifications["wattage"] = 500
		cfg.GPU.Specifications["powerConsumption"] = 345
		// draw 473 / 500 = 94.6%: over the default critical band but only a
		// warning under the widened bands.
		result := engine.Check(ctx, cfg)

		Convey("Then the widened bands downgrade the verdict to a warning", func() {
			So(result.IsCompatible, ShouldBeTrue)
			So(result.Warnings, ShouldNotBeEmpty)
		})
	})
}

func TestTotalPowerDraw(t *testing.T) {
	Convey("Given the power draw summation", t, func() {
		Convey("When the CPU declares no direct draw", func() {
			cfg := &model.PCConfiguration{
				CPU: part("cpu-1", types.CategoryCPU, map[string]any{"tdp": 65}),
				GPU: part("gpu-1", types.CategoryGPU, map[string]any{"powerConsumption": 200}),
			}

			Convey("Then the TDP substitutes for the CPU", func() {
				So(compat.TotalPowerDraw(cfg), ShouldEqual, 265)
			})
		})

		Convey("When the CPU has neither draw nor TDP", func() {
			cfg := &model.PCConfiguration{
				CPU: part("cpu-1", types.CategoryCPU, nil),
			}

			Convey("Then the default TDP applies", func() {
				So(compat.TotalPowerDraw(cfg), ShouldEqual, 65)
			})
		})
	})
}
