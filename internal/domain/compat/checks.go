package compat

import (
	"context"
	"fmt"
	"strings"

	"github.com/rigmate/rigmate/internal/domain/model"
	"github.com/rigmate/rigmate/internal/domain/types"
)

// checkSocket verifies the CPU socket equals the motherboard socket
// exactly. Unknown sockets on either side skip the check.
func (e *RuleEngine) checkSocket(ctx context.Context, cfg *model.PCConfiguration) checkResult {
	r := checkResult{name: "socket", weight: socketWeight}
	if cfg.CPU == nil || cfg.Motherboard == nil {
		return r
	}

	cpuSocket := model.ParseCPUSpec(*cfg.CPU).Socket
	if cpuSocket == "" {
		if entry, ok := e.catalog.Lookup(ctx, types.CategoryCPU, cfg.CPU.Manufacturer, cfg.CPU.Name()); ok {
			cpuSocket = entry.Socket
		}
	}
	mbSocket := model.ParseMotherboardSpec(*cfg.Motherboard).Socket
	if mbSocket == "" {
		if entry, ok := e.catalog.Lookup(ctx, types.CategoryMotherboard, cfg.Motherboard.Manufacturer, cfg.Motherboard.Name()); ok {
			mbSocket = entry.Socket
		}
	}
	if cpuSocket == "" || mbSocket == "" {
		return r
	}

	if cpuSocket != mbSocket {
		r.issues = append(r.issues, model.CompatibilityIssue{
			Type:          "socket_mismatch",
			Severity:      types.SeverityCritical,
			Message:       fmt.Sprintf("CPU socket %s does not fit motherboard socket %s", cpuSocket, mbSocket),
			AffectedParts: []string{cfg.CPU.ID, cfg.Motherboard.ID},
			Solution:      fmt.Sprintf("pick a motherboard with socket %s or a CPU with socket %s", cpuSocket, mbSocket),
			MustResolve:   true,
		})
	}
	return r
}

// checkMemory verifies memory type support, total capacity against the
// board maximum, and flags out-of-JEDEC speeds as overclock warnings.
func (e *RuleEngine) checkMemory(cfg *model.PCConfiguration) checkResult {
	r := checkResult{name: "memory", weight: memoryWeight}
	if len(cfg.Memory) == 0 {
		return r
	}

	var mb model.MotherboardSpec
	if cfg.Motherboard != nil {
		mb = model.ParseMotherboardSpec(*cfg.Motherboard)
	}

	totalGB := 0.0
	for i := range cfg.Memory {
		mod := cfg.Memory[i]
		spec := model.ParseMemorySpec(mod)
		totalGB += spec.CapacityGB

		if spec.Type != "" && len(mb.MemoryTypes) > 0 && !containsFold(mb.MemoryTypes, spec.Type) {
			r.issues = append(r.issues, model.CompatibilityIssue{
				Type:          "memory_type",
				Severity:      types.SeverityCritical,
				Message:       fmt.Sprintf("memory type %s is not supported by the motherboard", spec.Type),
				AffectedParts: []string{mod.ID, cfg.Motherboard.ID},
				Solution:      fmt.Sprintf("use %v memory", mb.MemoryTypes),
				MustResolve:   true,
			})
		}

		if max, known := jedecMaxSpeed(spec.Type); known && spec.SpeedMHz > max {
			r.warnings = append(r.warnings, model.CompatibilityWarning{
				Type:          "memory_speed",
				Severity:      types.SeverityMinor,
				Message:       fmt.Sprintf("%s at %.0f MHz exceeds the JEDEC standard %.0f MHz and requires an overclock profile", spec.Type, spec.SpeedMHz, max),
				AffectedParts: []string{mod.ID},
				Suggestion:    "enable the XMP/EXPO profile in firmware",
			})
		}
	}

	if mb.MaxMemoryGB > 0 && totalGB > mb.MaxMemoryGB {
		r.issues = append(r.issues, model.CompatibilityIssue{
			Type:          "memory_capacity",
			Severity:      types.SeverityCritical,
			Message:       fmt.Sprintf("total memory %.0fGB exceeds the motherboard maximum of %.0fGB", totalGB, mb.MaxMemoryGB),
			AffectedParts: memoryIDs(cfg),
			Solution:      "reduce the total installed memory",
			MustResolve:   true,
		})
	}
	return r
}

// checkPowerConnectors matches every required power connector against the
// PSU's available counts. A superset connector satisfies a subset
// requirement per the compatibility table.
func (e *RuleEngine) checkPowerConnectors(cfg *model.PCConfiguration) checkResult {
	r := checkResult{name: "power_connectors", weight: connectorsWeight}
	if cfg.PSU == nil {
		return r
	}
	available := model.ParsePSUSpec(*cfg.PSU).Connectors
	if len(available) == 0 {
		// PSU loadout undeclared; nothing to match against.
		return r
	}

	required := map[string]int{}
	affected := map[string][]string{}
	if cfg.Motherboard != nil {
		mb := model.ParseMotherboardSpec(*cfg.Motherboard)
		required["24pin"]++
		required[mb.CPUConnector]++
		affected["24pin"] = append(affected["24pin"], cfg.Motherboard.ID)
		affected[mb.CPUConnector] = append(affected[mb.CPUConnector], cfg.Motherboard.ID)
	}
	if cfg.GPU != nil {
		for _, conn := range model.ParseGPUSpec(*cfg.GPU).PowerConnectors {
			required[conn]++
			affected[conn] = append(affected[conn], cfg.GPU.ID)
		}
	}

	remaining := make(map[string]int, len(available))
	for conn, n := range available {
		remaining[strings.ToLower(strings.TrimSpace(conn))] += n
	}
	for _, conn := range sortedKeys(required) {
		need := required[conn]
		for _, provider := range providersOf(conn) {
			for need > 0 && remaining[provider] > 0 {
				remaining[provider]--
				need--
			}
		}
		if need > 0 {
			parts := append([]string{cfg.PSU.ID}, affected[conn]...)
			r.issues = append(r.issues, model.CompatibilityIssue{
				Type:          "power_connector",
				Severity:      types.SeverityCritical,
				Message:       fmt.Sprintf("PSU is missing %d x %s connector", need, conn),
				AffectedParts: parts,
				Solution:      "choose a PSU that provides " + conn,
				MustResolve:   true,
			})
		}
	}
	return r
}

// checkPhysicalFit verifies form factor support and clearance limits, with
// a warning band just inside each limit.
func (e *RuleEngine) checkPhysicalFit(cfg *model.PCConfiguration) checkResult {
	r := checkResult{name: "physical_fit", weight: physicalWeight}
	if cfg.Case == nil {
		return r
	}
	cs := model.ParseCaseSpec(*cfg.Case)

	if cfg.Motherboard != nil {
		mb := model.ParseMotherboardSpec(*cfg.Motherboard)
		if mb.FormFactor != "" && len(cs.SupportedFormFactors) > 0 && !containsFold(cs.SupportedFormFactors, mb.FormFactor) {
			r.issues = append(r.issues, model.CompatibilityIssue{
				Type:          "form_factor",
				Severity:      types.SeverityCritical,
				Message:       fmt.Sprintf("motherboard form factor %s is not supported by the case", mb.FormFactor),
				AffectedParts: []string{cfg.Motherboard.ID, cfg.Case.ID},
				Solution:      fmt.Sprintf("use a case that supports %s boards", mb.FormFactor),
				MustResolve:   true,
			})
		}
	}

	if cfg.GPU != nil {
		gpu := model.ParseGPUSpec(*cfg.GPU)
		r.apply(e.fitClearance("gpu_length", "GPU length", gpu.LengthMM, cs.MaxGPULengthMM, gpuFitMarginFraction, cfg.GPU.ID, cfg.Case.ID))
		r.apply(e.fitClearance("gpu_height", "GPU height", gpu.HeightMM, cs.MaxGPUHeightMM, gpuFitMarginFraction, cfg.GPU.ID, cfg.Case.ID))
	}
	if cfg.Cooler != nil {
		cooler := model.ParseCoolerSpec(*cfg.Cooler)
		r.apply(e.fitClearance("cooler_height", "cooler height", cooler.HeightMM, cs.MaxCoolerHeightMM, coolerFitMarginFraction, cfg.Cooler.ID, cfg.Case.ID))
	}
	return r
}

// fitClearance compares one dimension against a case limit: exceeding the
// limit is critical, landing within the margin band is a warning.
func (e *RuleEngine) fitClearance(kind, label string, size, limit, margin float64, partID, caseID string) (issue *model.CompatibilityIssue, warning *model.CompatibilityWarning) {
	if size <= 0 || limit <= 0 {
		return nil, nil
	}
	if size > limit {
		return &model.CompatibilityIssue{
			Type:          kind,
			Severity:      types.SeverityCritical,
			Message:       fmt.Sprintf("%s %.0fmm exceeds the case limit of %.0fmm", label, size, limit),
			AffectedParts: []string{partID, caseID},
			Solution:      "choose a larger case or a smaller part",
			MustResolve:   true,
		}, nil
	}
	if size > limit*(1-margin) {
		return nil, &model.CompatibilityWarning{
			Type:          kind,
			Severity:      types.SeverityMinor,
			Message:       fmt.Sprintf("%s %.0fmm is within %.0f%% of the case limit of %.0fmm", label, size, margin*100, limit),
			AffectedParts: []string{partID, caseID},
			Suggestion:    "verify clearance against the case manual",
		}
	}
	return nil, nil
}

func (r *checkResult) apply(issue *model.CompatibilityIssue, warning *model.CompatibilityWarning) {
	if issue != nil {
		r.issues = append(r.issues, *issue)
	}
	if warning != nil {
		r.warnings = append(r.warnings, *warning)
	}
}

// checkPowerBudget compares the summed part power draw against the PSU
// wattage using the configured utilization bands.
func (e *RuleEngine) checkPowerBudget(cfg *model.PCConfiguration) checkResult {
	r := checkResult{name: "power_budget", weight: powerBudgetWeight}
	if cfg.PSU == nil {
		return r
	}
	wattage := model.ParsePSUSpec(*cfg.PSU).Wattage
	if wattage <= 0 {
		wattage = model.DefaultPSUWattage
	}
	draw := TotalPowerDraw(cfg)
	if draw <= 0 {
		return r
	}
	utilization := draw / wattage

	switch {
	case utilization > e.psuCritical:
		r.issues = append(r.issues, model.CompatibilityIssue{
			Type:          "power_budget",
			Severity:      types.SeverityCritical,
			Message:       fmt.Sprintf("estimated draw %.0fW uses %.0f%% of the %.0fW PSU", draw, utilization*100, wattage),
			AffectedParts: []string{cfg.PSU.ID},
			Solution:      "choose a PSU with higher rated wattage",
			MustResolve:   true,
		})
	case utilization > e.psuWarning:
		r.warnings = append(r.warnings, model.CompatibilityWarning{
			Type:          "power_budget",
			Severity:      types.SeverityModerate,
			Message:       fmt.Sprintf("estimated draw %.0fW leaves little headroom on the %.0fW PSU", draw, wattage),
			AffectedParts: []string{cfg.PSU.ID},
			Suggestion:    "keep PSU utilization below 80% for efficiency and transient headroom",
		})
	}
	return r
}

// checkPerformanceBalance flags CPU/GPU pairings whose score ratio is below
// the pairing bands. These issues never block a build.
func (e *RuleEngine) checkPerformanceBalance(ctx context.Context, cfg *model.PCConfiguration) checkResult {
	r := checkResult{name: "performance_balance"}
	if cfg.CPU == nil || cfg.GPU == nil {
		return r
	}
	cpuEntry, _ := e.catalog.Lookup(ctx, types.CategoryCPU, cfg.CPU.Manufacturer, cfg.CPU.Name())
	gpuEntry, _ := e.catalog.Lookup(ctx, types.CategoryGPU, cfg.GPU.Manufacturer, cfg.GPU.Name())
	if gpuEntry.Score <= 0 {
		return r
	}
	ratio := cpuEntry.Score / gpuEntry.Score

	var severity types.Severity
	switch {
	case ratio < balanceCriticalRatio:
		severity = types.SeverityCritical
	case ratio < balanceMajorRatio:
		severity = types.SeverityMajor
	case ratio < balanceModerateRatio:
		severity = types.SeverityModerate
	default:
		return r
	}
	r.issues = append(r.issues, model.CompatibilityIssue{
		Type:          "performance_balance",
		Severity:      severity,
		Message:       fmt.Sprintf("CPU score %.0f cannot keep a GPU scoring %.0f busy", cpuEntry.Score, gpuEntry.Score),
		AffectedParts: []string{cfg.CPU.ID, cfg.GPU.ID},
		Solution:      "pair the GPU with a faster CPU",
		MustResolve:   false,
	})
	return r
}

// TotalPowerDraw sums the declared power consumption of every selected
// part. The CPU falls back to its TDP when it declares no direct draw.
func TotalPowerDraw(cfg *model.PCConfiguration) float64 {
	total := 0.0
	for _, sp := range cfg.Parts() {
		draw := model.PowerDraw(sp.Part)
		if draw == 0 && sp.Part.Category == types.CategoryCPU {
			draw = model.ParseCPUSpec(sp.Part).TDPWatts
		}
		total += draw
	}
	return total
}

func memoryIDs(cfg *model.PCConfiguration) []string {
	out := make([]string, 0, len(cfg.Memory)+1)
	for i := range cfg.Memory {
		out = append(out, cfg.Memory[i].ID)
	}
	if cfg.Motherboard != nil {
		out = append(out, cfg.Motherboard.ID)
	}
	return out
}
