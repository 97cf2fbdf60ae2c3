package model

// Documented defaults applied when a specification field is absent. The
// engine degrades gracefully on missing domain data and never errors here.
const (
	DefaultCPUTDPWatts       = 65
	DefaultPSUWattage        = 500
	DefaultCoolerFanSizeMM   = 120
	DefaultCPUPowerConnector = "8pin_cpu"
	DefaultMemoryModuleGB    = 8
	DefaultPowerDrawWatts    = 0
)

// CPUSpec is the typed view of a CPU part's specification bag.
type CPUSpec struct {
	Socket      string
	Cores       int
	TDPWatts    float64
	Generation  float64
	ReleaseYear int
}

// ParseCPUSpec extracts a CPUSpec from the part, applying defaults.
func ParseCPUSpec(p Part) CPUSpec {
	return CPUSpec{
		Socket:      specString(p.Specifications, "socket", ""),
		Cores:       int(specFloat(p.Specifications, "cores", 0)),
		TDPWatts:    specFloat(p.Specifications, "tdp", DefaultCPUTDPWatts),
		Generation:  specFloat(p.Specifications, "generation", 0),
		ReleaseYear: int(specFloat(p.Specifications, "releaseYear", 0)),
	}
}

// GPUSpec is the typed view of a GPU part's specification bag.
type GPUSpec struct {
	LengthMM        float64
	HeightMM        float64
	MemoryGB        float64
	PowerDrawWatts  float64
	PowerConnectors []string
	ReleaseYear     int
}

// ParseGPUSpec extracts a GPUSpec from the part, applying defaults.
func ParseGPUSpec(p Part) GPUSpec {
	return GPUSpec{
		LengthMM:        specFloat(p.Specifications, "length", 0),
		HeightMM:        specFloat(p.Specifications, "height", 0),
		MemoryGB:        specFloat(p.Specifications, "memory", 0),
		PowerDrawWatts:  specFloat(p.Specifications, "powerConsumption", DefaultPowerDrawWatts),
		PowerConnectors: specStrings(p.Specifications, "powerConnectors"),
		ReleaseYear:     int(specFloat(p.Specifications, "releaseYear", 0)),
	}
}

// MotherboardSpec is the typed view of a motherboard part's specification bag.
type MotherboardSpec struct {
	Socket       string
	FormFactor   string
	Chipset      string
	MemoryTypes  []string
	MaxMemoryGB  float64
	Generation   float64
	CPUConnector string
}

// ParseMotherboardSpec extracts a MotherboardSpec from the part, applying defaults.
func ParseMotherboardSpec(p Part) MotherboardSpec {
	return MotherboardSpec{
		Socket:       specString(p.Specifications, "socket", ""),
		FormFactor:   specString(p.Specifications, "formFactor", ""),
		Chipset:      specString(p.Specifications, "chipset", ""),
		MemoryTypes:  specStrings(p.Specifications, "memoryTypes"),
		MaxMemoryGB:  specFloat(p.Specifications, "maxMemory", 0),
		Generation:   specFloat(p.Specifications, "generation", 0),
		CPUConnector: specString(p.Specifications, "cpuPowerConnector", DefaultCPUPowerConnector),
	}
}

// MemorySpec is the typed view of a memory module's specification bag.
type MemorySpec struct {
	Type       string
	CapacityGB float64
	SpeedMHz   float64
}

// ParseMemorySpec extracts a MemorySpec from the part, applying defaults.
func ParseMemorySpec(p Part) MemorySpec {
	return MemorySpec{
		Type:       specString(p.Specifications, "memoryType", ""),
		CapacityGB: specFloat(p.Specifications, "capacity", DefaultMemoryModuleGB),
		SpeedMHz:   specFloat(p.Specifications, "speed", 0),
	}
}

// StorageSpec is the typed view of a storage drive's specification bag.
type StorageSpec struct {
	Type       string // SSD, NVMe, HDD
	CapacityGB float64
}

// ParseStorageSpec extracts a StorageSpec from the part, applying defaults.
func ParseStorageSpec(p Part) StorageSpec {
	return StorageSpec{
		Type:       specString(p.Specifications, "type", ""),
		CapacityGB: specFloat(p.Specifications, "capacity", 0),
	}
}

// IsSolidState reports whether the drive is SSD/NVMe class.
func (s StorageSpec) IsSolidState() bool {
	switch normalizeToken(s.Type) {
	case "ssd", "nvme", "m.2", "m2":
		return true
	default:
		return false
	}
}

// PSUSpec is the typed view of a PSU part's specification bag.
type PSUSpec struct {
	Wattage    float64
	Connectors map[string]int
}

// ParsePSUSpec extracts a PSUSpec from the part, applying defaults.
func ParsePSUSpec(p Part) PSUSpec {
	return PSUSpec{
		Wattage:    specFloat(p.Specifications, "wattage", DefaultPSUWattage),
		Connectors: specCounts(p.Specifications, "connectors"),
	}
}

// CaseSpec is the typed view of a case part's specification bag.
type CaseSpec struct {
	SupportedFormFactors []string
	MaxGPULengthMM       float64
	MaxGPUHeightMM       float64
	MaxCoolerHeightMM    float64
}

// ParseCaseSpec extracts a CaseSpec from the part, applying defaults.
func ParseCaseSpec(p Part) CaseSpec {
	return CaseSpec{
		SupportedFormFactors: specStrings(p.Specifications, "supportedFormFactors"),
		MaxGPULengthMM:       specFloat(p.Specifications, "maxGpuLength", 0),
		MaxGPUHeightMM:       specFloat(p.Specifications, "maxGpuHeight", 0),
		MaxCoolerHeightMM:    specFloat(p.Specifications, "maxCoolerHeight", 0),
	}
}

// CoolerSpec is the typed view of a cooler part's specification bag.
type CoolerSpec struct {
	HeightMM             float64
	CoolingCapacityWatts float64
	FanSizeMM            float64
}

// ParseCoolerSpec extracts a CoolerSpec from the part, applying defaults.
func ParseCoolerSpec(p Part) CoolerSpec {
	return CoolerSpec{
		HeightMM:             specFloat(p.Specifications, "height", 0),
		CoolingCapacityWatts: specFloat(p.Specifications, "coolingCapacity", 0),
		FanSizeMM:            specFloat(p.Specifications, "fanSize", DefaultCoolerFanSizeMM),
	}
}

// PowerDraw returns the declared power consumption of any part, defaulting
// to zero when unspecified.
func PowerDraw(p Part) float64 {
	return specFloat(p.Specifications, "powerConsumption", DefaultPowerDrawWatts)
}

// ReleaseYear returns the declared release year of any part, or zero when
// unknown.
func ReleaseYear(p Part) int {
	return int(specFloat(p.Specifications, "releaseYear", 0))
}
