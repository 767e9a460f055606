package study

// Config is the top-level configuration for a daylight results study. It
// points the engine at the sensor grid and the result files produced by the
// ray-tracing toolchain, and carries the metric parameters.
type Config struct {
	SpecVersion string      `yaml:"spec_version" json:"spec_version"`
	Grid        GridDef     `yaml:"grid" json:"grid"`
	Results     ResultsDef  `yaml:"results" json:"results"`
	Schedule    ScheduleDef `yaml:"schedule" json:"schedule"`
	Metrics     MetricsDef  `yaml:"metrics" json:"metrics"`
	BlindStates []string    `yaml:"blind_states,omitempty" json:"blind_states,omitempty"`
}

// GridDef names the analysis grid and its sensor points file.
type GridDef struct {
	Name         string   `yaml:"name" json:"name"`
	PointsFile   string   `yaml:"points_file" json:"points_file"`
	StartLine    int      `yaml:"start_line,omitempty" json:"start_line,omitempty"`
	EndLine      int      `yaml:"end_line,omitempty" json:"end_line,omitempty"`
	WindowGroups []string `yaml:"window_groups,omitempty" json:"window_groups,omitempty"`
}

// ResultsDef locates the result matrices: either an explicit manifest or a
// folder to scan with the filename convention.
type ResultsDef struct {
	Manifest string `yaml:"manifest,omitempty" json:"manifest,omitempty"`
	Folder   string `yaml:"folder,omitempty" json:"folder,omitempty"`
}

// ScheduleDef describes the annual occupancy schedule as a daily window.
// EndHour is exclusive. Weekend days are numbered 1 (Monday) to 7 (Sunday).
type ScheduleDef struct {
	StartHour int   `yaml:"start_hour" json:"start_hour"`
	EndHour   int   `yaml:"end_hour" json:"end_hour"`
	OffHours  []int `yaml:"off_hours,omitempty" json:"off_hours,omitempty"`
	Weekend   []int `yaml:"weekend,omitempty" json:"weekend,omitempty"`
}

// IsZero reports whether no schedule was configured.
func (s ScheduleDef) IsZero() bool {
	return s.StartHour == 0 && s.EndHour == 0 && len(s.OffHours) == 0 && len(s.Weekend) == 0
}

// MetricsDef carries the metric thresholds. Zero values select the
// IES-LM-83-12 defaults.
type MetricsDef struct {
	DAThreshold  float64 `yaml:"da_threshold,omitempty" json:"da_threshold,omitempty"`
	UDIMin       float64 `yaml:"udi_min,omitempty" json:"udi_min,omitempty"`
	UDIMax       float64 `yaml:"udi_max,omitempty" json:"udi_max,omitempty"`
	ASEThreshold float64 `yaml:"ase_threshold,omitempty" json:"ase_threshold,omitempty"`
	TargetHours  int     `yaml:"target_hours,omitempty" json:"target_hours,omitempty"`
	TargetArea   float64 `yaml:"target_area,omitempty" json:"target_area,omitempty"`
	TargetDA     float64 `yaml:"target_da,omitempty" json:"target_da,omitempty"`
}
