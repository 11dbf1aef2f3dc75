package simulation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PlatypusBytes/GoRoll/internal/arrangement"
	"github.com/PlatypusBytes/GoRoll/internal/components"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
	"github.com/PlatypusBytes/GoRoll/internal/track"
)

// Config contains the complete specification of one simulation run: the
// rail reference, the support layout, the grid parameters, the excitation
// and the requested outputs.
type Config struct {
	Rail struct {
		Name  string `yaml:"name"`  // Rail profile name, e.g. "UIC60"
		Table string `yaml:"table"` // Optional path to a rail table file
	} `yaml:"rail"`

	Track struct {
		Type     string    `yaml:"type"`      // cont_slab | cont_ballasted | periodic_slab | periodic_ballasted | arranged_slab | arranged_ballasted
		Length   float64   `yaml:"length"`    // Track length for continuous tracks [m]
		Distance float64   `yaml:"distance"`  // Mount distance for periodic tracks [m]
		NumMount int       `yaml:"num_mount"` // Number of mounting positions
		Pad      PadSpec   `yaml:"pad"`
		Sleeper  MassSpec  `yaml:"sleeper"`
		Slab     MassSpec  `yaml:"slab"`
		Ballast  LayerSpec `yaml:"ballast"`

		Arrangement struct {
			Mode     string    `yaml:"mode"` // periodic | stochastic
			Seed     uint64    `yaml:"seed"`
			Pads     []PadSpec `yaml:"pads"`
			Sleepers []float64 `yaml:"sleeper_masses"` // Sleeper masses [kg]
			Distance struct {
				Values []float64 `yaml:"values"` // Explicit gap sequence [m]
				Mean   float64   `yaml:"mean"`   // Truncated-normal mean [m]
				Std    float64   `yaml:"std"`    // Truncated-normal deviation [m]
				Min    float64   `yaml:"min"`    // Lower truncation [m]
				Max    float64   `yaml:"max"`    // Upper truncation [m]
			} `yaml:"distance"`
		} `yaml:"arrangement"`
	} `yaml:"track"`

	Simulation struct {
		Dt             float64 `yaml:"dt"`              // Time step [s]
		Duration       float64 `yaml:"duration"`        // Requested simulation time [s]
		Bx             float64 `yaml:"bx"`              // Stability coefficient (default 1)
		BoundaryLength float64 `yaml:"boundary_length"` // Absorbing boundary per side [m]
		Alpha          float64 `yaml:"alpha"`           // PML damping exponent (default 7)
		KeepSupport    bool    `yaml:"keep_support"`    // Retain sleeper/slab DOF history
	} `yaml:"simulation"`

	Excitation struct {
		Kind         string    `yaml:"kind"`          // stationary-gaussian | moving-constant
		XExcit       []float64 `yaml:"x_excit"`       // Excitation position(s) [m]
		Sigma        float64   `yaml:"sigma"`         // Gaussian pulse parameter [s]
		Amplitude    float64   `yaml:"amplitude"`     // Pulse parameter or force [N]
		Velocity     float64   `yaml:"velocity"`      // Load speed [m/s]
		RampFraction float64   `yaml:"ramp_fraction"` // Moving-load ramp fraction [-]
	} `yaml:"excitation"`

	Response struct {
		XResponse []float64 `yaml:"x_response"` // Response positions (default: driving point) [m]
		FMin      float64   `yaml:"f_min"`      // Lower band edge (default 100) [Hz]
		FMax      float64   `yaml:"f_max"`      // Upper band edge (default 3000) [Hz]
		TDR       bool      `yaml:"tdr"`        // Also compute the track decay rate
	} `yaml:"response"`

	Output struct {
		ResponseCSV    string `yaml:"response_csv"`    // Response CSV path
		DeflectionFile string `yaml:"deflection_file"` // Optional binary deflection dump
		Summary        string `yaml:"summary"`         // JSON run summary path
	} `yaml:"output"`
}

// PadSpec is the configuration form of a rail pad.
type PadSpec struct {
	Stiffness  []float64 `yaml:"stiffness"`   // Vertical/lateral stiffness
	Damping    []float64 `yaml:"damping"`     // Vertical/lateral viscous damping
	LossFactor float64   `yaml:"loss_factor"` // Optional loss factor
	Resonance  []float64 `yaml:"resonance"`   // Resonance frequencies [Hz]
}

// MassSpec is the configuration form of a sleeper or slab.
type MassSpec struct {
	Mass float64 `yaml:"mass"` // Mass [kg] or [kg/m]
}

// LayerSpec is the configuration form of the ballast layer.
type LayerSpec struct {
	Stiffness  []float64 `yaml:"stiffness"`
	Damping    []float64 `yaml:"damping"`
	LossFactor float64   `yaml:"loss_factor"`
}

// LoadConfig loads a configuration from a YAML file and applies defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation.Bx == 0 {
		c.Simulation.Bx = 1
	}
	if c.Response.FMin == 0 {
		c.Response.FMin = 100
	}
	if c.Response.FMax == 0 {
		c.Response.FMax = 3000
	}
}

func pair(v []float64) [2]float64 {
	var out [2]float64
	copy(out[:], v)
	return out
}

func (s PadSpec) discrete() components.DiscrPad {
	return components.DiscrPad{
		Sp:    pair(s.Stiffness),
		Dp:    pair(s.Damping),
		Etap:  s.LossFactor,
		Fresp: pair(s.Resonance),
	}
}

func (s PadSpec) continuous() components.ContPad {
	return components.ContPad{
		Sp:    pair(s.Stiffness),
		Dp:    pair(s.Damping),
		Etap:  s.LossFactor,
		Fresp: pair(s.Resonance),
	}
}

func (s LayerSpec) ballast() components.Ballast {
	return components.Ballast{
		Sb:   pair(s.Stiffness),
		Db:   pair(s.Damping),
		Etab: s.LossFactor,
	}
}

// LoadRail resolves the configured rail profile, either from the embedded
// database or from the configured table file.
func (c *Config) LoadRail() (components.Rail, error) {
	if c.Rail.Name == "" {
		return components.Rail{}, simerr.Configf("rail.name", "rail profile is required")
	}
	if c.Rail.Table == "" {
		return components.RailByName(c.Rail.Name)
	}
	rails, err := components.LoadRailFile(c.Rail.Table)
	if err != nil {
		return components.Rail{}, err
	}
	rail, ok := rails[c.Rail.Name]
	if !ok {
		return components.Rail{}, simerr.Configf("rail.name", "profile %q not in table %s", c.Rail.Name, c.Rail.Table)
	}
	return rail, nil
}

// BuildTrack assembles the configured track structure.
func (c *Config) BuildTrack() (*track.Track, error) {
	rail, err := c.LoadRail()
	if err != nil {
		return nil, err
	}
	t := &c.Track

	switch t.Type {
	case "cont_slab":
		return track.NewContSlab(rail, t.Pad.continuous(), t.Length)

	case "cont_ballasted":
		return track.NewContBallasted(rail, t.Pad.continuous(),
			components.Slab{Ms: t.Slab.Mass}, t.Ballast.ballast(), t.Length)

	case "periodic_slab":
		return track.NewPeriodicSlab(rail, t.Pad.discrete(), t.Distance, t.NumMount)

	case "periodic_ballasted":
		return track.NewPeriodicBallasted(rail, t.Pad.discrete(),
			components.Sleeper{Ms: t.Sleeper.Mass}, t.Ballast.ballast(), t.Distance, t.NumMount)

	case "arranged_slab":
		pads, dists, _, err := c.arrangements()
		if err != nil {
			return nil, err
		}
		return track.NewArrangedSlab(rail, pads, dists, t.NumMount)

	case "arranged_ballasted":
		pads, dists, sleepers, err := c.arrangements()
		if err != nil {
			return nil, err
		}
		return track.NewArrangedBallasted(rail, pads, sleepers, t.Ballast.ballast(), dists, t.NumMount)

	default:
		return nil, simerr.Configf("track.type", "unknown track type %q", t.Type)
	}
}

func (c *Config) arrangements() (arrangement.Arrangement[components.DiscrPad], arrangement.Arrangement[float64], arrangement.Arrangement[components.Sleeper], error) {
	a := &c.Track.Arrangement

	pads := make([]components.DiscrPad, len(a.Pads))
	for i, p := range a.Pads {
		pads[i] = p.discrete()
	}
	if len(pads) == 0 && c.Track.Pad.Stiffness != nil {
		pads = []components.DiscrPad{c.Track.Pad.discrete()}
	}

	sleepers := make([]components.Sleeper, len(a.Sleepers))
	for i, ms := range a.Sleepers {
		sleepers[i] = components.Sleeper{Ms: ms}
	}
	if len(sleepers) == 0 && c.Track.Sleeper.Mass > 0 {
		sleepers = []components.Sleeper{{Ms: c.Track.Sleeper.Mass}}
	}

	var dists arrangement.Arrangement[float64]
	switch {
	case a.Distance.Std > 0:
		dists = arrangement.TruncatedNormal{
			Mean: a.Distance.Mean, Std: a.Distance.Std,
			Min: a.Distance.Min, Max: a.Distance.Max, Seed: a.Seed,
		}
	case len(a.Distance.Values) > 0:
		if a.Mode == "stochastic" {
			dists = arrangement.Stochastic[float64]{Items: a.Distance.Values, Seed: a.Seed}
		} else {
			dists = arrangement.Periodic[float64]{Items: a.Distance.Values}
		}
	case c.Track.Distance > 0:
		dists = arrangement.Constant(c.Track.Distance)
	default:
		return nil, nil, nil, simerr.Configf("track.arrangement.distance", "no distance specification")
	}

	if a.Mode == "stochastic" {
		return arrangement.Stochastic[components.DiscrPad]{Items: pads, Seed: a.Seed + 1},
			dists,
			arrangement.Stochastic[components.Sleeper]{Items: sleepers, Seed: a.Seed + 2},
			nil
	}
	return arrangement.Periodic[components.DiscrPad]{Items: pads},
		dists,
		arrangement.Periodic[components.Sleeper]{Items: sleepers},
		nil
}
