package config

import (
	"fmt"

	"routekit/pkg/scorer"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ScorerConfig is one `scorer "<name>" { ... }` block. The label picks the
// strategy, the attributes are that strategy's settings. Block order in the
// file is the evaluation order of the chain.
type ScorerConfig struct {
	Name         string             `hcl:"name,label"`
	Weight       *float64           `hcl:"weight,optional"`
	DefaultSpeed *float64           `hcl:"default_speed,optional"`
	Deny         []string           `hcl:"deny,optional"`
	ExtraCost    map[string]float64 `hcl:"extra_cost,optional"`
}

type PlannerConfig struct {
	MaxIterations int             `hcl:"max_iterations,optional"`
	Aggregation   string          `hcl:"aggregation,optional"`
	Scorers       []*ScorerConfig `hcl:"scorer,block"`
}

type ServerConfig struct {
	ListenAddr string `hcl:"listen_addr,optional"`
}

type GraphConfig struct {
	StoreDir        string  `hcl:"store_dir,optional"`
	SnapRadiusMeter float64 `hcl:"snap_radius_meter,optional"`

	// SimplifyThresholdMeter tunes route geometry simplification before
	// rendering. 0 disables it, nil takes the default.
	SimplifyThresholdMeter *float64 `hcl:"simplify_threshold_meter,optional"`
}

type Config struct {
	Planner *PlannerConfig `hcl:"planner,block"`
	Server  *ServerConfig  `hcl:"server,block"`
	Graph   *GraphConfig   `hcl:"graph,block"`
}

func Default() *Config {
	simplifyThreshold := 7.0
	return &Config{
		Planner: &PlannerConfig{
			MaxIterations: 0,
			Aggregation:   "sum",
			Scorers:       []*ScorerConfig{{Name: "distance"}},
		},
		Server: &ServerConfig{ListenAddr: ":5000"},
		Graph: &GraphConfig{
			StoreDir:               "./routekit-data",
			SnapRadiusMeter:        500,
			SimplifyThresholdMeter: &simplifyThreshold,
		},
	}
}

// Load parses an HCL config file.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	cfg := &Config{}
	diags = gohcl.DecodeBody(hclFile.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}
	return finalize(cfg)
}

// LoadBytes is Load for an in-memory config, used by tests.
func LoadBytes(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	cfg := &Config{}
	diags = gohcl.DecodeBody(hclFile.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}
	return finalize(cfg)
}

func finalize(cfg *Config) (*Config, error) {
	def := Default()
	if cfg.Planner == nil {
		cfg.Planner = def.Planner
	}
	if cfg.Server == nil {
		cfg.Server = def.Server
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = def.Server.ListenAddr
	}
	if cfg.Graph == nil {
		cfg.Graph = def.Graph
	}
	if cfg.Graph.StoreDir == "" {
		cfg.Graph.StoreDir = def.Graph.StoreDir
	}
	if cfg.Graph.SnapRadiusMeter <= 0 {
		cfg.Graph.SnapRadiusMeter = def.Graph.SnapRadiusMeter
	}
	if cfg.Graph.SimplifyThresholdMeter == nil {
		cfg.Graph.SimplifyThresholdMeter = def.Graph.SimplifyThresholdMeter
	}
	if cfg.Planner.MaxIterations < 0 {
		return nil, fmt.Errorf("planner.max_iterations must be >= 0, got %d", cfg.Planner.MaxIterations)
	}
	if _, err := scorer.ParseAggregation(cfg.Planner.Aggregation); err != nil {
		return nil, err
	}
	for _, sc := range cfg.Planner.Scorers {
		switch sc.Name {
		case "distance", "traveltime", "penalty", "roadclass", "closure":
		default:
			return nil, fmt.Errorf("unknown scorer %q in config", sc.Name)
		}
	}
	return cfg, nil
}

// BuildChain instantiates the configured scorer chain, in block order.
// closures backs the "closure" scorer and may be shared with the REST layer.
func (p *PlannerConfig) BuildChain(closures *scorer.ClosureStore) (*scorer.Chain, error) {
	agg, err := scorer.ParseAggregation(p.Aggregation)
	if err != nil {
		return nil, err
	}

	scorers := make([]scorer.EdgeScorer, 0, len(p.Scorers))
	weights := make([]float64, 0, len(p.Scorers))
	for _, sc := range p.Scorers {
		weight := 1.0
		if sc.Weight != nil {
			weight = *sc.Weight
		}
		weights = append(weights, weight)

		switch sc.Name {
		case "distance":
			scorers = append(scorers, scorer.NewDistanceScorer())
		case "traveltime":
			defaultSpeed := 0.0
			if sc.DefaultSpeed != nil {
				defaultSpeed = *sc.DefaultSpeed
			}
			scorers = append(scorers, scorer.NewTravelTimeScorer(defaultSpeed))
		case "penalty":
			scorers = append(scorers, scorer.NewPenaltyScorer())
		case "roadclass":
			scorers = append(scorers, scorer.NewRoadClassScorer(sc.Deny, sc.ExtraCost))
		case "closure":
			scorers = append(scorers, scorer.NewClosureScorer(closures))
		default:
			return nil, fmt.Errorf("unknown scorer %q in config", sc.Name)
		}
	}

	if agg == scorer.AggregationWeightedSum {
		return scorer.NewWeightedChain(scorers, weights)
	}
	return scorer.NewChain(agg, scorers...), nil
}
