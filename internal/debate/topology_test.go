package debate

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestPlanShapes(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []Node
	}{
		{
			name: "toggles off",
			cfg:  testConfig(2, false, false),
			want: []Node{NodeResearcher, NodeCritic, NodeRevision, NodeResearcher, NodeCritic, NodeRevision, NodeJudge},
		},
		{
			name: "all toggles",
			cfg:  testConfig(1, true, true),
			want: []Node{NodeResearcher, NodeCritic, NodeDevil, NodeRevision, NodeSynthesizer, NodeJudge},
		},
		{
			name: "devil only",
			cfg:  testConfig(1, false, true),
			want: []Node{NodeResearcher, NodeCritic, NodeDevil, NodeRevision, NodeJudge},
		},
		{
			name: "reduced",
			cfg:  Config{Key: "r", Rounds: 1, Mode: ModeReduced},
			want: []Node{NodeResearcher, NodeCritic, NodeRevision, NodeJudge},
		},
		{
			name: "reduced with synthesizer",
			cfg:  Config{Key: "r", Rounds: 2, Mode: ModeReduced, IncludeSynthesizer: true},
			want: []Node{NodeResearcher, NodeCritic, NodeRevision, NodeSynthesizer, NodeResearcher, NodeCritic, NodeRevision, NodeSynthesizer, NodeJudge},
		},
		{
			name: "reduced with devil",
			cfg:  Config{Key: "r", Rounds: 1, Mode: ModeReduced, IncludeDevil: true},
			want: []Node{NodeResearcher, NodeCritic, NodeDevil, NodeRevision, NodeJudge},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGraph(tt.cfg, testCast())
			if err != nil {
				t.Fatalf("BuildGraph: %v", err)
			}
			if got := g.Plan(tt.cfg.Rounds); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("plan = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGraphMembership(t *testing.T) {
	g, err := BuildGraph(testConfig(1, false, false), testCast())
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	if g.Has(NodeDevil) || g.Has(NodeSynthesizer) {
		t.Error("disabled nodes must be absent from the graph")
	}
	if !g.Has(NodeJudge) {
		t.Error("judge must always be present")
	}
	if g.Next(NodeJudge, &State{}) != "" {
		t.Error("judge must be terminal")
	}
	if g.Next(NodeDevil, &State{}) != "" {
		t.Error("absent node should have no successor")
	}
	if g.MaxSteps() != 6 {
		t.Errorf("max steps = %d, want 6", g.MaxSteps())
	}
}

func TestPlanLengthWithinMaxSteps(t *testing.T) {
	for rounds := 1; rounds <= 5; rounds++ {
		g, err := BuildGraph(testConfig(rounds, true, true), testCast())
		if err != nil {
			t.Fatalf("BuildGraph: %v", err)
		}
		plan := g.Plan(rounds)
		if len(plan) != g.MaxSteps() {
			t.Errorf("rounds=%d: plan length %d, max steps %d", rounds, len(plan), g.MaxSteps())
		}
	}
}

func TestBuildGraphLargeRoundCount(t *testing.T) {
	cfg := testConfig(math.MaxInt, true, true)

	g, err := BuildGraph(cfg, testCast())
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	if g.MaxSteps() != math.MaxInt {
		t.Errorf("max steps = %d, want saturation at math.MaxInt", g.MaxSteps())
	}
	want := []Node{NodeResearcher, NodeCritic, NodeDevil, NodeRevision, NodeSynthesizer, NodeJudge}
	if got := g.Plan(1); !reflect.DeepEqual(got, want) {
		t.Errorf("plan = %v, want %v", got, want)
	}

	g, err = BuildGraph(testConfig(1_000_000, false, false), testCast())
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	if g.MaxSteps() != 5_000_001 {
		t.Errorf("max steps = %d, want 5000001", g.MaxSteps())
	}
}

func TestBuildGraphRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		cast  Cast
		field string
	}{
		{"zero rounds", testConfig(0, false, false), testCast(), "rounds"},
		{"negative temperature", Config{Key: "t", Rounds: 1, Mode: ModeFull, Temperature: -0.1}, testCast(), "temperature"},
		{"missing key", Config{Rounds: 1, Mode: ModeFull}, testCast(), "key"},
		{"reduced synthesizer without speaker", Config{Key: "r", Rounds: 1, Mode: ModeReduced, IncludeSynthesizer: true}, Cast{NodeResearcher: {}, NodeCritic: {}, NodeJudge: {}}, "agents"},
		{"unknown mode", Config{Key: "m", Rounds: 1, Mode: "three"}, testCast(), "agent_mode"},
		{"missing devil speaker", testConfig(1, false, true), Cast{NodeResearcher: {}, NodeCritic: {}, NodeJudge: {}}, "agents"},
		{"missing judge", testConfig(1, false, false), Cast{NodeResearcher: {}, NodeCritic: {}}, "agents"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGraph(tt.cfg, tt.cast)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field = %q, want %q", ce.Field, tt.field)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Error("expected errors.Is(err, ErrConfiguration)")
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"full", ModeFull, false},
		{"", ModeFull, false},
		{"reduced", ModeReduced, false},
		{"two_agent", ModeReduced, false},
		{" Two-Agent ", ModeReduced, false},
		{"solo", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSinkErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&SinkError{Sink: "files", Path: "/tmp/x", Err: cause})

	if !errors.Is(err, ErrOutputSink) {
		t.Error("expected errors.Is(err, ErrOutputSink)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to unwrap")
	}
	if errors.Is(err, ErrConfiguration) {
		t.Error("sink error is not a configuration error")
	}
}
