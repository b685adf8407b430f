package validator

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
)

func validConfiguration() calculator.Configuration {
	return calculator.Configuration{
		Samples: calculator.SampleDesign{
			Targets: []string{"GAPDH", "IL-6", "18S rRNA"},
			Repeat:  3,
			Groups:  []string{"ctrl", "treat"},
		},
		Recipe: calculator.Recipe{Mix: 10, Primers: 1, CDNA: 2, Water: 5},
		Primers: calculator.Primers{
			Forward: calculator.Primer{Name: "fwd", Concentration: 10},
			Reverse: calculator.Primer{Name: "rev", Concentration: 10},
		},
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(cfg *calculator.Configuration)
		shouldFail bool
		field      string
	}{
		{
			name:       "validation ok -- valid configuration",
			mutate:     func(cfg *calculator.Configuration) {},
			shouldFail: false,
		},
		{
			name: "validation ok -- empty targets",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Targets = []string{}
			},
			shouldFail: false,
		},
		{
			name: "validation ok -- zero repeat",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Repeat = 0
			},
			shouldFail: false,
		},
		{
			name: "validation ok -- zero volumes",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Recipe = calculator.Recipe{}
			},
			shouldFail: false,
		},
		{
			name: "validation ko -- duplicate targets",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Targets = []string{"geneA", "geneB", "geneA"}
			},
			shouldFail: true,
			field:      "samples.targets",
		},
		{
			name: "validation ko -- duplicate groups",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Groups = []string{"ctrl", "ctrl"}
			},
			shouldFail: true,
			field:      "samples.groups",
		},
		{
			name: "validation ko -- empty target name",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Targets = []string{"geneA", ""}
			},
			shouldFail: true,
			field:      "samples.targets[1]",
		},
		{
			name: "validation ko -- target name with illegal chars",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Targets = []string{"gene$$$"}
			},
			shouldFail: true,
			field:      "samples.targets[0]",
		},
		{
			name: "validation ko -- group name too long",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Groups = []string{strings.Repeat("a", 101)}
			},
			shouldFail: true,
			field:      "samples.groups[0]",
		},
		{
			name: "validation ko -- negative repeat",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Repeat = -1
			},
			shouldFail: true,
			field:      "samples.repeat",
		},
		{
			name: "validation ko -- repeat above the limit",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Repeat = 1001
			},
			shouldFail: true,
			field:      "samples.repeat",
		},
		{
			name: "validation ko -- repeat that overflows the reaction count",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Samples.Groups = []string{"ctrl", "treat"}
				cfg.Samples.Targets = []string{"geneA", "geneB"}
				cfg.Samples.Repeat = 1 << 62
			},
			shouldFail: true,
			field:      "samples.repeat",
		},
		{
			name: "validation ko -- negative mix",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Recipe.Mix = -0.5
			},
			shouldFail: true,
			field:      "recipe.mix",
		},
		{
			name: "validation ko -- negative cDNA",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Recipe.CDNA = -2
			},
			shouldFail: true,
			field:      "recipe.cDNA",
		},
		{
			name: "validation ko -- NaN water",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Recipe.Water = math.NaN()
			},
			shouldFail: true,
			field:      "recipe.water",
		},
		{
			name: "validation ko -- infinite primers",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Recipe.Primers = math.Inf(1)
			},
			shouldFail: true,
			field:      "recipe.primers",
		},
		{
			name: "validation ko -- zero primer concentration",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Primers.Forward.Concentration = 0
			},
			shouldFail: true,
			field:      "primers.forward.concentration",
		},
		{
			name: "validation ko -- empty reverse primer name",
			mutate: func(cfg *calculator.Configuration) {
				cfg.Primers.Reverse.Name = ""
			},
			shouldFail: true,
			field:      "primers.reverse.name",
		},
	}

	v := NewValidator()
	v.Register(NewConfigurationValidationRules()...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfiguration()
			tt.mutate(&cfg)

			err := v.ValidateConfiguration(cfg)
			if !tt.shouldFail {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected a validation error, got none")
			}
			var invalid *ErrInvalidConfiguration
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *ErrInvalidConfiguration, got %T", err)
			}
			found := false
			for _, f := range invalid.Fields {
				if strings.HasPrefix(f, tt.field+":") {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected a failure on %q, got %v", tt.field, invalid.Fields)
			}
		})
	}
}

func TestValidateConfiguration_ReportsEveryField(t *testing.T) {
	cfg := validConfiguration()
	cfg.Recipe.Mix = -1
	cfg.Recipe.Water = -1
	cfg.Samples.Targets = []string{"a", "a"}

	err := NewConfigurationValidator().ValidateConfiguration(cfg)

	var invalid *ErrInvalidConfiguration
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidConfiguration, got %v", err)
	}
	if len(invalid.Fields) != 3 {
		t.Errorf("expected 3 failed fields, got %v", invalid.Fields)
	}
	if !strings.HasPrefix(err.Error(), "invalid configuration: ") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidateConfiguration_ReactionLimit(t *testing.T) {
	names := func(prefix string, n int) []string {
		out := make([]string, 0, n)
		for i := range n {
			out = append(out, prefix+strconv.Itoa(i))
		}
		return out
	}

	tests := []struct {
		name       string
		targets    int
		groups     int
		repeat     int
		shouldFail bool
	}{
		{name: "at the limit", targets: 100, groups: 10, repeat: 100, shouldFail: false},
		{name: "above the limit", targets: 100, groups: 10, repeat: 101, shouldFail: true},
		{name: "many targets and a valid repeat", targets: 1000, groups: 200, repeat: 1, shouldFail: true},
		{name: "no groups", targets: 1000, groups: 0, repeat: 1000, shouldFail: false},
	}

	v := NewConfigurationValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfiguration()
			cfg.Samples.Targets = names("gene", tt.targets)
			cfg.Samples.Groups = names("group", tt.groups)
			cfg.Samples.Repeat = tt.repeat

			err := v.ValidateConfiguration(cfg)
			if !tt.shouldFail {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var invalid *ErrInvalidConfiguration
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *ErrInvalidConfiguration, got %v", err)
			}
			want := "samples.repeat: groups x repeat x targets must not exceed 100000 reactions"
			if len(invalid.Fields) != 1 || invalid.Fields[0] != want {
				t.Errorf("expected [%s], got %v", want, invalid.Fields)
			}
		})
	}
}

func TestNameValidator(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		shouldPass bool
	}{
		{"gene symbol", "GAPDH", true},
		{"with hyphen", "IL-6", true},
		{"with space", "18S rRNA", true},
		{"with dot and plus", "Actb.2+", true},
		{"with underscore", "ctrl_24h", true},
		{"empty", "", false},
		{"leading space", " GAPDH", false},
		{"leading hyphen", "-GAPDH", false},
		{"slash", "a/b", false},
		{"unicode", "géne", false},
	}

	v := NewConfigurationValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testStruct := struct {
				Name string `validate:"qpcr_name"`
			}{
				Name: tt.value,
			}

			err := v.Struct(testStruct)
			if (err == nil) != tt.shouldPass {
				t.Errorf("nameValidator(%q): expected pass=%v, got pass=%v, error=%v",
					tt.value, tt.shouldPass, err == nil, err)
			}
		})
	}
}
