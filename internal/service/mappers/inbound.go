package mappers

import (
	"slices"

	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
	"github.com/kubev2v/qpcr-planner/internal/calculator"
)

// ConfigurationFromAPI converts the configuration document into the calculator input.
// Slices are copied so the configuration does not alias the decoded document.
func ConfigurationFromAPI(cfg api.QPCRConfig) calculator.Configuration {
	return calculator.Configuration{
		Samples: calculator.SampleDesign{
			Targets: cloneOrEmpty(cfg.Samples.Targets),
			Repeat:  cfg.Samples.Repeat,
			Groups:  cloneOrEmpty(cfg.Samples.Groups),
		},
		Recipe: calculator.Recipe{
			Mix:     cfg.Recipe.Mix,
			Primers: cfg.Recipe.Primers,
			CDNA:    cfg.Recipe.CDNA,
			Water:   cfg.Recipe.Water,
		},
		Primers: calculator.Primers{
			Forward: primerFromAPI(cfg.Primers.Forward),
			Reverse: primerFromAPI(cfg.Primers.Reverse),
		},
	}
}

func primerFromAPI(p api.Primer) calculator.Primer {
	return calculator.Primer{Name: p.Name, Concentration: p.Concentration}
}

func cloneOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
