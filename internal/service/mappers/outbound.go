package mappers

import (
	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
	"github.com/kubev2v/qpcr-planner/internal/calculator"
)

// CalculationResultToAPI converts a calculation result to the result document.
// The working solutions map is never nil so it serializes as {} rather than null.
func CalculationResultToAPI(res calculator.CalculationResult) api.CalculationResult {
	solutions := make(map[string]api.WorkingSolution, len(res.WorkingSolutions))
	for target, ws := range res.WorkingSolutions {
		solutions[target] = api.WorkingSolution{
			Mix:           ws.Mix,
			ForwardPrimer: ws.ForwardPrimer,
			ReversePrimer: ws.ReversePrimer,
			Water:         ws.Water,
			TotalVolume:   ws.TotalVolume,
		}
	}

	return api.CalculationResult{
		TotalReactions:   res.TotalReactions,
		WorkingSolutions: solutions,
		MasterMix: api.MasterMix{
			Mix:           res.MasterMix.Mix,
			ForwardPrimer: res.MasterMix.ForwardPrimer,
			ReversePrimer: res.MasterMix.ReversePrimer,
			Water:         res.MasterMix.Water,
			TotalVolume:   res.MasterMix.TotalVolume,
		},
		TotalCDNAVolume: res.TotalCDNAVolume,
	}
}

// ConfigurationToAPI converts a calculator configuration back to the document shape.
func ConfigurationToAPI(cfg calculator.Configuration) api.QPCRConfig {
	return api.QPCRConfig{
		Samples: api.Samples{
			Targets: cloneOrEmpty(cfg.Samples.Targets),
			Repeat:  cfg.Samples.Repeat,
			Groups:  cloneOrEmpty(cfg.Samples.Groups),
		},
		Recipe: api.Recipe{
			Mix:     cfg.Recipe.Mix,
			Primers: cfg.Recipe.Primers,
			CDNA:    cfg.Recipe.CDNA,
			Water:   cfg.Recipe.Water,
		},
		Primers: api.PrimersConfig{
			Forward: api.Primer{Name: cfg.Primers.Forward.Name, Concentration: cfg.Primers.Forward.Concentration},
			Reverse: api.Primer{Name: cfg.Primers.Reverse.Name, Concentration: cfg.Primers.Reverse.Concentration},
		},
	}
}
