package calculator

// Calculate derives the working solutions, the master mix and the cDNA volume for cfg.
//
// Working solutions are scaled by the reactions of one target and keyed by target name;
// a repeated name overwrites the earlier entry. The master mix is scaled directly by the
// total reaction count rather than summed from the working solutions.
func Calculate(cfg Configuration) CalculationResult {
	recipe := cfg.Recipe

	reactionsPerTarget := cfg.Samples.ReactionsPerTarget()
	totalReactions := cfg.Samples.TotalReactions()

	perTarget := float64(reactionsPerTarget)
	workingSolutions := make(map[string]WorkingSolution, len(cfg.Samples.Targets))
	for _, target := range cfg.Samples.Targets {
		mix := recipe.Mix * perTarget
		forward := recipe.Primers * perTarget
		reverse := recipe.Primers * perTarget
		water := recipe.Water * perTarget

		workingSolutions[target] = WorkingSolution{
			Mix:           mix,
			ForwardPrimer: forward,
			ReversePrimer: reverse,
			Water:         water,
			TotalVolume:   mix + forward + reverse + water,
		}
	}

	total := float64(totalReactions)
	masterMix := MasterMix{
		Mix:           recipe.Mix * total,
		ForwardPrimer: recipe.Primers * total,
		ReversePrimer: recipe.Primers * total,
		Water:         recipe.Water * total,
		TotalVolume:   recipe.PerReactionVolume() * total,
	}

	return CalculationResult{
		TotalReactions:   totalReactions,
		WorkingSolutions: workingSolutions,
		MasterMix:        masterMix,
		TotalCDNAVolume:  recipe.CDNA * total,
	}
}

// OrderedTargets returns the target names in configuration order with repeated names
// removed, which is the order of the entries in CalculationResult.WorkingSolutions.
func OrderedTargets(s SampleDesign) []string {
	seen := make(map[string]struct{}, len(s.Targets))
	ordered := make([]string, 0, len(s.Targets))
	for _, t := range s.Targets {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		ordered = append(ordered, t)
	}
	return ordered
}
