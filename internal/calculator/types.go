package calculator

// Primer is a forward or reverse primer stock.
// Concentration (µM) is carried through to reports but does not affect the volumes.
type Primer struct {
	Name          string
	Concentration float64
}

// Primers holds the primer pair used by every target.
type Primers struct {
	Forward Primer
	Reverse Primer
}

// Recipe holds the volumes (µL) that go into a single reaction.
// Primers is the volume of one primer; it is applied to both forward and reverse.
type Recipe struct {
	Mix     float64
	Primers float64
	CDNA    float64
	Water   float64
}

// SampleDesign describes the plate: every target is run for every group, Repeat times.
type SampleDesign struct {
	Targets []string
	Repeat  int
	Groups  []string
}

// Configuration is the input of a calculation.
type Configuration struct {
	Samples SampleDesign
	Recipe  Recipe
	Primers Primers
}

// WorkingSolution is the reagent breakdown prepared for one target.
type WorkingSolution struct {
	Mix           float64
	ForwardPrimer float64
	ReversePrimer float64
	Water         float64
	TotalVolume   float64
}

// MasterMix is the reagent breakdown for all reactions of the experiment, cDNA excluded.
type MasterMix struct {
	Mix           float64
	ForwardPrimer float64
	ReversePrimer float64
	Water         float64
	TotalVolume   float64
}

// CalculationResult is the output of Calculate. It shares no memory with the input.
type CalculationResult struct {
	TotalReactions   int
	WorkingSolutions map[string]WorkingSolution
	MasterMix        MasterMix
	TotalCDNAVolume  float64
}

// ReactionsPerTarget returns |groups| x repeat.
func (s SampleDesign) ReactionsPerTarget() int {
	return len(s.Groups) * s.Repeat
}

// TotalReactions returns the number of reactions across every target.
func (s SampleDesign) TotalReactions() int {
	return s.ReactionsPerTarget() * len(s.Targets)
}

// PerReactionVolume is the master mix volume of a single reaction: mix, both primers and water.
func (r Recipe) PerReactionVolume() float64 {
	return r.Mix + r.Primers*2 + r.Water
}
