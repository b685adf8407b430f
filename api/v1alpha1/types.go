// Package v1alpha1 holds the wire types of the qPCR planner.
//
// The JSON field names follow the documents produced and consumed by the desktop
// client, so configuration files written for it can be fed to the CLI and the API as-is.
package v1alpha1

// Primer is a primer stock. Concentration is expressed in µM.
type Primer struct {
	Name          string  `json:"name"`
	Concentration float64 `json:"concentration"`
}

// PrimersConfig is the forward/reverse primer pair.
type PrimersConfig struct {
	Forward Primer `json:"forward"`
	Reverse Primer `json:"reverse"`
}

// Recipe holds the per-reaction volumes in µL.
type Recipe struct {
	Mix     float64 `json:"mix"`
	Primers float64 `json:"primers"`
	CDNA    float64 `json:"cDNA"`
	Water   float64 `json:"water"`
}

// Samples is the experimental design.
type Samples struct {
	Targets []string `json:"targets"`
	Repeat  int      `json:"repeat"`
	Groups  []string `json:"groups"`
}

// QPCRConfig is the configuration document.
type QPCRConfig struct {
	Samples Samples       `json:"samples"`
	Recipe  Recipe        `json:"recipe"`
	Primers PrimersConfig `json:"primers"`
}

// WorkingSolution is the per-target breakdown.
type WorkingSolution struct {
	Mix           float64 `json:"mix"`
	ForwardPrimer float64 `json:"forwardPrimer"`
	ReversePrimer float64 `json:"reversePrimer"`
	Water         float64 `json:"water"`
	TotalVolume   float64 `json:"totalVolume"`
}

// MasterMix is the breakdown for every reaction of the experiment.
type MasterMix struct {
	Mix           float64 `json:"mix"`
	ForwardPrimer float64 `json:"forwardPrimer"`
	ReversePrimer float64 `json:"reversePrimer"`
	Water         float64 `json:"water"`
	TotalVolume   float64 `json:"totalVolume"`
}

// CalculationResult is the result document.
type CalculationResult struct {
	TotalReactions   int                        `json:"totalReactions"`
	WorkingSolutions map[string]WorkingSolution `json:"workingSolutions"`
	MasterMix        MasterMix                  `json:"masterMix"`
	TotalCDNAVolume  float64                    `json:"totalcDNAVolume"`
}

// Greeting is returned by the greeting endpoint.
type Greeting struct {
	Message string `json:"message"`
}

// Info describes the running build.
type Info struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}

// Error is the body of every non 2xx response.
type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}
