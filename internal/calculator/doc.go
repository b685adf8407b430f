// Package calculator computes qPCR reagent volume plans.
//
// A Configuration describes one experiment: the per-reaction Recipe, the SampleDesign
// (targets, groups and technical replicates) and the forward/reverse Primers. Calculate
// scales the recipe to the number of reactions needed per target (working solutions) and
// to the grand total of reactions (master mix and cDNA).
//
// The package has no state and performs no I/O. Input checking is left to the callers
// (see the validator package); Calculate is defined for every input, including empty
// designs and negative volumes, which propagate arithmetically.
package calculator
