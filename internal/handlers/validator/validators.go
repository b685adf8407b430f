package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kubev2v/qpcr-planner/internal/calculator"
)

const (
	// maxVolume bounds every numeric input; anything beyond is treated as a typo or overflow.
	maxVolume = 1e12
	// maxReactions bounds groups x repeat x targets, well beyond a stack of 384-well plates.
	maxReactions = 100000
)

type ValidationRule struct {
	Rule func(v *validator.Validate)
}

// Validator is a wrapper around the actual validator
// It sets up the validator and extract the rule error message from the underlying error
type Validator struct {
	validator *validator.Validate
	rules     []ValidationRule
}

func NewValidator() *Validator {
	v := validator.New()
	// report document field names ("cDNA", "targets") instead of Go names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validator: v}
}

// NewConfigurationValidator returns a Validator with the configuration rules registered.
func NewConfigurationValidator() *Validator {
	v := NewValidator()
	v.Register(NewConfigurationValidationRules()...)
	return v
}

func (v *Validator) Register(rules ...ValidationRule) {
	for _, validationRule := range rules {
		validationRule.Rule(v.validator)
	}
	v.rules = rules
}

func (v *Validator) Struct(s any) error {
	return v.validator.Struct(s)
}

// Validate runs the struct tags of s and reports every failed field.
func (v *Validator) Validate(s any) error {
	if err := v.Struct(s); err != nil {
		return fromValidationErrors(err)
	}
	return nil
}

// ValidateConfiguration applies the strict rules to cfg.
// It returns nil or an *ErrInvalidConfiguration; the calculator itself accepts any input.
func (v *Validator) ValidateConfiguration(cfg calculator.Configuration) error {
	return v.Validate(newConfigurationForm(cfg))
}

type configurationForm struct {
	Samples samplesForm `json:"samples"`
	Recipe  recipeForm  `json:"recipe"`
	Primers primersForm `json:"primers"`
}

type samplesForm struct {
	Targets []string `json:"targets" validate:"unique,dive,max=100,qpcr_name"`
	Repeat  int      `json:"repeat" validate:"gte=0,max=1000"`
	Groups  []string `json:"groups" validate:"unique,dive,max=100,qpcr_name"`
}

type recipeForm struct {
	Mix     float64 `json:"mix" validate:"finite,gte=0"`
	Primers float64 `json:"primers" validate:"finite,gte=0"`
	CDNA    float64 `json:"cDNA" validate:"finite,gte=0"`
	Water   float64 `json:"water" validate:"finite,gte=0"`
}

type primersForm struct {
	Forward primerForm `json:"forward"`
	Reverse primerForm `json:"reverse"`
}

type primerForm struct {
	Name          string  `json:"name" validate:"max=100,qpcr_name"`
	Concentration float64 `json:"concentration" validate:"finite,gt=0"`
}

func newConfigurationForm(cfg calculator.Configuration) configurationForm {
	return configurationForm{
		Samples: samplesForm{
			Targets: cfg.Samples.Targets,
			Repeat:  cfg.Samples.Repeat,
			Groups:  cfg.Samples.Groups,
		},
		Recipe: recipeForm{
			Mix:     cfg.Recipe.Mix,
			Primers: cfg.Recipe.Primers,
			CDNA:    cfg.Recipe.CDNA,
			Water:   cfg.Recipe.Water,
		},
		Primers: primersForm{
			Forward: primerForm{Name: cfg.Primers.Forward.Name, Concentration: cfg.Primers.Forward.Concentration},
			Reverse: primerForm{Name: cfg.Primers.Reverse.Name, Concentration: cfg.Primers.Reverse.Concentration},
		},
	}
}
