package service

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/handlers/validator"
	"github.com/kubev2v/qpcr-planner/internal/service/mappers"
)

// StdinPath selects standard input in LoadConfiguration.
const StdinPath = "-"

// documentValidator only checks that every field is present; values are checked by the planner.
var documentValidator = validator.NewValidator()

// configurationDocument mirrors api.QPCRConfig with pointers so an omitted field
// can be told apart from an explicit zero.
type configurationDocument struct {
	Samples *samplesDocument `json:"samples" validate:"required"`
	Recipe  *recipeDocument  `json:"recipe" validate:"required"`
	Primers *primersDocument `json:"primers" validate:"required"`
}

type samplesDocument struct {
	Targets *[]string `json:"targets" validate:"required"`
	Repeat  *int      `json:"repeat" validate:"required"`
	Groups  *[]string `json:"groups" validate:"required"`
}

type recipeDocument struct {
	Mix     *float64 `json:"mix" validate:"required"`
	Primers *float64 `json:"primers" validate:"required"`
	CDNA    *float64 `json:"cDNA" validate:"required"`
	Water   *float64 `json:"water" validate:"required"`
}

type primersDocument struct {
	Forward *primerDocument `json:"forward" validate:"required"`
	Reverse *primerDocument `json:"reverse" validate:"required"`
}

type primerDocument struct {
	Name          *string  `json:"name" validate:"required"`
	Concentration *float64 `json:"concentration" validate:"required"`
}

// toAPI must only be called on a document that passed documentValidator.
func (d configurationDocument) toAPI() api.QPCRConfig {
	return api.QPCRConfig{
		Samples: api.Samples{
			Targets: *d.Samples.Targets,
			Repeat:  *d.Samples.Repeat,
			Groups:  *d.Samples.Groups,
		},
		Recipe: api.Recipe{
			Mix:     *d.Recipe.Mix,
			Primers: *d.Recipe.Primers,
			CDNA:    *d.Recipe.CDNA,
			Water:   *d.Recipe.Water,
		},
		Primers: api.PrimersConfig{
			Forward: d.Primers.Forward.toAPI(),
			Reverse: d.Primers.Reverse.toAPI(),
		},
	}
}

func (p *primerDocument) toAPI() api.Primer {
	return api.Primer{Name: *p.Name, Concentration: *p.Concentration}
}

// ParseConfiguration decodes a YAML or JSON configuration document.
// Unknown fields are rejected and every field must be present.
func ParseConfiguration(content []byte) (calculator.Configuration, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return calculator.Configuration{}, NewErrInvalidDocument(errors.New("empty configuration document"))
	}

	var doc configurationDocument
	if err := yaml.UnmarshalStrict(content, &doc); err != nil {
		return calculator.Configuration{}, NewErrInvalidDocument(errors.Wrap(err, "failed to decode configuration document"))
	}

	if err := documentValidator.Validate(doc); err != nil {
		var missing *validator.ErrInvalidConfiguration
		if errors.As(err, &missing) {
			return calculator.Configuration{}, NewErrInvalidDocument(
				errors.Errorf("incomplete configuration document: %s", strings.Join(missing.Fields, "; ")))
		}
		return calculator.Configuration{}, errors.Wrap(err, "failed to check configuration document")
	}

	return mappers.ConfigurationFromAPI(doc.toAPI()), nil
}

// LoadConfiguration reads and decodes the document at path, or stdin when path is "-".
func LoadConfiguration(path string, stdin io.Reader) (calculator.Configuration, error) {
	var (
		content []byte
		err     error
	)
	if path == StdinPath {
		content, err = io.ReadAll(stdin)
		if err != nil {
			return calculator.Configuration{}, errors.Wrap(err, "failed to read configuration from stdin")
		}
	} else {
		content, err = os.ReadFile(path)
		if err != nil {
			return calculator.Configuration{}, errors.Wrapf(err, "failed to read configuration file %q", path)
		}
	}

	return ParseConfiguration(content)
}
