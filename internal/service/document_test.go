package service_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/qpcr-planner/internal/service"
)

const yamlDocument = `
samples:
  targets: [geneA, geneB]
  repeat: 3
  groups: [ctrl, treat]
recipe:
  mix: 10
  primers: 1
  cDNA: 2
  water: 5
primers:
  forward: {name: fwd, concentration: 10}
  reverse: {name: rev, concentration: 12.5}
`

const jsonDocument = `{
  "samples": {"targets": ["geneA"], "repeat": 3, "groups": ["ctrl", "treat"]},
  "recipe": {"mix": 10, "primers": 1, "cDNA": 2, "water": 5},
  "primers": {"forward": {"name": "fwd", "concentration": 10}, "reverse": {"name": "rev", "concentration": 10}}
}`

var _ = Describe("configuration documents", func() {
	Context("ParseConfiguration", func() {
		It("parses yaml", func() {
			cfg, err := service.ParseConfiguration([]byte(yamlDocument))
			Expect(err).To(BeNil())

			Expect(cfg.Samples.Targets).To(Equal([]string{"geneA", "geneB"}))
			Expect(cfg.Samples.Repeat).To(Equal(3))
			Expect(cfg.Recipe.CDNA).To(Equal(2.0))
			Expect(cfg.Primers.Reverse.Concentration).To(Equal(12.5))
		})

		It("parses json", func() {
			cfg, err := service.ParseConfiguration([]byte(jsonDocument))
			Expect(err).To(BeNil())

			Expect(cfg.Samples.Groups).To(Equal([]string{"ctrl", "treat"}))
			Expect(cfg.Primers.Forward.Name).To(Equal("fwd"))
		})

		It("rejects unknown fields", func() {
			_, err := service.ParseConfiguration([]byte("samples:\n  targetz: [a]\n"))

			var invalid *service.ErrInvalidDocument
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("rejects an empty document", func() {
			_, err := service.ParseConfiguration([]byte("  \n"))

			var invalid *service.ErrInvalidDocument
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(service.IsBadRequest(err)).To(BeTrue())
		})

		It("rejects mistyped values and keeps the decode error", func() {
			_, err := service.ParseConfiguration([]byte(`{"samples": {"repeat": "three"}}`))

			var invalid *service.ErrInvalidDocument
			Expect(errors.As(err, &invalid)).To(BeTrue())
			var typeErr *json.UnmarshalTypeError
			Expect(errors.As(err, &typeErr)).To(BeTrue())
			Expect(typeErr.Field).To(Equal("samples.repeat"))
		})

		It("rejects a document without a recipe", func() {
			_, err := service.ParseConfiguration([]byte(`{
  "samples": {"targets": ["geneA"], "repeat": 3, "groups": ["ctrl"]},
  "primers": {"forward": {"name": "fwd", "concentration": 10}, "reverse": {"name": "rev", "concentration": 10}}
}`))

			var invalid *service.ErrInvalidDocument
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("recipe: is required"))
			Expect(service.IsBadRequest(err)).To(BeTrue())
		})

		It("rejects a document without samples.repeat", func() {
			_, err := service.ParseConfiguration([]byte(strings.Replace(yamlDocument, "  repeat: 3\n", "", 1)))

			var invalid *service.ErrInvalidDocument
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("samples.repeat: is required"))
		})

		It("rejects a document without a reverse primer concentration", func() {
			_, err := service.ParseConfiguration([]byte(strings.Replace(yamlDocument,
				"reverse: {name: rev, concentration: 12.5}", "reverse: {name: rev}", 1)))

			var invalid *service.ErrInvalidDocument
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("primers.reverse.concentration: is required"))
		})

		It("lists every missing field", func() {
			_, err := service.ParseConfiguration([]byte(`{"samples": {"targets": []}}`))

			Expect(err).ToNot(BeNil())
			for _, field := range []string{"samples.repeat", "samples.groups", "recipe", "primers"} {
				Expect(err.Error()).To(ContainSubstring(field + ": is required"))
			}
			Expect(err.Error()).ToNot(ContainSubstring("samples.targets"))
		})

		It("accepts explicit zero values", func() {
			cfg, err := service.ParseConfiguration([]byte(`{
  "samples": {"targets": [], "repeat": 0, "groups": []},
  "recipe": {"mix": 0, "primers": 0, "cDNA": 0, "water": 0},
  "primers": {"forward": {"name": "", "concentration": 0}, "reverse": {"name": "", "concentration": 0}}
}`))
			Expect(err).To(BeNil())
			Expect(cfg.Samples.Repeat).To(Equal(0))
			Expect(cfg.Samples.Targets).To(BeEmpty())
		})
	})

	Context("LoadConfiguration", func() {
		It("reads a file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "plan.yaml")
			Expect(os.WriteFile(path, []byte(yamlDocument), 0o600)).To(Succeed())

			cfg, err := service.LoadConfiguration(path, nil)
			Expect(err).To(BeNil())
			Expect(cfg.Samples.Targets).To(HaveLen(2))
		})

		It("reads stdin", func() {
			cfg, err := service.LoadConfiguration(service.StdinPath, strings.NewReader(jsonDocument))
			Expect(err).To(BeNil())
			Expect(cfg.Samples.Targets).To(Equal([]string{"geneA"}))
		})

		It("reports a missing file", func() {
			_, err := service.LoadConfiguration(filepath.Join(GinkgoT().TempDir(), "missing.yaml"), nil)
			Expect(err).ToNot(BeNil())
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
			Expect(service.IsBadRequest(err)).To(BeFalse())
		})
	})
})
