package scenarios

import (
	"embed"
	"log/slog"
	"path"
	"sort"

	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

type scenarioTemplate struct {
	Name            string                `yaml:"name"`
	Prior           float64               `yaml:"prior"`
	Evidence        []models.EvidenceItem `yaml:"evidence"`
	CounterEvidence []models.EvidenceItem `yaml:"counter_evidence"`
}

func readTemplates() ([]scenarioTemplate, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, errors.Wrap(err, "read template dir")
	}
	templates := make([]scenarioTemplate, 0, len(entries))
	for _, e := range entries {
		var data []byte
		if data, err = templateFS.ReadFile(path.Join("templates", e.Name())); err != nil {
			return nil, errors.Wrap(err, "read template", slog.String("file", e.Name()))
		}
		var t scenarioTemplate
		if err = yaml.Unmarshal(data, &t); err != nil {
			return nil, errors.Wrap(err, "parse template", slog.String("file", e.Name()))
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// ListTemplates returns the names of the built-in scenario templates, sorted.
func ListTemplates() []string {
	templates, err := readTemplates()
	if err != nil {
		// The templates are embedded at compile time and covered by tests.
		panic(err)
	}
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// LoadTemplate returns a fresh copy of the built-in scenario with the given name.
func LoadTemplate(name string) (models.Scenario, error) {
	templates, err := readTemplates()
	if err != nil {
		return models.Scenario{}, err
	}
	for _, t := range templates {
		if t.Name == name {
			return models.NewScenario(t.Prior, t.Evidence, t.CounterEvidence), nil
		}
	}
	return models.Scenario{}, errors.Wrap(ErrTemplateNotFound, "load template", slog.String("name", name))
}
