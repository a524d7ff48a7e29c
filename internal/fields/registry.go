package fields

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/meberl/docsort/internal/common"
	"github.com/meberl/docsort/internal/dates"
)

// ExtractorDefault is the registry name of the generic rules; supplier
// table entries with an empty extractor column resolve to it.
const ExtractorDefault = "Default"

// Deps is everything a rules constructor needs.
type Deps struct {
	Config   *common.SupplierConfig
	Resolver *Resolver
	Dates    *dates.Normalizer
	Logger   *slog.Logger
}

// Factory builds one supplier's rules.
type Factory func(d Deps) Rules

// Registry maps extractor names from the supplier table to constructors.
// It replaces the old string-built class lookup: names are validated once
// at configuration load, so an unknown extractor fails fast instead of at
// per-document dispatch time.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(ExtractorDefault, func(d Deps) Rules { return NewDefaultRules(d) })
	r.Register("Telekom", func(d Deps) Rules { return NewTelekomRules(d) })
	r.Register("Slack", func(d Deps) Rules { return NewSlackRules(d) })
	r.Register("Finanzamt", func(d Deps) Rules { return NewFinanzamtRules(d) })
	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Validate checks every extractor named by the supplier table against the
// registered factories. Called at startup; a failure here is a
// configuration fault.
func (r *Registry) Validate(table common.SupplierTable) error {
	var unknown []string
	for _, e := range table {
		if e.Extractor == "" {
			continue
		}
		if _, ok := r.factories[e.Extractor]; !ok {
			unknown = append(unknown, fmt.Sprintf("%s (keyword %q)", e.Extractor, e.Keyword))
		}
	}
	if len(unknown) > 0 {
		return common.NewAppError("CONFIG_ERROR",
			"unknown extractor(s) in supplier table: "+strings.Join(unknown, ", "), common.ErrValidation)
	}
	return nil
}

// New builds the named rules. An unregistered name degrades to the default
// rules with a log line; Validate should have caught it already.
func (r *Registry) New(name string, d Deps) Rules {
	if name == "" {
		name = ExtractorDefault
	}
	f, ok := r.factories[name]
	if !ok {
		logger := d.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("extractor not registered, using default", "extractor", name)
		f = r.factories[ExtractorDefault]
	}
	return f(d)
}
