// Package compliance turns the rule tables in configuration into rule sets the
// ledger aggregator can evaluate.
package compliance

import (
	"bytes"
	"errors"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/ledger"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:embed default_rules.yaml
var defaultRules []byte

// RuleConfig is one rule as written in the configuration file.
type RuleConfig struct {
	Name           string `mapstructure:"name" validate:"required"`
	Check          string `mapstructure:"check" validate:"required,known_check"`
	Points         int    `mapstructure:"points" validate:"gt=0,lte=100"`
	FailureMessage string `mapstructure:"failure_message" validate:"required"`
	Params         Params `mapstructure:"params"`
}

// SchemeConfig is the rule table of one compliance scheme.
type SchemeConfig struct {
	Rules []RuleConfig `mapstructure:"rules" validate:"required,min=1,dive"`
}

// FileConfig is the root of the rules file.
type FileConfig struct {
	Schemes map[string]SchemeConfig `mapstructure:"schemes" validate:"required,min=1,dive"`
}

// Catalog holds the compiled rule set of every configured scheme.
type Catalog struct {
	sets map[string]ledger.RuleSet
}

// LoadCatalog reads the rules file at path, or the embedded defaults when path
// is empty, and compiles it against registry.
func LoadCatalog(path string, registry *Registry) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read compliance rules from %s: %w", path, err)
		}
	} else if err := v.ReadConfig(bytes.NewReader(defaultRules)); err != nil {
		return nil, fmt.Errorf("failed to read embedded compliance rules: %w", err)
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode compliance rules: %w", err)
	}
	return Compile(cfg, registry)
}

// DefaultCatalog compiles the embedded gaap, sox, bir and ifrs rule tables.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog("", NewRegistry())
}

// Compile validates cfg and resolves every rule's check.
func Compile(cfg FileConfig, registry *Registry) (*Catalog, error) {
	validate := validator.New()
	if err := validate.RegisterValidation("known_check", func(fl validator.FieldLevel) bool {
		_, ok := registry.Lookup(fl.Field().String())
		return ok
	}); err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "known_check" {
					return nil, fmt.Errorf("invalid compliance rules: %s names unknown check '%v', known checks are %s: %w",
						fe.Namespace(), fe.Value(), strings.Join(registry.Names(), ", "), err)
				}
			}
		}
		return nil, fmt.Errorf("invalid compliance rules: %w", err)
	}

	sets := make(map[string]ledger.RuleSet, len(cfg.Schemes))
	for name, scheme := range cfg.Schemes {
		key := normalizeScheme(name)
		total := 0
		set := ledger.RuleSet{Name: key, Rules: make([]ledger.Rule, 0, len(scheme.Rules))}
		for _, rc := range scheme.Rules {
			total += rc.Points
			check, _ := registry.Lookup(rc.Check)
			pred, err := check(rc.Params)
			if err != nil {
				return nil, fmt.Errorf("scheme %s rule %s: %w", key, rc.Name, err)
			}
			set.Rules = append(set.Rules, ledger.Rule{
				Name:           rc.Name,
				Check:          rc.Check,
				Points:         rc.Points,
				FailureMessage: rc.FailureMessage,
				Predicate:      pred,
				NeedsPosition:  registry.NeedsPosition(rc.Check),
			})
		}
		if total > ledger.MaxComplianceScore {
			return nil, fmt.Errorf("scheme %s awards %d points, more than %d", key, total, ledger.MaxComplianceScore)
		}
		sets[key] = set
	}
	return &Catalog{sets: sets}, nil
}

// RuleSet returns the rule set for scheme. Unknown schemes are an input error
// matching apperrors.ErrUnknownRuleSet.
func (c *Catalog) RuleSet(scheme string) (ledger.RuleSet, error) {
	set, ok := c.sets[normalizeScheme(scheme)]
	if !ok {
		return ledger.RuleSet{}, &apperrors.InputError{
			Field:  "scheme",
			Reason: fmt.Sprintf("no rule set named '%s'", scheme),
			Err:    apperrors.ErrUnknownRuleSet,
		}
	}
	return set, nil
}

// Schemes lists the configured scheme names.
func (c *Catalog) Schemes() []string {
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeScheme(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
