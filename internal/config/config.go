package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/iodocs/internal/route"
)

// envPrefix namespaces environment overrides.
const envPrefix = "IODOCS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (IODOCS_*). Nested keys are separated by
// a double underscore: IODOCS_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps IODOCS_PAGES__PARTIALS_DIR to pages.partials_dir.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validVariants is the set of recognized variant values.
var validVariants = map[Variant]bool{
	VariantSite:          true,
	VariantDocumentation: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validVariants[c.Variant] {
		return fmt.Errorf("invalid variant %q: must be one of site, documentation", c.Variant)
	}

	if f := c.Routing.DefaultFragment; f != "" && !strings.HasPrefix(f, route.Marker) {
		return fmt.Errorf("routing.default_fragment %q must start with %q", f, route.Marker)
	}

	for _, s := range c.Routing.FilteredSections {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("routing.filtered_sections must not contain empty entries")
		}
	}

	if c.Pages.Index == "" && c.Pages.Database == "" {
		return fmt.Errorf("pages.index or pages.database is required")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.FeedbackAddress == "" {
		return fmt.Errorf("feedback_address is required")
	}

	return nil
}

// RouteOptions builds the resolver options: the variant preset with the
// routing overrides applied.
func (c *Config) RouteOptions() route.Options {
	opts := variantOptions(c.Variant)

	if c.Routing.DefaultFragment != "" {
		opts.DefaultFragment = c.Routing.DefaultFragment
	}
	if len(c.Routing.FilteredSections) > 0 {
		opts.FilteredSections = sectionFilter(c.Routing.FilteredSections)
	}
	if c.Routing.PartialActiveRequiresSectionMatch != nil {
		opts.PartialActiveRequiresSectionMatch = *c.Routing.PartialActiveRequiresSectionMatch
	}
	if c.FeedbackAddress != "" {
		opts.FeedbackAddress = c.FeedbackAddress
	}
	return opts
}

func sectionFilter(ids []string) route.SectionFilter {
	for _, id := range ids {
		if strings.EqualFold(strings.TrimSpace(id), AllSections) {
			return route.FilterAll()
		}
	}
	trimmed := make([]string, 0, len(ids))
	for _, id := range ids {
		trimmed = append(trimmed, strings.TrimSpace(id))
	}
	return route.FilterSections(trimmed...)
}
