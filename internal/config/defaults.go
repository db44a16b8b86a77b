package config

import "github.com/ziadkadry99/iodocs/internal/route"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".iodocs.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Variant: VariantSite,
		Pages: PagesConfig{
			Index:       "pages.yml",
			PartialsDir: "partials",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		HighlightStyle:  "github",
		FeedbackAddress: route.DefaultFeedbackAddress,
	}
}

// variantOptions returns the resolver preset for v.
func variantOptions(v Variant) route.Options {
	if v == VariantDocumentation {
		return route.DocumentationOptions()
	}
	return route.SiteOptions()
}
