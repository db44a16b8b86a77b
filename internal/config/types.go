package config

// Variant selects a preset of resolver behaviour.
type Variant string

const (
	// VariantSite is the bundled user guide: opens on the overview and
	// filters only the file, core and performance sections.
	VariantSite Variant = "site"
	// VariantDocumentation is the API reference of the project web site:
	// opens on the API section and always filters by section.
	VariantDocumentation Variant = "documentation"
)

// AllSections is the filtered_sections entry that filters every section.
const AllSections = "all"

// Config is the top-level iodocs configuration, corresponding to .iodocs.yml.
type Config struct {
	Variant Variant       `yaml:"variant" koanf:"variant"`
	Routing RoutingConfig `yaml:"routing" koanf:"routing"`
	Pages   PagesConfig   `yaml:"pages" koanf:"pages"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	// HighlightStyle is the chroma style for code in partials.
	HighlightStyle string `yaml:"highlight_style" koanf:"highlight_style"`
	// FeedbackAddress receives the feedback mailto link.
	FeedbackAddress string `yaml:"feedback_address" koanf:"feedback_address"`
}

// RoutingConfig overrides the variant's resolver settings. Empty values
// keep the variant default.
type RoutingConfig struct {
	DefaultFragment                   string   `yaml:"default_fragment,omitempty" koanf:"default_fragment"`
	FilteredSections                  []string `yaml:"filtered_sections,omitempty" koanf:"filtered_sections"`
	PartialActiveRequiresSectionMatch *bool    `yaml:"partial_active_requires_section_match,omitempty" koanf:"partial_active_requires_section_match"`
}

// PagesConfig locates the page index and the partial documents.
type PagesConfig struct {
	// Index is a YAML or JSON page index file.
	Index string `yaml:"index" koanf:"index"`
	// Database, when set, is a SQLite database populated by `iodocs pages import`.
	// It takes precedence over Index when it holds pages.
	Database string `yaml:"database" koanf:"database"`
	// PartialsDir holds <section>/<id>.html or .md partials.
	PartialsDir string `yaml:"partials_dir" koanf:"partials_dir"`
	// Sanitize strips unsafe markup from partials before serving them.
	Sanitize bool `yaml:"sanitize" koanf:"sanitize"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
