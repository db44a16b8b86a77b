package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// indexCandidates are page index file names looked for in the working directory.
var indexCandidates = []string{"pages.yml", "pages.yaml", "pages.json", "io_pages.json"}

// detectIndex returns the first page index file present in dir.
func detectIndex(dir string) string {
	for _, name := range indexCandidates {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to iodocs! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()

	detected := detectIndex(".")
	if detected != "" {
		fmt.Printf("Detected page index: %s\n\n", detected)
		cfg.Pages.Index = detected
	}

	// 1. Variant.
	variantPrompt := promptui.Select{
		Label: "Select site variant",
		Items: []string{
			"site          — opens on !/overview, filters file/core/performance",
			"documentation — opens on !/api, filters every section",
		},
	}
	variantIdx, _, err := variantPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("variant selection: %w", err)
	}
	variants := []Variant{VariantSite, VariantDocumentation}
	cfg.Variant = variants[variantIdx]

	// 2. Page index.
	indexPrompt := promptui.Prompt{
		Label:   "Page index file (YAML or JSON)",
		Default: cfg.Pages.Index,
	}
	if cfg.Pages.Index, err = indexPrompt.Run(); err != nil {
		return nil, fmt.Errorf("page index: %w", err)
	}

	// 3. Partials directory.
	partialsPrompt := promptui.Prompt{
		Label:   "Directory holding <section>/<id>.html partials",
		Default: cfg.Pages.PartialsDir,
	}
	if cfg.Pages.PartialsDir, err = partialsPrompt.Run(); err != nil {
		return nil, fmt.Errorf("partials dir: %w", err)
	}

	// 4. Extra filtered sections.
	filteredPrompt := promptui.Prompt{
		Label:   "Filtered sections (comma-separated, \"all\", or blank for the variant default)",
		Default: "",
	}
	filtered, err := filteredPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("filtered sections: %w", err)
	}
	cfg.Routing.FilteredSections = splitAndTrim(filtered)

	// 5. Feedback address.
	feedbackPrompt := promptui.Prompt{
		Label:   "Feedback e-mail address",
		Default: cfg.FeedbackAddress,
		Validate: func(s string) error {
			if !strings.Contains(s, "@") {
				return fmt.Errorf("not an e-mail address")
			}
			return nil
		},
	}
	if cfg.FeedbackAddress, err = feedbackPrompt.Run(); err != nil {
		return nil, fmt.Errorf("feedback address: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
