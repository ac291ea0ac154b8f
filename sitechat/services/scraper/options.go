package scraper

import (
	"fmt"
	"os"
	"time"

	"sitechat/sitechat/config"

	"gopkg.in/yaml.v3"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options holds the extraction policy. Every bounded field of the resulting
// document is capped by one of the Max* limits.
type Options struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	MinBodyChars int           `yaml:"min_body_chars"`

	MaxTextChars        int `yaml:"max_text_chars"`
	MaxDescriptionChars int `yaml:"max_description_chars"`
	MaxHeadings         int `yaml:"max_headings"`
	MaxHeadingChars     int `yaml:"max_heading_chars"`
	MaxNavigation       int `yaml:"max_navigation"`
	MaxNavTextChars     int `yaml:"max_nav_text_chars"` // exclusive
	MaxImages           int `yaml:"max_images"`

	// ContentSelectors are tried in order; the first one whose match has
	// text becomes the main text container.
	ContentSelectors []string `yaml:"content_selectors"`
	// NoiseSelectors are removed from a copy of the page when no content
	// container matched.
	NoiseSelectors []string `yaml:"noise_selectors"`
	// NavigationSelectors mark link-like regions. Attribute matches are
	// scoped to container elements so body or main classes never qualify.
	NavigationSelectors []string `yaml:"navigation_selectors"`
}

func DefaultOptions() Options {
	return Options{
		Timeout:      15 * time.Second,
		UserAgent:    defaultUserAgent,
		MaxBodyBytes: 5 << 20,
		MinBodyChars: 100,

		MaxTextChars:        5000,
		MaxDescriptionChars: 200,
		MaxHeadings:         30,
		MaxHeadingChars:     200,
		MaxNavigation:       20,
		MaxNavTextChars:     50,
		MaxImages:           10,

		ContentSelectors: []string{
			"main",
			"article",
			"[role='main']",
			"div[class*='content'], section[class*='content'], div[id*='content'], section[id*='content']",
			"div[class*='main'], section[class*='main'], div[id*='main'], section[id*='main']",
			"div[class*='post'], div[class*='entry'], div[id*='post'], div[id*='entry']",
			"div[class*='article'], div[id*='article']",
		},
		NoiseSelectors: []string{
			"script", "style", "noscript", "template", "iframe", "svg",
			"nav", "header", "footer", "aside",
			"[role='navigation']", "[role='banner']", "[role='contentinfo']", "[role='complementary']",
			"[class*='sidebar']", "[id*='sidebar']",
		},
		NavigationSelectors: []string{
			"nav",
			"header",
			"div[role='navigation'], ul[role='navigation']",
			"div[class*='nav'], ul[class*='nav'], header[class*='nav']",
			"div[id*='nav'], ul[id*='nav']",
			"div[class*='menu'], ul[class*='menu']",
			"div[id*='menu'], ul[id*='menu']",
			"div[class*='header']",
		},
	}
}

// LoadOptions returns the default policy with the YAML file named by
// cfg.ExtractorConfig laid over it. Keys missing from the file keep their
// defaults. cfg.ExtractTimeout wins over both.
func LoadOptions(cfg config.Config) (Options, error) {
	opts := DefaultOptions()
	if cfg.ExtractorConfig != "" {
		data, err := os.ReadFile(cfg.ExtractorConfig)
		if err != nil {
			return opts, fmt.Errorf("read extractor config: %w", err)
		}
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return opts, fmt.Errorf("parse extractor config %s: %w", cfg.ExtractorConfig, err)
		}
	}
	if cfg.ExtractTimeout > 0 {
		opts.Timeout = cfg.ExtractTimeout
	}
	return opts.withDefaults(), nil
}

// withDefaults replaces zero or negative limits with the defaults.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	if o.UserAgent == "" {
		o.UserAgent = d.UserAgent
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = d.MaxBodyBytes
	}
	if o.MinBodyChars <= 0 {
		o.MinBodyChars = d.MinBodyChars
	}
	for _, lim := range []struct {
		v   *int
		def int
	}{
		{&o.MaxTextChars, d.MaxTextChars},
		{&o.MaxDescriptionChars, d.MaxDescriptionChars},
		{&o.MaxHeadings, d.MaxHeadings},
		{&o.MaxHeadingChars, d.MaxHeadingChars},
		{&o.MaxNavigation, d.MaxNavigation},
		{&o.MaxNavTextChars, d.MaxNavTextChars},
		{&o.MaxImages, d.MaxImages},
	} {
		if *lim.v <= 0 {
			*lim.v = lim.def
		}
	}
	if len(o.ContentSelectors) == 0 {
		o.ContentSelectors = d.ContentSelectors
	}
	if len(o.NoiseSelectors) == 0 {
		o.NoiseSelectors = d.NoiseSelectors
	}
	if len(o.NavigationSelectors) == 0 {
		o.NavigationSelectors = d.NavigationSelectors
	}
	return o
}
