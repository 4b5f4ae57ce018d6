package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig          `yaml:"database"`
	Log        LogConfig               `yaml:"log"`
	LLM        LLMConfig               `yaml:"llm"`
	Translator TranslatorConfig        `yaml:"translator"`
	Import     ImportConfig            `yaml:"import"`
	Export     ExportConfig            `yaml:"export"`
	Prompts    map[string]PromptConfig `yaml:"prompts"`
}

// DatabaseConfig holds SQLite settings. The store is a single local file.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DATABASE_PATH" env-default:"./book.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// LLMConfig holds completion-service settings shared by all prompts.
type LLMConfig struct {
	APIKey         string        `yaml:"api_key"         env:"LLM_API_KEY"`
	DefaultModel   string        `yaml:"default_model"   env:"LLM_DEFAULT_MODEL"   env-default:"claude-sonnet-4-5"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"LLM_REQUEST_TIMEOUT" env-default:"120s"`
}

// TranslatorConfig holds retry behavior for the translation loop.
type TranslatorConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"  env:"TRANSLATOR_MAX_ATTEMPTS"  env-default:"4"`
	InitialDelay time.Duration `yaml:"initial_delay" env:"TRANSLATOR_INITIAL_DELAY" env-default:"2s"`
	MaxDelay     time.Duration `yaml:"max_delay"     env:"TRANSLATOR_MAX_DELAY"     env-default:"30s"`
}

// ImportConfig holds importer settings.
type ImportConfig struct {
	BookPath string `yaml:"book_path" env:"IMPORT_BOOK_PATH"`
}

// ExportConfig holds document-export settings.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir" env:"EXPORT_OUTPUT_DIR" env-default:"./output"`
	// FontPath points to a UTF-8 TrueType font able to render Hebrew
	// (e.g. DavidLibre). Without it the renderer falls back to a core
	// Latin-only font and Hebrew text will not be legible.
	FontPath string `yaml:"font_path" env:"EXPORT_FONT_PATH"`
	FontName string `yaml:"font_name" env:"EXPORT_FONT_NAME" env-default:"David"`
}

// PromptConfig describes one named translation style.
type PromptConfig struct {
	Description  string `yaml:"description"`
	SystemPrompt string `yaml:"system_prompt"`
	// UserTemplate is the user-message template; the {{TEXT}} placeholder
	// is replaced with the paragraph text. Empty → the paragraph text is
	// sent as-is.
	UserTemplate string  `yaml:"user_template"`
	Model        string  `yaml:"model"`       // empty → LLM.DefaultModel
	Temperature  float64 `yaml:"temperature"` // 0 is a valid value
	MaxTokens    int     `yaml:"max_tokens"`
}

// Prompt returns the named prompt configuration.
func (c *Config) Prompt(name string) (PromptConfig, bool) {
	p, ok := c.Prompts[name]
	return p, ok
}

// PromptNames returns the configured prompt names (unordered).
func (c *Config) PromptNames() []string {
	names := make([]string, 0, len(c.Prompts))
	for name := range c.Prompts {
		names = append(names, name)
	}
	return names
}
