package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	if c.Translator.MaxAttempts < 1 {
		return fmt.Errorf("translator.max_attempts must be >= 1 (got %d)", c.Translator.MaxAttempts)
	}
	if c.Translator.InitialDelay <= 0 {
		return fmt.Errorf("translator.initial_delay must be > 0 (got %v)", c.Translator.InitialDelay)
	}
	if c.Translator.MaxDelay < c.Translator.InitialDelay {
		return fmt.Errorf("translator.max_delay must be >= initial_delay (got %v < %v)",
			c.Translator.MaxDelay, c.Translator.InitialDelay)
	}

	for name, p := range c.Prompts {
		if p.SystemPrompt == "" {
			return fmt.Errorf("prompts.%s: system_prompt must not be empty", name)
		}
		if p.Temperature < 0 || p.Temperature > 1 {
			return fmt.Errorf("prompts.%s: temperature must be in [0, 1] (got %v)", name, p.Temperature)
		}
		if p.MaxTokens < 0 {
			return fmt.Errorf("prompts.%s: max_tokens must be >= 0 (got %d)", name, p.MaxTokens)
		}
	}

	return nil
}
