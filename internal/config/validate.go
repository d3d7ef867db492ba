package config

import (
	"errors"
	"fmt"
	"strconv"

	xerrors "github.com/standardbeagle/typofix/internal/errors"

	"github.com/standardbeagle/typofix/internal/extract"
	"github.com/standardbeagle/typofix/internal/vocab"
)

// Validator validates configuration and fills in defaults for values the
// config file left at zero.
type Validator struct{}

// NewValidator creates a configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates the config and applies defaults.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if cfg.Root == "" {
		return xerrors.NewConfigError("root", "", errors.New("workspace root cannot be empty"))
	}

	if cfg.MinScore < 0 || cfg.MinScore > 1 {
		return xerrors.NewConfigError("min-score", formatFloat(cfg.MinScore),
			errors.New("must be between 0 and 1"))
	}

	if err := v.validateLanguages(cfg.Languages); err != nil {
		return err
	}

	if cfg.Watch.DebounceMs < 0 {
		return xerrors.NewConfigError("watch.debounce-ms", strconv.Itoa(cfg.Watch.DebounceMs),
			errors.New("cannot be negative"))
	}

	if cfg.Vocab.NearThreshold < 0 || cfg.Vocab.NearThreshold > 1 {
		return xerrors.NewConfigError("vocab.near-threshold", formatFloat(cfg.Vocab.NearThreshold),
			errors.New("must be between 0 and 1"))
	}
	if cfg.Vocab.MinLength < 0 {
		return xerrors.NewConfigError("vocab.min-length", strconv.Itoa(cfg.Vocab.MinLength),
			errors.New("cannot be negative"))
	}

	v.setDefaults(cfg)
	return nil
}

// validateLanguages rejects language names no extractor exists for, so a
// misspelled config value surfaces immediately rather than silently
// checking nothing.
func (v *Validator) validateLanguages(languages []string) error {
	if len(languages) == 0 {
		return nil
	}
	known := make(map[string]bool)
	for _, name := range extract.SupportedLanguages() {
		known[name] = true
	}
	for _, lang := range languages {
		if !known[lang] {
			return xerrors.NewConfigError("languages", lang,
				fmt.Errorf("unknown language (supported: %v)", extract.SupportedLanguages()))
		}
	}
	return nil
}

func (v *Validator) setDefaults(cfg *Config) {
	def := Default()
	if cfg.MinScore == 0 {
		cfg.MinScore = def.MinScore
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = def.Watch.DebounceMs
	}
	if cfg.Vocab.NearThreshold == 0 {
		cfg.Vocab.NearThreshold = vocab.DefaultNearThreshold
	}
	if cfg.Vocab.MinLength == 0 {
		cfg.Vocab.MinLength = vocab.DefaultNearMinLength
	}
	if len(cfg.Exclude) == 0 {
		cfg.Exclude = defaultExclusions()
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ValidateConfig is a convenience function for quick validation.
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
