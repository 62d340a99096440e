package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"gopkg.in/ini.v1"
)

// FileName is the name of the credential file inside the home directory.
const FileName = "git_ai.ini"

type Config struct {
	Provider            AI
	Model               Model
	WrapWidth           int
	ExitOnEmpty         bool
	SuggestImprovements bool
	Language            string
	PathFile            string
}

const (
	defaultProvider            = AIOpenAI
	defaultWrapWidth           = 72
	defaultExitOnEmpty         = false
	defaultSuggestImprovements = true
	defaultLang                = "en"
)

var supportedLanguages = []string{"en", "es"}

// DefaultPath returns the credential file location for a home directory.
func DefaultPath(homeDir string) string {
	return filepath.Join(homeDir, FileName)
}

// LoadConfig reads the settings stored next to the credentials in path. A
// missing file yields the defaults; keys not present keep their default.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig(path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	section := file.Section(ini.DefaultSection)

	if section.HasKey(KeyProvider) {
		cfg.Provider = AI(section.Key(KeyProvider).String())
	}
	if section.HasKey(KeyModel) {
		cfg.Model = Model(section.Key(KeyModel).String())
	}
	if section.HasKey(KeyWrapWidth) {
		if cfg.WrapWidth, err = section.Key(KeyWrapWidth).Int(); err != nil {
			return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("key", KeyWrapWidth)
		}
	}
	if section.HasKey(KeyExitOnEmpty) {
		if cfg.ExitOnEmpty, err = section.Key(KeyExitOnEmpty).Bool(); err != nil {
			return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("key", KeyExitOnEmpty)
		}
	}
	if section.HasKey(KeySuggestImprovements) {
		if cfg.SuggestImprovements, err = section.Key(KeySuggestImprovements).Bool(); err != nil {
			return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("key", KeySuggestImprovements)
		}
	}
	if section.HasKey(KeyLanguage) {
		cfg.Language = section.Key(KeyLanguage).String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("the loaded configuration is not valid: %w", err)
	}

	return cfg, nil
}

func defaultConfig(path string) *Config {
	return &Config{
		Provider:            defaultProvider,
		WrapWidth:           defaultWrapWidth,
		ExitOnEmpty:         defaultExitOnEmpty,
		SuggestImprovements: defaultSuggestImprovements,
		Language:            defaultLang,
		PathFile:            path,
	}
}

// SaveConfig writes the settings into the credential file, keeping every key
// it does not manage (the API keys in particular).
func SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("the configuration to save is not valid: %w", err)
	}

	if cfg.PathFile == "" {
		return errors.New("the configuration file path is not defined")
	}

	file, err := loadOrEmpty(cfg.PathFile)
	if err != nil {
		return err
	}

	section := file.Section(ini.DefaultSection)
	section.Key(KeyProvider).SetValue(string(cfg.Provider))
	if cfg.Model != "" {
		section.Key(KeyModel).SetValue(string(cfg.Model))
	}
	section.Key(KeyWrapWidth).SetValue(strconv.Itoa(cfg.WrapWidth))
	section.Key(KeyExitOnEmpty).SetValue(strconv.FormatBool(cfg.ExitOnEmpty))
	section.Key(KeySuggestImprovements).SetValue(strconv.FormatBool(cfg.SuggestImprovements))
	section.Key(KeyLanguage).SetValue(cfg.Language)

	return saveFile(file, cfg.PathFile)
}

// ModelName returns the configured model or the provider default.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return string(c.Model)
	}
	return string(DefaultModelForAI(c.Provider))
}

// ModelFor returns the model to use with provider: the configured one when
// provider is the configured provider, its default otherwise.
func (c *Config) ModelFor(provider AI) string {
	if provider == c.Provider {
		return c.ModelName()
	}
	return string(DefaultModelForAI(provider))
}

func (c *Config) Validate() error {
	if c.WrapWidth <= 0 {
		return domainErrors.ErrInvalidConfig.
			WithContext("key", KeyWrapWidth).
			WithSuggestion("WRAP_WIDTH must be greater than 0")
	}
	if !IsSupportedAI(c.Provider) {
		return domainErrors.ErrUnknownProvider.WithContext("provider", string(c.Provider))
	}
	if !isSupportedLanguage(c.Language) {
		return domainErrors.ErrInvalidConfig.
			WithContext("key", KeyLanguage).
			WithSuggestion(fmt.Sprintf("LANGUAGE must be one of %v", supportedLanguages))
	}
	return nil
}

func isSupportedLanguage(lang string) bool {
	for _, l := range supportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

func loadOrEmpty(path string) (*ini.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ini.Empty(), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}
	return file, nil
}

func saveFile(file *ini.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating configuration directory: %w", err)
	}
	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}
	return os.Chmod(path, 0600)
}
