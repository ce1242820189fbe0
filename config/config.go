package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"model_output_report/generator"
	"model_output_report/report"
)

// DefaultProfileName is the profile used when neither the flag nor the file
// names one.
const DefaultProfileName = "deepseek-coder"

// DefaultAPIKeyEnv is read when engine.api_key_env is not set.
const DefaultAPIKeyEnv = "OPENAI_API_KEY"

// selfHostedKey is sent to self-hosted servers that ignore authentication.
const selfHostedKey = "EMPTY"

var ErrUnknownProfile = errors.New("unknown profile")

// Config represents the config file (~/.config/model-report/config.yaml).
type Config struct {
	Engine         Engine             `yaml:"engine"`
	LogLevel       string             `yaml:"log_level"`
	LogFormat      string             `yaml:"log_format"`
	DefaultProfile string             `yaml:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Engine describes how to reach the inference engine.
type Engine struct {
	Provider    string        `yaml:"provider"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	APIKeyEnv   string        `yaml:"api_key_env"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  *int          `yaml:"max_retries"`
	VerifyModel bool          `yaml:"verify_model"`
}

// Profile is one parameterisation of a run: which model, where, with which
// prompts, and where the report goes.
type Profile struct {
	Model        string   `yaml:"model"`
	Device       string   `yaml:"device"`
	DType        string   `yaml:"dtype"`
	MaxNewTokens int      `yaml:"max_new_tokens"`
	Temperature  *float64 `yaml:"temperature"`
	Seed         *int64   `yaml:"seed"`
	Stop         []string `yaml:"stop"`
	Echo         bool     `yaml:"echo"`
	Prompts      []string `yaml:"prompts"`
	Output       string   `yaml:"output"`
	Results      string   `yaml:"results"`
	Title        string   `yaml:"title"`
	Format       string   `yaml:"format"`
	OpenBrowser  *bool    `yaml:"open_browser"`
	MetricsFile  string   `yaml:"metrics_file"`
}

var builtinProfiles = map[string]Profile{
	DefaultProfileName: {
		Model:        "deepseek-ai/deepseek-coder-1.3b",
		Device:       string(generator.DeviceCPU),
		DType:        string(generator.DTypeFloat32),
		MaxNewTokens: 50,
		Prompts:      []string{"Hello, DeepSeek! Can you complete this sentence:"},
		Output:       report.DefaultPath,
		Title:        "DeepSeek Model Output",
	},
}

// Default is the configuration used when no file exists.
func Default() Config {
	return Config{
		Engine: Engine{
			Provider:  generator.ProviderOpenAI,
			BaseURL:   "http://localhost:8000/v1",
			APIKeyEnv: DefaultAPIKeyEnv,
			Timeout:   5 * time.Minute,
		},
		LogLevel:       "info",
		LogFormat:      "console",
		DefaultProfile: DefaultProfileName,
	}
}

// DefaultPath returns the per-user config location, or "" if the platform
// has none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "model-report", "config.yaml")
}

// Load reads the YAML file at path over Default. An empty path means
// DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ProfileNames lists built-in and configured profiles, sorted.
func (c Config) ProfileNames() []string {
	seen := map[string]bool{}
	var names []string
	for name := range builtinProfiles {
		seen[name] = true
		names = append(names, name)
	}
	for name := range c.Profiles {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Profile resolves name (or the default profile when empty) and fills unset
// fields with defaults. Configured profiles shadow built-in ones.
func (c Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		name = DefaultProfileName
	}
	p, ok := c.Profiles[name]
	if !ok {
		p, ok = builtinProfiles[name]
	}
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	p.Prompts = append([]string(nil), p.Prompts...)
	p.Stop = append([]string(nil), p.Stop...)
	return p.withDefaults(), nil
}

func (p Profile) withDefaults() Profile {
	if p.Device == "" {
		p.Device = string(generator.DeviceAuto)
	}
	if p.DType == "" {
		p.DType = string(generator.DTypeAuto)
	}
	if p.MaxNewTokens == 0 {
		p.MaxNewTokens = 50
	}
	if p.Output == "" {
		p.Output = report.DefaultPath
	}
	if p.Title == "" {
		p.Title = report.DefaultTitle
	}
	if p.Format == "" {
		p.Format = string(report.FormatText)
	}
	if p.OpenBrowser == nil {
		open := true
		p.OpenBrowser = &open
	}
	return p
}

// Validate checks a resolved profile.
func (p Profile) Validate() error {
	if err := p.ModelSpec().Validate(); err != nil {
		return err
	}
	if len(p.Prompts) == 0 {
		return generator.ErrNoPrompts
	}
	if p.MaxNewTokens <= 0 {
		return fmt.Errorf("max_new_tokens must be positive, got %d", p.MaxNewTokens)
	}
	if _, err := report.ParseFormat(p.Format); err != nil {
		return err
	}
	return nil
}

func (p Profile) ModelSpec() generator.ModelSpec {
	return generator.ModelSpec{
		Name:   p.Model,
		Device: generator.Device(p.Device),
		DType:  generator.DType(p.DType),
	}
}

func (p Profile) Options() generator.Options {
	return generator.Options{
		MaxNewTokens: p.MaxNewTokens,
		Temperature:  p.Temperature,
		Seed:         p.Seed,
		Stop:         p.Stop,
		Echo:         p.Echo,
	}
}

// ShouldOpen reports whether the report should be opened in a browser.
func (p Profile) ShouldOpen() bool {
	return p.OpenBrowser == nil || *p.OpenBrowser
}

// Settings turns the engine section into generator settings, resolving the
// API key from the environment when it is not inline.
func (e Engine) Settings() (generator.Settings, error) {
	s := generator.Settings{
		Provider:    e.Provider,
		BaseURL:     e.BaseURL,
		APIKey:      e.APIKey,
		Timeout:     e.Timeout,
		MaxRetries:  2,
		VerifyModel: e.VerifyModel,
	}
	if s.Provider == "" {
		s.Provider = generator.ProviderOpenAI
	}
	if e.MaxRetries != nil {
		s.MaxRetries = *e.MaxRetries
	}
	switch s.Provider {
	case generator.ProviderMock:
		return s, nil
	case generator.ProviderOpenAI, generator.ProviderDeepSeek:
	default:
		return generator.Settings{}, fmt.Errorf("%w: %s", generator.ErrUnknownProvider, s.Provider)
	}
	env := e.APIKeyEnv
	if env == "" {
		env = DefaultAPIKeyEnv
	}
	if s.APIKey == "" {
		s.APIKey = os.Getenv(env)
	}
	if s.APIKey == "" {
		if s.BaseURL == "" {
			return generator.Settings{}, fmt.Errorf("engine api key missing; set engine.api_key or $%s", env)
		}
		s.APIKey = selfHostedKey
	}
	return s, nil
}
