package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable askgen reads.
const EnvPrefix = "ASKGEN_"

// DefaultFile is read when present and no file was named explicitly.
const DefaultFile = ".askgen.yaml"

// Option configures Load.
type Option func(*loader)

// WithFile reads path as YAML. A missing file named explicitly is an error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = strings.TrimSpace(path)
	}
}

// WithEnvFile reads path in .env format. A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = strings.TrimSpace(path)
	}
}

// WithOverrides sets keys (dotted koanf paths such as "log.level") after
// every other source.
func WithOverrides(values map[string]any) Option {
	return func(l *loader) {
		for key, value := range values {
			l.overrides[key] = value
		}
	}
}

// WithFS reads files from fsys instead of the OS filesystem.
func WithFS(fsys afero.Fs) Option {
	return func(l *loader) {
		if fsys != nil {
			l.fs = fsys
		}
	}
}

type loader struct {
	k         *koanf.Koanf
	validate  *validator.Validate
	fs        afero.Fs
	file      string
	envFile   string
	overrides map[string]any
}

// Load builds the configuration.
func Load(_ context.Context, options ...Option) (*Config, error) {
	l := &loader{
		k:         koanf.New("."),
		validate:  validator.New(),
		fs:        afero.NewOsFs(),
		envFile:   ".env",
		overrides: make(map[string]any),
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}

	if err := l.k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := l.loadFile(); err != nil {
		return nil, err
	}
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}
	if err := l.k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKey(key), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}
	for key, value := range l.overrides {
		if err := l.k.Set(key, value); err != nil {
			return nil, fmt.Errorf("config: set %s: %w", key, err)
		}
	}
	return l.unmarshal()
}

func (l *loader) loadFile() error {
	path, required := l.file, true
	if path == "" {
		path, required = DefaultFile, false
	}
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(values) == 0 {
		return nil
	}
	if err := l.k.Load(rawMap(values), nil); err != nil {
		return fmt.Errorf("config: apply %s: %w", path, err)
	}
	return nil
}

func (l *loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	f, err := l.fs.Open(l.envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: open %s: %w", l.envFile, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", l.envFile, err)
	}
	values := make(map[string]any)
	for key, value := range vars {
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if err := setPath(values, envKey(key), value); err != nil {
			return fmt.Errorf("config: %s: %w", l.envFile, err)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return l.k.Load(rawMap(values), nil)
}

func (l *loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := l.validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}

// sections are the nested config blocks; other keys keep their underscores.
var sections = map[string]bool{"watch": true, "log": true}

// envKey maps ASKGEN_LOG_LEVEL to log.level and ASKGEN_BUILD_TAGS to
// build_tags.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' })
	if len(parts) == 0 {
		return ""
	}
	if len(parts) > 1 && sections[parts[0]] {
		return parts[0] + "." + strings.Join(parts[1:], "_")
	}
	return strings.Join(parts, "_")
}

func setPath(m map[string]any, path, value string) error {
	keys := strings.Split(path, ".")
	for _, key := range keys[:len(keys)-1] {
		next, ok := m[key]
		if !ok {
			child := make(map[string]any)
			m[key] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("key %s is not a section", key)
		}
		m = child
	}
	m[keys[len(keys)-1]] = value
	return nil
}

// rawMap adapts a plain map to koanf.Provider.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, errors.New("config: ReadBytes not implemented")
}
