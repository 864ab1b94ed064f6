package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
)

// ConfigName is the basename (without extension) viper searches for.
const ConfigName = "vibecheck.config"

// ProfilePrefix marks an extends reference to a built-in profile, as in
// "vibe-check:recommended".
const ProfilePrefix = "vibe-check:"

// maxExtendsDepth caps extends chains so a config cycle cannot hang a scan.
const maxExtendsDepth = 10

// ErrConfigUnreadable wraps failures to read or parse an explicitly
// supplied config file. These are fatal setup errors.
var ErrConfigUnreadable = errors.New("config file unreadable")

// Load locates and parses the configuration for a scan.
//
// When explicitPath is set, failure to read or parse it is an error.
// Otherwise the root directory and its ancestors are searched for
// vibecheck.config.{json,yaml,yml}; absence yields (nil, nil), and a
// malformed discovered file degrades to no config with a warning.
func Load(root, explicitPath string, logger *zap.SugaredLogger) (*Config, error) {
	v := viper.New()

	var baseDir string
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigUnreadable, explicitPath, err)
		}
		baseDir = filepath.Dir(explicitPath)
	} else {
		v.SetConfigName(ConfigName)
		for _, dir := range ancestorDirs(root) {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil, nil
			}
			logger.Warnf("ignoring malformed config: %v", err)
			return nil, nil
		}
		baseDir = filepath.Dir(v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		if explicitPath != "" {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigUnreadable, explicitPath, err)
		}
		logger.Warnf("ignoring malformed config %s: %v", v.ConfigFileUsed(), err)
		return nil, nil
	}
	if explicitPath == "" {
		logger.Debugf("loaded config %s", v.ConfigFileUsed())
	}
	reloadCheckerOptions(cfg, v.ConfigFileUsed())

	return resolveExtends(cfg, baseDir, 0, logger), nil
}

// reloadCheckerOptions re-decodes the checkerOptions subtree straight from
// the file. Viper folds nested map keys to lower case, which would turn
// option keys like "routeGlobs" into "routeglobs" and make the checkers
// miss them.
func reloadCheckerOptions(cfg *Config, path string) {
	if cfg == nil || len(cfg.CheckerOptions) == 0 || path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var raw struct {
		CheckerOptions map[string]map[string]any `json:"checkerOptions" yaml:"checkerOptions"`
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return
	}
	if err == nil && raw.CheckerOptions != nil {
		cfg.CheckerOptions = raw.CheckerOptions
	}
}

// resolveExtends recursively resolves the extends chain and merges the
// result under cfg. An unresolvable target degrades to "no base" with a
// warning rather than failing the scan.
func resolveExtends(cfg *Config, baseDir string, depth int, logger *zap.SugaredLogger) *Config {
	ref := strings.TrimSpace(cfg.Extends)
	if ref == "" {
		return cfg
	}
	if depth >= maxExtendsDepth {
		logger.Warnf("extends chain too deep at %q, ignoring further bases", ref)
		return cfg
	}

	var base *Config
	if name, ok := strings.CutPrefix(ref, ProfilePrefix); ok {
		base = Profile(name)
		if base == nil {
			logger.Warnf("unknown built-in profile %q, continuing without it", ref)
		}
	} else {
		base = loadExtendsFile(ref, baseDir, depth, logger)
	}

	merged := Merge(base, cfg)
	merged.Extends = ""
	return merged
}

func loadExtendsFile(ref, baseDir string, depth int, logger *zap.SugaredLogger) *Config {
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		logger.Warnf("cannot resolve extends %q: %v", ref, err)
		return nil
	}
	base := &Config{}
	if err := v.Unmarshal(base); err != nil {
		logger.Warnf("cannot resolve extends %q: %v", ref, err)
		return nil
	}
	reloadCheckerOptions(base, path)
	return resolveExtends(base, filepath.Dir(path), depth+1, logger)
}

// ancestorDirs returns root and each parent up to the filesystem root, so a
// config committed at the repository top level is found when scanning a
// subdirectory.
func ancestorDirs(root string) []string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return []string{root}
	}
	var dirs []string
	for {
		dirs = append(dirs, abs)
		parent := filepath.Dir(abs)
		if parent == abs {
			return dirs
		}
		abs = parent
	}
}
