package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/policy"
)

// envPrefix is the prefix for environment overrides, e.g.
// SEQFILE_FILE_EXIST=Fail.
const envPrefix = "SEQFILE_"

// defaults mirror NewEndpoint: Override on conflict, eager delete on.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"file-exist":               "Override",
		"temp-prefix":              "",
		"temp-file-name":           "",
		"eager-delete-target-file": true,
		"move-existing":            "",
		"done-file-name":           "",
	}
}

// Load reads an endpoint profile from path (TOML or YAML, by
// extension), applies SEQFILE_* environment overrides, and validates
// the result. An empty path loads defaults plus environment only.
// A non-empty directory argument overrides whatever the profile and
// environment say.
func Load(path, directory string) (*Endpoint, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load profile from %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	if directory != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{"directory": directory}, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply directory override")
		}
	}

	return fromKoanf(k)
}

// parserFor picks the koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported profile format: %s", path)
	}
}

// envToKey maps SEQFILE_FILE_EXIST to file-exist.
func envToKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}

// fromKoanf builds a validated Endpoint from loaded configuration.
func fromKoanf(k *koanf.Koanf) (*Endpoint, error) {
	ep, err := NewEndpoint(k.String("directory"))
	if err != nil {
		return nil, err
	}

	ep.FileExist, err = policy.Parse(k.String("file-exist"))
	if err != nil {
		return nil, err
	}

	ep.TempPrefix = k.String("temp-prefix")
	ep.TempFileName = k.String("temp-file-name")
	ep.EagerDeleteTargetFile = k.Bool("eager-delete-target-file")
	ep.MoveExisting = k.String("move-existing")
	ep.DoneFileName = k.String("done-file-name")

	if err := ep.Validate(); err != nil {
		return nil, err
	}
	return ep, nil
}
