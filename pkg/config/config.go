// Package config loads level descriptions from their textual dialects
// into the raw document consumed by level.Build.
//
// The primary dialect is TOML; a YAML rendering of the same document
// shape is accepted for files with a .yaml or .yml extension. Loaders
// only decode and type-check - all structural validation (ids, flags,
// skill resolution) happens in the level package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/stagewalk/stagewalk/pkg/errors"
	"github.com/stagewalk/stagewalk/pkg/level"
)

// gameSection is the required top-level [game] table.
// Skills decodes into []any so that a non-string entry can be reported
// as a field-type fault instead of an opaque decoder error.
type gameSection struct {
	Version int   `toml:"version" yaml:"version"`
	Skills  []any `toml:"skills" yaml:"skills"`
}

// stageRecord mirrors one [[stage]] table.
type stageRecord struct {
	ID           string              `toml:"id" yaml:"id"`
	Description  string              `toml:"description" yaml:"description"`
	Begin        bool                `toml:"begin" yaml:"begin"`
	End          bool                `toml:"end" yaml:"end"`
	UnlockSkills []string            `toml:"unlock-skills" yaml:"unlock-skills"`
	NextStage    map[string][]string `toml:"next-stage" yaml:"next-stage"`
}

// LoadFile reads and decodes a level config. The dialect is chosen by
// extension: .yaml and .yml decode as YAML, everything else as TOML.
func LoadFile(path string) (level.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return level.Document{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse decodes a TOML level config into a raw document.
//
// Stage tables are first captured as toml primitives and decoded one by
// one, so a malformed entry is reported as a bad stage definition with
// its position rather than as a generic decode failure.
func Parse(data []byte) (level.Document, error) {
	var raw struct {
		Game   *gameSection     `toml:"game"`
		Stages []toml.Primitive `toml:"stage"`
	}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return level.Document{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if raw.Game == nil {
		return level.Document{}, errors.New(errors.ErrCodeMissingSection, "missing required [game] section")
	}

	stages := make([]level.StageRecord, len(raw.Stages))
	for i, prim := range raw.Stages {
		var rec stageRecord
		if err := md.PrimitiveDecode(prim, &rec); err != nil {
			return level.Document{}, errors.Wrap(errors.ErrCodeBadStage, err, "stage at position %d", i)
		}
		stages[i] = toStageRecord(rec)
	}

	return assemble(*raw.Game, stages)
}

// ParseYAML decodes the YAML rendering of the config document.
func ParseYAML(data []byte) (level.Document, error) {
	var raw struct {
		Game   *gameSection `yaml:"game"`
		Stages []yaml.Node  `yaml:"stage"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return level.Document{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if raw.Game == nil {
		return level.Document{}, errors.New(errors.ErrCodeMissingSection, "missing required game section")
	}

	stages := make([]level.StageRecord, len(raw.Stages))
	for i, node := range raw.Stages {
		var rec stageRecord
		if err := node.Decode(&rec); err != nil {
			return level.Document{}, errors.Wrap(errors.ErrCodeBadStage, err, "stage at position %d", i)
		}
		stages[i] = toStageRecord(rec)
	}

	return assemble(*raw.Game, stages)
}

// assemble type-checks the skill list and produces the raw document.
// Version and structural checks are left to level.Build.
func assemble(game gameSection, stages []level.StageRecord) (level.Document, error) {
	skills := make([]string, len(game.Skills))
	for i, v := range game.Skills {
		s, ok := v.(string)
		if !ok {
			return level.Document{}, errors.New(errors.ErrCodeBadFieldType, "skill entry %d is %s, want string", i, typeName(v))
		}
		skills[i] = s
	}
	return level.Document{
		Version: game.Version,
		Skills:  skills,
		Stages:  stages,
	}, nil
}

func toStageRecord(rec stageRecord) level.StageRecord {
	return level.StageRecord{
		ID:           rec.ID,
		Description:  rec.Description,
		Begin:        rec.Begin,
		End:          rec.End,
		UnlockSkills: rec.UnlockSkills,
		NextStage:    rec.NextStage,
	}
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
