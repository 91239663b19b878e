package config

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ReadFromEnv populates cfg from environment variables, starting from
// defaultCfg when one is given. Variables map to struct fields by lowercasing
// and splitting on "__", so HTTP__ADDRESS sets the Address field of the Http
// section.
func ReadFromEnv(cfg any, defaultCfg any) error {
	k := koanf.New(".")

	if defaultCfg != nil {
		if err := k.Load(structs.Provider(defaultCfg, "koanf"), nil); err != nil {
			return err
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return err
	}

	return k.Unmarshal("", cfg)
}
