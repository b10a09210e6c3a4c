package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Addr     string   `koanf:"addr"`
	Frontend Frontend `koanf:"frontend"`
	Storage  Storage  `koanf:"storage"`
	AutoSave AutoSave `koanf:"autosave"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Storage struct {
	// Path is the SQLite database file backing the key-value storage.
	Path string `koanf:"path"`
	// InMemory switches to a non-persistent in-process store; data is lost
	// on exit. Meant for demos and tests.
	InMemory bool `koanf:"inmemory"`
}

type AutoSave struct {
	// DelayMillis is the debounce window before an in-progress edit is
	// written out.
	DelayMillis int `koanf:"delaymillis"`
}

// Load reads configuration from struct defaults, an optional YAML file, and
// PENNYWISE_-prefixed environment variables, in that order of precedence.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr: ":8080",
		Frontend: Frontend{
			Enabled: true,
		},
		Storage: Storage{
			Path: "./data/pennywise.db",
		},
		AutoSave: AutoSave{
			DelayMillis: 2000,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "PENNYWISE_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PENNYWISE_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
