// Package config loads the PhishFry INI configuration file (§6): a DEFAULT
// section carrying a shared timezone fallback, plus one section per
// account.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/phishfry/phishfry/ews"
)

const (
	defaultServer  = "outlook.office365.com"
	defaultVersion = "Exchange2016"
)

// Load reads path and returns one SessionConfig per non-DEFAULT section, in
// file order.
func Load(path string) ([]ews.SessionConfig, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	timezone := file.Section(ini.DefaultSection).Key("timezone").String()

	var sessions []ews.SessionConfig
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		user := section.Key("user").String()
		pass := section.Key("pass").String()
		if user == "" || pass == "" {
			return nil, fmt.Errorf("config section %q: user and pass are required", section.Name())
		}

		sessions = append(sessions, ews.SessionConfig{
			Server:   section.Key("server").MustString(defaultServer),
			User:     user,
			Pass:     pass,
			Version:  section.Key("version").MustString(defaultVersion),
			Timezone: timezone,
		})
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("config %s: no accounts configured", path)
	}
	return sessions, nil
}
