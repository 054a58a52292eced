package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Profile is the pontoctl configuration stored in ~/.pontoctl/config.toml.
type Profile struct {
	APIURL     string `toml:"api_url"`
	Token      string `toml:"token"`
	Timezone   string `toml:"timezone"`
	Locale     string `toml:"locale"`
	ResetDelay string `toml:"reset_delay"`
}

func DefaultProfile() *Profile {
	return &Profile{
		Timezone:   "America/Sao_Paulo",
		Locale:     "pt-BR",
		ResetDelay: "300ms",
	}
}

func ProfileDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".pontoctl"), nil
}

func ProfilePath() (string, error) {
	dir, err := ProfileDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadProfile reads path, returning defaults when the file does not exist.
func LoadProfile(path string) (*Profile, error) {
	p := DefaultProfile()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p.APIURL = strings.TrimRight(p.APIURL, "/")
	return p, nil
}

func SaveProfile(path string, p *Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	// holds a bearer token
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(p)
}

// Set assigns one profile key by its toml name.
func (p *Profile) Set(key, value string) error {
	switch key {
	case "api_url":
		p.APIURL = strings.TrimRight(value, "/")
	case "token":
		p.Token = value
	case "timezone":
		p.Timezone = value
	case "locale":
		p.Locale = value
	case "reset_delay":
		p.ResetDelay = value
	default:
		return fmt.Errorf("unknown profile key %q", key)
	}
	return nil
}
