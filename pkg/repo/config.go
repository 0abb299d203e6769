package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default identity used when config.toml is absent or incomplete.
const (
	defaultUserName  = "anonymous"
	defaultUserEmail = "anonymous@localhost"
)

// Config stores repository-local settings.
type Config struct {
	User UserConfig `toml:"user"`
}

// UserConfig is the commit author/committer identity.
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

func (r *Repo) configPath() string {
	return filepath.Join(r.GritDir, "config.toml")
}

// ReadConfig reads config.toml from the metadata directory. A missing
// file returns the defaults; unset fields fall back to them.
func (r *Repo) ReadConfig() (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(r.configPath(), cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if strings.TrimSpace(cfg.User.Name) == "" {
		cfg.User.Name = defaultUserName
	}
	if strings.TrimSpace(cfg.User.Email) == "" {
		cfg.User.Email = defaultUserEmail
	}
	return cfg, nil
}

// WriteConfig atomically writes config.toml via temp file + rename.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(r.GritDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, r.configPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

// SetUser stores the commit identity in repository config.
func (r *Repo) SetUser(name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return fmt.Errorf("set user: name is required")
	}
	if email == "" {
		return fmt.Errorf("set user: email is required")
	}

	cfg, err := r.ReadConfig()
	if err != nil {
		return err
	}
	cfg.User.Name = name
	cfg.User.Email = email
	return r.WriteConfig(cfg)
}
