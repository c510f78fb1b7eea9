// Package config loads mimeflowd's JSON configuration file, adapted
// from the teacher's config package: read the file, unmarshal,
// validate. Where the teacher's config.go
// populated a guerrilla.Config for an SMTP daemon, this one populates
// mimeparse.Options and mimeparse.Tunables for the parser pipeline.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"

	"github.com/mailchannels/mimeflow/mimeparse"
)

// Config is the on-disk (and CLI-overridable) shape of mimeflowd's
// settings.
type Config struct {
	DisableMime          bool `json:"disable_mime"`
	ReportTruncHeader    bool `json:"report_trunc_header"`
	Report8bitInHeader   bool `json:"report_8bit_in_header"`
	Report8bitIn7bitBody bool `json:"report_8bit_in_7bit_body"`
	ReportEncodingDomain bool `json:"report_encoding_domain"`
	RecurseAllMessage    bool `json:"recurse_all_message"`
	Downgrade            bool `json:"downgrade"`

	HeaderLimit    int `json:"header_limit"`
	MaxDepth       int `json:"max_depth"`
	MaxBoundaryLen int `json:"max_boundary_len"`

	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"`
}

// Default returns the conservative defaults mimeflowd starts from
// before a config file or CLI flags are applied.
func Default() *Config {
	return &Config{
		ReportTruncHeader:    true,
		ReportEncodingDomain: true,
		Downgrade:            true,
		HeaderLimit:          mimeparse.DefaultTunables.HeaderLimit,
		MaxDepth:             mimeparse.DefaultTunables.MaxDepth,
		MaxBoundaryLen:       mimeparse.DefaultTunables.MaxBoundaryLen,
		LogFile:              "stderr",
		LogLevel:             "info",
	}
}

// ReadConfig loads configFile into cfg, which should already hold the
// defaults to fall back on for any field JSON leaves untouched.
func ReadConfig(configFile string, cfg *Config) error {
	b, err := ioutil.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("could not read config file: %s", err)
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("could not parse config file: %s", err)
	}
	if cfg.HeaderLimit <= 0 {
		return errors.New("header_limit must be positive")
	}
	if cfg.MaxDepth <= 0 {
		return errors.New("max_depth must be positive")
	}
	if cfg.MaxBoundaryLen <= 0 {
		return errors.New("max_boundary_len must be positive")
	}
	return nil
}

// Options translates the boolean fields into a mimeparse.Options mask.
func (c *Config) Options() mimeparse.Options {
	var o mimeparse.Options
	if c.DisableMime {
		o |= mimeparse.DisableMime
	}
	if c.ReportTruncHeader {
		o |= mimeparse.ReportTruncHeader
	}
	if c.Report8bitInHeader {
		o |= mimeparse.Report8bitInHeader
	}
	if c.Report8bitIn7bitBody {
		o |= mimeparse.Report8bitIn7bitBody
	}
	if c.ReportEncodingDomain {
		o |= mimeparse.ReportEncodingDomain
	}
	if c.RecurseAllMessage {
		o |= mimeparse.RecurseAllMessage
	}
	if c.Downgrade {
		o |= mimeparse.Downgrade
	}
	return o
}

// Tunables translates the size-limit fields into mimeparse.Tunables.
func (c *Config) Tunables() mimeparse.Tunables {
	return mimeparse.Tunables{
		HeaderLimit:    c.HeaderLimit,
		MaxDepth:       c.MaxDepth,
		MaxBoundaryLen: c.MaxBoundaryLen,
	}
}
