// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAgentURL is where the local agent listens when nothing else is
// configured.
const DefaultAgentURL = "http://localhost:8000"

// Config contains every user-facing option. Bool/int/duration fields are
// "optional" wrappers so unset can be told apart from explicitly set, which
// the file/env/flag layering below relies on.
type Config struct {
	Help    OptBool
	Version OptBool
	Verbose OptBool

	// ConfigPath overrides the default config file location
	// (~/.agentchat/config.toml).
	ConfigPath string

	URL         string
	ProcessorID string

	// Message runs a single exchange and exits; without it the CLI starts an
	// interactive loop.
	Message string

	ExitCommands string
	Timeout      OptDuration
	HistoryLimit OptInt

	// Plain disables styled output.
	Plain OptBool

	// OutputSchema is a JSON Schema file path; when set, the final answer is
	// parsed as JSON and validated against it.
	OutputSchema string
}

// OptBool is a flag.Value that tracks whether it has been explicitly set.
// It supports the `--flag` shorthand (implicit true) via IsBoolFlag.
type OptBool struct {
	set bool
	val bool
}

func (b *OptBool) IsBoolFlag() bool { return true }

func (b *OptBool) Set(s string) error {
	b.set = true
	if strings.TrimSpace(s) == "" {
		b.val = true
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("parse bool %q: %w", s, err)
	}
	b.val = v
	return nil
}

func (b *OptBool) String() string {
	if !b.set {
		return ""
	}
	return strconv.FormatBool(b.val)
}

func (b OptBool) IsSet() bool { return b.set }

func (b OptBool) Value() bool { return b.val }

// Enabled is a convenience shortcut for IsSet() && Value().
func (b OptBool) Enabled() bool { return b.set && b.val }

type OptInt struct {
	set bool
	val int
}

func (i *OptInt) Set(s string) error {
	i.set = true
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("parse int %q: %w", s, err)
	}
	i.val = v
	return nil
}

func (i *OptInt) String() string {
	if !i.set {
		return ""
	}
	return strconv.Itoa(i.val)
}

func (i OptInt) IsSet() bool { return i.set }

func (i OptInt) Value() int { return i.val }

type OptDuration struct {
	set bool
	val time.Duration
}

func (d *OptDuration) Set(s string) error {
	d.set = true
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.val = v
	return nil
}

func (d *OptDuration) String() string {
	if !d.set {
		return ""
	}
	return d.val.String()
}

func (d OptDuration) IsSet() bool { return d.set }

func (d OptDuration) Value() time.Duration { return d.val }

func parseCLI(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Config{
		ExitCommands: "exit,quit,/exit,/quit",
	}

	fs := flag.NewFlagSet("agentchat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Meta.
	fs.Var(&cfg.Help, "help", "Show help.")
	fs.Var(&cfg.Help, "h", "Show help (shorthand).")
	fs.Var(&cfg.Version, "version", "Print version and exit.")
	fs.Var(&cfg.Verbose, "verbose", "Enable diagnostic output to stderr.")

	// Target.
	fs.StringVar(&cfg.URL, "url", cfg.URL, "Agent base URL. Can also be set via AGENTCHAT_URL or the config file.")
	fs.StringVar(&cfg.ProcessorID, "processor-id", cfg.ProcessorID, "Processor id sent with every request. Can also be set via AGENTCHAT_PROCESSOR_ID.")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Path to a TOML config file (default: ~/.agentchat/config.toml).")

	// Runtime controls.
	fs.StringVar(&cfg.Message, "message", cfg.Message, "Run a single exchange with this prompt and exit (otherwise starts an interactive loop).")
	fs.StringVar(&cfg.ExitCommands, "exit-commands", cfg.ExitCommands, "Comma-separated commands that exit the interactive loop.")
	fs.Var(&cfg.Timeout, "timeout", "Per-exchange timeout (e.g. 30s, 2m). 0 keeps the client default, negative disables the bound.")
	fs.Var(&cfg.HistoryLimit, "history-limit", "Maximum number of turns kept in the in-memory transcript (<=0 = unlimited).")
	fs.Var(&cfg.Plain, "plain", "Disable styled output.")
	fs.StringVar(&cfg.OutputSchema, "output-schema", cfg.OutputSchema, "Path to a JSON Schema file used to validate the final answer.")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	// Sanitize.
	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.ProcessorID = strings.TrimSpace(cfg.ProcessorID)
	cfg.ConfigPath = strings.TrimSpace(cfg.ConfigPath)
	cfg.ExitCommands = strings.TrimSpace(cfg.ExitCommands)
	cfg.OutputSchema = strings.TrimSpace(cfg.OutputSchema)

	// Environment fills what flags left empty.
	if cfg.URL == "" {
		cfg.URL = strings.TrimSpace(getenv("AGENTCHAT_URL"))
	}
	if cfg.ProcessorID == "" {
		cfg.ProcessorID = strings.TrimSpace(getenv("AGENTCHAT_PROCESSOR_ID"))
	}

	return cfg, nil
}

// fileConfig is the TOML config file shape. Only fields left unset by flags
// and environment are taken from it.
type fileConfig struct {
	URL          string `toml:"url"`
	ProcessorID  string `toml:"processor_id"`
	Timeout      string `toml:"timeout"`
	HistoryLimit *int   `toml:"history_limit"`
	Plain        *bool  `toml:"plain"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".agentchat", "config.toml")
}

// loadFileConfig reads path (or the default location when path is empty).
// A missing default file is not an error; a missing explicit file is.
func loadFileConfig(path string) (fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return fileConfig{}, nil
		}
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if !explicit && os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("load config file %s: %w", path, err)
	}
	return fc, nil
}

// resolve layers the file config under flags/env and applies defaults.
func (c Config) resolve(fc fileConfig) (Config, error) {
	if c.URL == "" {
		c.URL = strings.TrimSpace(fc.URL)
	}
	if c.URL == "" {
		c.URL = DefaultAgentURL
	}
	if c.ProcessorID == "" {
		c.ProcessorID = strings.TrimSpace(fc.ProcessorID)
	}
	if !c.Timeout.IsSet() && strings.TrimSpace(fc.Timeout) != "" {
		if err := c.Timeout.Set(fc.Timeout); err != nil {
			return c, fmt.Errorf("config file timeout: %w", err)
		}
	}
	if !c.HistoryLimit.IsSet() && fc.HistoryLimit != nil {
		c.HistoryLimit = OptInt{set: true, val: *fc.HistoryLimit}
	}
	if !c.Plain.IsSet() && fc.Plain != nil {
		c.Plain = OptBool{set: true, val: *fc.Plain}
	}
	return c, nil
}
