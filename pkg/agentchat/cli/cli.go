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

// Package cli implements the `agentchat` command-line interface runtime.
//
// `agentchat` is a small streaming chat CLI against an agent exposing the
// /assist protocol. The default behavior is exposed by:
//
//	os.Exit(cli.Run(os.Args, os.Stdout, os.Stderr))
//
// # Configuration
//
// Options layer in order of precedence: flags, then environment, then the
// TOML config file, then built-in defaults.
//
// Environment variables:
//   - AGENTCHAT_URL           agent base URL (default http://localhost:8000)
//   - AGENTCHAT_PROCESSOR_ID  processor id sent with every request
//
// Config file (~/.agentchat/config.toml, or --config):
//
//	url = "http://localhost:8000"
//	processor_id = "test-processor"
//	timeout = "2m"
//	history_limit = 100
//	plain = false
//
// # Usage
//
//	agentchat --message "Hello!"
//	agentchat                       # interactive loop
//	agentchat --url http://host:8000 --timeout 30s
//	agentchat --message "Return JSON only." --output-schema ./schema.json
//
// # Failure surfacing
//
// Exchange failures are not errors: the agent protocol resolves every
// failure to a displayable answer string with an "Error:" prefix, and the
// CLI renders it like any assistant reply. In one-shot mode such an answer
// additionally yields a non-zero exit status, so scripts can branch on it.
//
// Exit status
//
//	0 - success
//	2 - CLI usage / argument error
//	1 - runtime failure (unusable config, error answer in one-shot mode)
package cli

import (
	"fmt"
	"io"
	"os"
)

// version is set at build time using:
//
//	go build -ldflags "-X github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/cli.version=v1.2.3"
//
// When not set, it defaults to "dev".
var version = "dev"

// Version returns the build-time version string printed by --version.
func Version() string { return version }

// Run parses args, loads configuration, and runs the CLI. It returns the
// process exit code and never panics on user input.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseCLI(args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		printUsage(stderr)
		return 2
	}

	if cfg.Help.Enabled() {
		printUsage(stdout)
		return 0
	}
	if cfg.Version.Enabled() {
		fmt.Fprintln(stdout, Version())
		return 0
	}

	fc, err := loadFileConfig(cfg.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	cfg, err = cfg.resolve(fc)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	return run(cfg, os.Stdin, stdout, stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "agentchat - streaming chat CLI for the /assist agent protocol")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  agentchat [flags]                 Interactive chat loop.")
	fmt.Fprintln(w, "  agentchat --message <text> [flags] One exchange, then exit.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --url <base-url>            Agent base URL (env AGENTCHAT_URL, default http://localhost:8000).")
	fmt.Fprintln(w, "  --processor-id <id>         Processor id (env AGENTCHAT_PROCESSOR_ID, default test-processor).")
	fmt.Fprintln(w, "  --config <path>             TOML config file (default ~/.agentchat/config.toml).")
	fmt.Fprintln(w, "  --message <text>            One-shot prompt.")
	fmt.Fprintln(w, "  --timeout <duration>        Per-exchange timeout (e.g. 30s, 2m).")
	fmt.Fprintln(w, "  --output-schema <path>      JSON Schema to validate the final answer.")
	fmt.Fprintln(w, "  --history-limit <n>         Max turns kept in the in-memory transcript.")
	fmt.Fprintln(w, "  --exit-commands <csv>       Commands that exit the loop (default exit,quit,/exit,/quit).")
	fmt.Fprintln(w, "  --plain                     Disable styled output.")
	fmt.Fprintln(w, "  --verbose                   Print diagnostics to stderr.")
	fmt.Fprintln(w, "  --version                   Print version.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  agentchat --message \"Hello\"")
	fmt.Fprintln(w, "  AGENTCHAT_URL=http://host:8000 agentchat")
}
