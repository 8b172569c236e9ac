// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package config parses the command-line flags and optional YAML file for
// the rvnpeerctl demo binary. It is trimmed to what a single peer
// connection needs: which network to speak, which remote to dial, how long
// to wait, and where to log — everything else (wallet, bloom filter,
// persistent address book) is out of scope for this core.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/jax-ravennet/rvnspv/chainparams"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFilename = "rvnpeerctl.yaml"
	defaultLogLevel       = "info"
	defaultNetwork        = "mainnet"
	defaultConnectTimeout = 3
	defaultMessageTimeout = 10
)

var defaultHomeDir = appDataDir("rvnpeerctl")

// Options holds every flag/YAML-key this binary accepts.
type Options struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file" yaml:"-"`

	Network string `long:"network" description:"Network to connect to: mainnet, testnet, regtest" yaml:"network"`
	Connect string `short:"c" long:"connect" description:"Remote peer address, host:port" yaml:"connect"`
	Proxy   string `long:"proxy" description:"SOCKS proxy address to dial the peer through" yaml:"proxy"`

	ConnectTimeout int `long:"connect_timeout" description:"Dial timeout in seconds" yaml:"connect_timeout"`
	MessageTimeout int `long:"message_timeout" description:"Per-message read timeout in seconds" yaml:"message_timeout"`

	LogLevel string `long:"log_level" description:"Log level: trace, debug, info, warn, error" yaml:"log_level"`
	LogFile  string `long:"log_file" description:"Optional log file path; empty disables file logging" yaml:"log_file"`
}

func defaultOptions() Options {
	return Options{
		ConfigFile:     filepath.Join(defaultHomeDir, defaultConfigFilename),
		Network:        defaultNetwork,
		ConnectTimeout: defaultConnectTimeout,
		MessageTimeout: defaultMessageTimeout,
		LogLevel:       defaultLogLevel,
	}
}

// Load parses command-line flags, merges in a YAML config file when present,
// and validates the result. Flags always win over file values.
func Load(args []string) (*Options, error) {
	opts := defaultOptions()

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(opts.ConfigFile); err == nil {
		fileOpts := defaultOptions()
		if err := yaml.Unmarshal(data, &fileOpts); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", opts.ConfigFile, err)
		}
		opts = mergeFileDefaults(opts, fileOpts, args)
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// mergeFileDefaults fills in any option still at its zero/default value from
// the file, but never overrides something the caller explicitly passed on
// the command line. go-flags doesn't report which flags were set, so this
// is deliberately approximate: a flag whose value equals its default is
// treated as unset, so a flag explicitly passed with the default value can
// still be overridden by the file.
func mergeFileDefaults(flagOpts, fileOpts Options, args []string) Options {
	if flagOpts.Connect == "" {
		flagOpts.Connect = fileOpts.Connect
	}
	if flagOpts.Proxy == "" {
		flagOpts.Proxy = fileOpts.Proxy
	}
	if flagOpts.Network == defaultNetwork && fileOpts.Network != "" {
		flagOpts.Network = fileOpts.Network
	}
	if flagOpts.LogLevel == defaultLogLevel && fileOpts.LogLevel != "" {
		flagOpts.LogLevel = fileOpts.LogLevel
	}
	if flagOpts.LogFile == "" {
		flagOpts.LogFile = fileOpts.LogFile
	}
	if flagOpts.ConnectTimeout == defaultConnectTimeout {
		flagOpts.ConnectTimeout = fileOpts.ConnectTimeout
	}
	if flagOpts.MessageTimeout == defaultMessageTimeout {
		flagOpts.MessageTimeout = fileOpts.MessageTimeout
	}
	return flagOpts
}

func (o *Options) validate() error {
	if o.Connect == "" {
		return fmt.Errorf("connect address is required, e.g. --connect=127.0.0.1:8767")
	}
	if _, err := o.ChainParams(); err != nil {
		return err
	}
	return nil
}

// ChainParams resolves the configured network name to its chainparams.Params.
func (o *Options) ChainParams() (chainparams.Params, error) {
	switch o.Network {
	case "mainnet", "":
		return chainparams.MainNetParams, nil
	case "testnet":
		return chainparams.TestNetParams, nil
	case "regtest":
		return chainparams.RegTestParams, nil
	default:
		return chainparams.Params{}, fmt.Errorf("unknown network %q", o.Network)
	}
}

func appDataDir(appName string) string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+appName)
	}
	return "." + appName
}
