// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"github.com/jax-ravennet/rvnspv/corelog"
	"github.com/rs/zerolog"
)

// parseLogLevel maps the configured log-level string to a zerolog level,
// falling back to Info on anything unrecognized.
func parseLogLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger builds the single zerolog.Logger threaded into peer.Config and
// every goroutine a Peer spawns, per these options' log_level/log_file.
func (o *Options) NewLogger() zerolog.Logger {
	logCfg := corelog.Config{}.Default()
	logCfg.FileLoggingEnabled = o.LogFile != ""
	if logCfg.FileLoggingEnabled {
		logCfg.Directory, logCfg.Filename = splitLogFile(o.LogFile)
	}
	return corelog.New("peer", parseLogLevel(o.LogLevel), logCfg)
}

func splitLogFile(path string) (dir, file string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i], path[i+1:]
		}
	}
	return ".", path
}
