// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "the minimum level of logged records (debug, info, warn, error)",
		Value: "warn",
	}
	dbDirectoryFlag = cli.StringFlag{
		Name:     "db",
		Usage:    "the directory of the world state DB",
		Required: true,
	}
)

// newLogger creates the logger selected by the --log-level flag. Debug
// logging uses the human readable development encoding.
func newLogger(ctx *cli.Context) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(ctx.String(logLevelFlag.Name))
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	return config.Build()
}

// readJSON decodes the JSON file at the given path.
func readJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res := new(T)
	if err := json.Unmarshal(data, res); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return res, nil
}
