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
	"fmt"
	"io"

	"github.com/Fantom-foundation/avmstate/common/interrupt"
	"github.com/Fantom-foundation/avmstate/state"
	"github.com/Fantom-foundation/avmstate/trace"
	"github.com/Fantom-foundation/avmstate/tree"
	"github.com/Fantom-foundation/avmstate/worldstate"
	"github.com/Fantom-foundation/avmstate/worldstate/ldb"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	scriptFileFlag = cli.StringFlag{
		Name:     "script",
		Usage:    "the JSON file describing the calls to execute",
		Required: true,
	}
	merkleFlag = cli.BoolFlag{
		Name:  "merkle",
		Usage: "maintain the trees and produce witnesses for all side effects",
	}
	unlimitedFlag = cli.BoolFlag{
		Name:  "unlimited",
		Usage: "disable the per-transaction side effect limits",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "print every traced side effect",
	}
)

var runCommand = cli.Command{
	Action: runScript,
	Name:   "run",
	Usage:  "executes a call script on a world state DB and prints the resulting trace",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&scriptFileFlag,
		&merkleFlag,
		&unlimitedFlag,
		&verboseFlag,
	},
}

func runScript(ctx *cli.Context) (err error) {
	logger, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := readJSON[script](ctx.String(scriptFileFlag.Name))
	if err != nil {
		return err
	}

	dir := ctx.String(dbDirectoryFlag.Name)
	store, err := ldb.OpenExisting(ctx.Context, dir, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeError := store.Close(); closeError != nil {
			if err == nil {
				err = closeError
			} else {
				logger.Error("failure closing DB", zap.Error(closeError))
			}
		}
	}()
	db, err := worldstate.NewCachedWorldState(store, worldstate.DefaultCacheConfig())
	if err != nil {
		return err
	}

	limits := trace.DefaultLimits()
	if ctx.Bool(unlimitedFlag.Name) {
		limits = trace.Unlimited()
	}
	e := &executor{
		db: db,
		config: state.Config{
			DoMerkleOperations: ctx.Bool(merkleFlag.Name),
			Logger:             logger,
		},
		limits: limits,
		log:    logger.Named("script"),
	}
	c, stop := interrupt.Register(ctx.Context, logger)
	defer stop()
	res, err := e.run(c, s)
	if err != nil {
		return err
	}
	return printResult(ctx.App.Writer, res, ctx.Bool(verboseFlag.Name))
}

func printResult(out io.Writer, res *result, verbose bool) error {
	for i, reverted := range res.reverted {
		status := "succeeded"
		if reverted {
			status = "reverted"
		}
		fmt.Fprintf(out, "Call %d %s\n", i, status)
	}

	counts := res.trace.CountByKind()
	fmt.Fprintf(out, "Side effects: %d\n", res.trace.Counter())
	for _, kind := range res.trace.Kinds() {
		fmt.Fprintf(out, "  %-22s %d\n", kind.String()+":", counts[kind])
	}
	if verbose {
		for _, entry := range res.trace.Entries() {
			suffix := ""
			if entry.Reverted {
				suffix = " (reverted)"
			}
			fmt.Fprintf(out, "  #%d %v %v%s\n", entry.Counter, entry.Kind, entry.Contract, suffix)
		}
	}

	if !res.journal.DoMerkleOperations() {
		return nil
	}
	for _, id := range tree.AllTrees() {
		root, err := res.journal.TreeRoot(id)
		if err != nil {
			return err
		}
		size, err := res.journal.TreeSize(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-22s root %v, %d leaves\n", id.String()+":", root, size)
	}
	return nil
}
