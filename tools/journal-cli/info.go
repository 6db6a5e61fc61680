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

	"github.com/Fantom-foundation/avmstate/tree"
	"github.com/Fantom-foundation/avmstate/worldstate/ldb"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var infoCommand = cli.Command{
	Action: getInfo,
	Name:   "info",
	Usage:  "prints summary information about a world state DB",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
	},
}

func getInfo(ctx *cli.Context) (err error) {
	logger, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

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

	out := ctx.App.Writer
	fmt.Fprintf(out, "Block:      %d\n", store.BlockNumber())
	fmt.Fprintf(out, "Operations: %d\n", store.NumOperations())
	fmt.Fprintf(out, "Contracts:  %d\n", store.NumContracts())
	fmt.Fprintf(out, "Classes:    %d\n", store.NumClasses())
	for _, id := range tree.AllTrees() {
		info, err := store.GetTreeInfo(ctx.Context, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-22s root %v, %d leaves, depth %d\n", id.String()+":", info.Root, info.Size, info.Depth)
	}
	return nil
}
