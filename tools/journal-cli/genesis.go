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
	"context"
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/immutable"
	"github.com/Fantom-foundation/avmstate/common/interrupt"
	"github.com/Fantom-foundation/avmstate/tree"
	"github.com/Fantom-foundation/avmstate/worldstate/ldb"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var genesisFileFlag = cli.StringFlag{
	Name:     "file",
	Usage:    "the JSON file describing the genesis state",
	Required: true,
}

var genesisCommand = cli.Command{
	Action: buildGenesis,
	Name:   "genesis",
	Usage:  "creates a world state DB from a genesis description",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&genesisFileFlag,
	},
}

// genesisFile describes the initial world state. Classes are referenced by
// name from contracts and their updates.
type genesisFile struct {
	Heights        *tree.Heights     `json:"heights,omitempty"`
	Block          uint64            `json:"block"`
	Classes        []genesisClass    `json:"classes"`
	Contracts      []genesisContract `json:"contracts"`
	Storage        []genesisSlot     `json:"storage"`
	Nullifiers     []common.Field    `json:"nullifiers"`
	NoteHashes     []common.Field    `json:"noteHashes"`
	L1ToL2Messages []common.Field    `json:"l1ToL2Messages"`
}

type genesisClass struct {
	Name                 string          `json:"name"`
	ArtifactHash         common.Field    `json:"artifactHash"`
	PrivateFunctionsRoot common.Field    `json:"privateFunctionsRoot"`
	Bytecode             immutable.Bytes `json:"bytecode"`
}

type genesisContract struct {
	Address common.Address `json:"address"`
	Class   string         `json:"class"`
	Salt    common.Field   `json:"salt"`
	Update  *genesisUpdate `json:"update,omitempty"`
}

type genesisUpdate struct {
	Class         string `json:"class"`
	BlockOfChange uint64 `json:"blockOfChange"`
}

type genesisSlot struct {
	Contract common.Address `json:"contract"`
	Slot     common.Field   `json:"slot"`
	Value    common.Field   `json:"value"`
}

func buildGenesis(ctx *cli.Context) (err error) {
	logger, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	genesis, err := readJSON[genesisFile](ctx.String(genesisFileFlag.Name))
	if err != nil {
		return err
	}
	heights := tree.DefaultHeights()
	if genesis.Heights != nil {
		heights = *genesis.Heights
	}

	dir := ctx.String(dbDirectoryFlag.Name)
	store, err := ldb.Open(ctx.Context, dir, heights, logger)
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
	if store.NumOperations() != 0 {
		return fmt.Errorf("DB in %s is not empty", dir)
	}

	c, stop := interrupt.Register(ctx.Context, logger)
	defer stop()
	if err := applyGenesis(c, store, genesis); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Created world state with %d contracts and %d classes at block %d\n",
		store.NumContracts(), store.NumClasses(), store.BlockNumber())
	return nil
}

// applyGenesis records the operations described by the genesis file. An
// interrupted genesis leaves the operations recorded so far in the store.
func applyGenesis(ctx context.Context, store *ldb.Store, genesis *genesisFile) error {
	if err := store.SetBlockNumber(ctx, genesis.Block); err != nil {
		return err
	}
	classes := map[string]common.Field{}
	for _, class := range genesis.Classes {
		if _, found := classes[class.Name]; found {
			return fmt.Errorf("duplicated class name %q", class.Name)
		}
		id, err := store.RegisterContractClass(ctx, common.ContractClass{
			ArtifactHash:         class.ArtifactHash,
			PrivateFunctionsRoot: class.PrivateFunctionsRoot,
			PackedBytecode:       class.Bytecode,
		})
		if err != nil {
			return fmt.Errorf("failed to register class %q: %w", class.Name, err)
		}
		classes[class.Name] = id
	}
	classID := func(name string) (common.Field, error) {
		id, found := classes[name]
		if !found {
			return common.Zero, fmt.Errorf("unknown class %q", name)
		}
		return id, nil
	}

	for _, contract := range genesis.Contracts {
		if err := interrupt.Check(ctx, fmt.Sprintf("%d operations", store.NumOperations())); err != nil {
			return err
		}
		id, err := classID(contract.Class)
		if err != nil {
			return err
		}
		instance := common.ContractInstance{
			Address:         contract.Address,
			Salt:            contract.Salt,
			OriginalClassID: id,
		}
		if err := store.DeployContract(ctx, instance); err != nil {
			return fmt.Errorf("failed to deploy %v: %w", contract.Address, err)
		}
	}
	for _, contract := range genesis.Contracts {
		if contract.Update == nil {
			continue
		}
		next, err := classID(contract.Update.Class)
		if err != nil {
			return err
		}
		update := common.ContractUpdate{NextClassID: next, BlockOfChange: contract.Update.BlockOfChange}
		if err := store.ScheduleContractUpdate(ctx, contract.Address, update); err != nil {
			return fmt.Errorf("failed to schedule update of %v: %w", contract.Address, err)
		}
	}

	for _, slot := range genesis.Storage {
		if err := interrupt.Check(ctx, fmt.Sprintf("%d operations", store.NumOperations())); err != nil {
			return err
		}
		if err := store.SetStorage(ctx, slot.Contract, slot.Slot, slot.Value); err != nil {
			return err
		}
	}
	for _, nullifier := range genesis.Nullifiers {
		if err := store.InsertNullifier(ctx, nullifier); err != nil {
			return err
		}
	}
	for _, noteHash := range genesis.NoteHashes {
		if err := store.AppendNoteHash(ctx, noteHash); err != nil {
			return err
		}
	}
	for _, msg := range genesis.L1ToL2Messages {
		if err := store.AppendL1ToL2Message(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}
