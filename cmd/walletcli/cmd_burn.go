package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/txbuilder"
)

var burnCommand = cli.Command{
	Name:      "burn",
	Category:  "Transactions",
	Usage:     "Burn an NFT identified by its 32-byte hex id instead of re-emitting it.",
	ArgsUsage: "nft-id-hex",
	Action:    actionDecorator(burn),
}

func burn(c *cli.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return cli.ShowCommandHelp(c, "burn")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	raw, err := hex.DecodeString(args.Get(0))
	if err != nil || len(raw) != 32 {
		return fmt.Errorf("nft-id-hex must be 32 bytes of hex")
	}
	var id iotago.NftId
	copy(id[:], raw)

	remAddr, err := e.defaultRemainderAddress()
	if err != nil {
		return err
	}

	plan := txbuilder.NewBurn().Nft(id)

	prepared, err := txbuilder.New(e.inputs, nil, e.params).
		WithBurn(plan).
		WithRemainderAddress(remAddr).
		Finish()
	if err != nil {
		return err
	}

	printJSON(prepared)
	return nil
}
