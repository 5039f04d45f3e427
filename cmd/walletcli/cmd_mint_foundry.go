package main

import (
	"fmt"
	"math/big"

	"github.com/urfave/cli"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/txbuilder"
)

var mintFoundryCommand = cli.Command{
	Name:      "mint-foundry",
	Category:  "Transactions",
	Usage:     "Mint a fresh foundry under an existing account, with max-supply as its token cap and no tokens minted yet.",
	ArgsUsage: "owner-account-address amount serial-number max-supply",
	Action:    actionDecorator(mintFoundry),
}

func mintFoundry(c *cli.Context) error {
	args := c.Args()
	if len(args) != 4 {
		return cli.ShowCommandHelp(c, "mint-foundry")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	ownerAddr, err := iotago.ParseBech32Address(e.hrp, args.Get(0))
	if err != nil {
		return fmt.Errorf("invalid owner account address: %w", err)
	}
	accountAddr, ok := ownerAddr.(iotago.AccountAddress)
	if !ok {
		return fmt.Errorf("owner-account-address must be an account address")
	}

	var amt uint64
	if _, err := fmt.Sscanf(args.Get(1), "%d", &amt); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	var serial uint64
	if _, err := fmt.Sscanf(args.Get(2), "%d", &serial); err != nil {
		return fmt.Errorf("invalid serial number: %w", err)
	}
	maxSupply, ok := new(big.Int).SetString(args.Get(3), 10)
	if !ok {
		return fmt.Errorf("invalid max-supply: %q", args.Get(3))
	}

	provided := []iotago.Output{
		&iotago.FoundryOutput{
			Amount:      amt,
			AccountAddr: accountAddr,
			SerialNum:   uint32(serial),
			Scheme: iotago.SimpleTokenScheme{
				MintedCoins: new(big.Int),
				MeltedCoins: new(big.Int),
				MaxSupply:   maxSupply,
			},
			UnlockConds: iotago.UnlockConditionSet{
				iotago.ImmutableAccountAddressUnlockCondition{Address: accountAddr},
			},
		},
	}

	remAddr, err := e.defaultRemainderAddress()
	if err != nil {
		return err
	}

	// Minting pulls in the owning account automatically: the resolver
	// treats a fresh Foundry's owner as an Account requirement and bumps
	// its foundry_counter itself, so the caller never hands back a
	// transitioned account output here.
	prepared, err := txbuilder.New(e.inputs, provided, e.params).
		WithRemainderAddress(remAddr).
		Finish()
	if err != nil {
		return err
	}

	printJSON(prepared)
	return nil
}
