package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/txbuilder"
)

var createAccountCommand = cli.Command{
	Name:      "create-account",
	Category:  "Transactions",
	Usage:     "Mint a fresh account controlled by the given address.",
	ArgsUsage: "owner-address amount",
	Action:    actionDecorator(createAccount),
}

func createAccount(c *cli.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return cli.ShowCommandHelp(c, "create-account")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	owner, err := iotago.ParseBech32Address(e.hrp, args.Get(0))
	if err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}

	var amt uint64
	if _, err := fmt.Sscanf(args.Get(1), "%d", &amt); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	provided := []iotago.Output{
		&iotago.AccountOutput{
			Amount: amt,
			// AccountID is left zero: the resolver derives the real id
			// from the OutputId of the first unclaimed input it selects
			// for this output (§4.2 fresh-mint convention).
			UnlockConds: iotago.UnlockConditionSet{
				iotago.StateControllerAddressUnlockCondition{Address: owner},
				iotago.GovernorAddressUnlockCondition{Address: owner},
			},
		},
	}

	remAddr, err := e.defaultRemainderAddress()
	if err != nil {
		return err
	}

	prepared, err := txbuilder.New(e.inputs, provided, e.params).
		WithRemainderAddress(remAddr).
		Finish()
	if err != nil {
		return err
	}

	printJSON(prepared)
	return nil
}
