package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/txbuilder"
)

var sendCommand = cli.Command{
	Name:      "send",
	Category:  "Transactions",
	Usage:     "Send an amount to a bech32 address, sourced from --inputs.",
	ArgsUsage: "to-address amount",
	Action:    actionDecorator(send),
}

func send(c *cli.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return cli.ShowCommandHelp(c, "send")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	toAddr, err := iotago.ParseBech32Address(e.hrp, args.Get(0))
	if err != nil {
		return fmt.Errorf("invalid to-address: %w", err)
	}

	var amt uint64
	if _, err := fmt.Sscanf(args.Get(1), "%d", &amt); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	provided := []iotago.Output{
		&iotago.BasicOutput{
			Amount: amt,
			UnlockConds: iotago.UnlockConditionSet{
				iotago.AddressUnlockCondition{Address: toAddr},
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
