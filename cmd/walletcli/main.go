// Command walletcli is a thin, scripted front end over the Transaction
// Builder: one subcommand per common operation (send, mint-nft,
// mint-foundry, create-account, burn), the same role cmd/dcrlncli plays
// for dcrlnd's daemon. The interactive prompt loop a full wallet CLI
// would have is out of scope; every subcommand here takes its inputs as
// flags/args and exits.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/iotaledger/iota-sdk-go/walletconfig"
)

func main() {
	app := cli.NewApp()
	app.Name = "walletcli"
	app.Usage = "build IOTA-style transactions against a local candidate input set"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "protocolparams",
			Value: walletconfig.DefaultProtocolParamsFile,
			Usage: "path to a cached protocol_parameters.json",
		},
		cli.StringFlag{
			Name:  "bech32hrp",
			Value: walletconfig.DefaultBech32HRP,
			Usage: "bech32 human-readable part, overrides the cached value",
		},
		cli.StringFlag{
			Name:  "inputs",
			Usage: "path to a JSON file listing candidate inputs",
		},
	}
	app.Commands = []cli.Command{
		sendCommand,
		mintNftCommand,
		mintFoundryCommand,
		createAccountCommand,
		burnCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "walletcli: %v\n", err)
		os.Exit(1)
	}
}

// actionDecorator wraps a subcommand so a returned error is surfaced as a
// CLI exit error, matching dcrlncli's actionDecorator.
func actionDecorator(f func(*cli.Context) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		if err := f(c); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	}
}

// printJSON pretty-prints v to stdout, the walletcli analogue of
// dcrlncli's printRespJSON.
func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "walletcli: marshaling result: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
