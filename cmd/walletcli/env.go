package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
	"github.com/iotaledger/iota-sdk-go/walletconfig"
)

// env bundles the per-invocation state every subcommand needs: the
// active protocol parameters and the candidate input set loaded from
// disk.
type env struct {
	hrp    string
	params params.ProtocolParameters
	inputs []iotago.Input
}

func loadEnv(c *cli.Context) (*env, error) {
	hrp := c.GlobalString("bech32hrp")
	if hrp == "" {
		hrp = walletconfig.DefaultBech32HRP
	}

	ppPath := c.GlobalString("protocolparams")
	if ppPath == "" {
		ppPath = walletconfig.DefaultProtocolParamsFile
	}
	pp, err := walletconfig.LoadProtocolParameters(ppPath)
	if err != nil {
		return nil, fmt.Errorf("loading protocol parameters: %w", err)
	}
	pp.Bech32HRP = hrp

	inputsPath := c.GlobalString("inputs")
	if inputsPath == "" {
		return nil, fmt.Errorf("--inputs is required")
	}
	ins, err := loadCandidateInputs(inputsPath, hrp)
	if err != nil {
		return nil, fmt.Errorf("loading candidate inputs: %w", err)
	}

	return &env{hrp: hrp, params: pp, inputs: ins}, nil
}

// defaultRemainderAddress returns the address that controls the first
// candidate input, used as the change destination when a subcommand
// doesn't take an explicit --remainder flag. Mirrors the common wallet
// convention of routing change back to the spending address.
func (e *env) defaultRemainderAddress() (iotago.Address, error) {
	for _, in := range e.inputs {
		if ac := in.Output.Conditions().Address(); ac != nil {
			return ac.Address, nil
		}
	}
	return nil, fmt.Errorf("no candidate input carries an address unlock condition to default the remainder to")
}
