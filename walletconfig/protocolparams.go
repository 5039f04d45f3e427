package walletconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iotaledger/iota-sdk-go/params"
)

// protocolParamsFile is the on-disk JSON shape of the protocol-parameters
// cache: one flat object whose nested parameter groups are encoded with
// the params struct field names. It is not the nested, string-encoded
// node-info shape nodeclient.Client decodes over HTTP.
type protocolParamsFile struct {
	Bech32HRP              string                        `json:"bech32Hrp"`
	TokenSupply            uint64                        `json:"tokenSupply"`
	MaxInputs              uint16                        `json:"maxInputsCount"`
	MaxOutputs             uint16                        `json:"maxOutputsCount"`
	StorageScoreParameters params.StorageScoreParameters `json:"storageScoreParameters"`
	ManaParameters         params.ManaParameters         `json:"manaParameters"`
	WorkScoreParameters    params.WorkScoreParameters    `json:"workScoreParameters"`
	CommittableAgeRange    params.CommittableAgeRange    `json:"committableAgeRange"`
}

// LoadProtocolParameters reads protocol_parameters from path, the local
// cache consulted when the node named by NodeAddr can't be reached at
// startup (§6.1 treats protocol parameters as opaque config loaded
// independently of command-line flags).
func LoadProtocolParameters(path string) (params.ProtocolParameters, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return params.ProtocolParameters{}, fmt.Errorf("walletconfig: reading %s: %w", path, err)
	}

	var f protocolParamsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return params.ProtocolParameters{}, fmt.Errorf("walletconfig: parsing %s: %w", path, err)
	}

	pp := params.ProtocolParameters{
		Bech32HRP:              f.Bech32HRP,
		TokenSupply:            f.TokenSupply,
		MaxInputs:              f.MaxInputs,
		MaxOutputs:             f.MaxOutputs,
		StorageScoreParameters: f.StorageScoreParameters,
		ManaParameters:         f.ManaParameters,
		WorkScoreParameters:    f.WorkScoreParameters,
		CommittableAgeRange:    f.CommittableAgeRange,
	}
	return pp.WithDefaults(), nil
}

// SaveProtocolParameters writes pp to path in the protocolParamsFile shape
// LoadProtocolParameters expects back, letting a wallet refresh its local
// cache after a successful nodeclient fetch.
func SaveProtocolParameters(path string, pp params.ProtocolParameters) error {
	f := protocolParamsFile{
		Bech32HRP:              pp.Bech32HRP,
		TokenSupply:            pp.TokenSupply,
		MaxInputs:              pp.MaxInputs,
		MaxOutputs:             pp.MaxOutputs,
		StorageScoreParameters: pp.StorageScoreParameters,
		ManaParameters:         pp.ManaParameters,
		WorkScoreParameters:    pp.WorkScoreParameters,
		CommittableAgeRange:    pp.CommittableAgeRange,
	}
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
