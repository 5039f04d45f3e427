package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/iotaledger/iota-sdk-go/iotago"
)

// candidateInput is the on-disk shape of one spendable Basic output a
// wallet process knows about. Stateful chain outputs (Account/Nft/
// Foundry) aren't modeled here: a real wallet backend would hand the
// builder its own live iotago.Input values directly rather than round
// tripping them through a flat file, so this loader only needs to cover
// the common "spend plain funds" case a scripted CLI exercises.
type candidateInput struct {
	OutputId string `json:"outputId"`
	Amount   uint64 `json:"amount"`
	Mana     uint64 `json:"mana"`
	Address  string `json:"address"`
	Slot     uint32 `json:"includedSlot"`
}

// loadCandidateInputs reads a JSON array of candidateInput from path and
// turns each into a Basic iotago.Input addressed with hrp.
func loadCandidateInputs(path, hrp string) ([]iotago.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var entries []candidateInput
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	inputs := make([]iotago.Input, 0, len(entries))
	for _, e := range entries {
		outId, err := parseOutputId(e.OutputId)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", e.OutputId, err)
		}
		addr, err := iotago.ParseBech32Address(hrp, e.Address)
		if err != nil {
			return nil, fmt.Errorf("input %q: parsing address: %w", e.OutputId, err)
		}

		inputs = append(inputs, iotago.Input{
			OutputId: outId,
			Output: &iotago.BasicOutput{
				Amount: e.Amount,
				Mana:   e.Mana,
				UnlockConds: iotago.UnlockConditionSet{
					iotago.AddressUnlockCondition{Address: addr},
				},
			},
			OutputMetadata: iotago.OutputMetadata{IncludedSlot: e.Slot},
		})
	}
	return inputs, nil
}

// parseOutputId accepts "<64-hex-char-txid>:<index>" (the §3 OutputId
// wire form in hex, colon-separated from its output index).
func parseOutputId(s string) (iotago.OutputId, error) {
	var out iotago.OutputId
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return out, fmt.Errorf("expected <txid-hex>:<index>")
	}

	raw, err := hex.DecodeString(parts[0])
	if err != nil {
		return out, fmt.Errorf("decoding transaction id: %w", err)
	}
	if len(raw) != len(out.TransactionId) {
		return out, fmt.Errorf("transaction id must be %d bytes, got %d", len(out.TransactionId), len(raw))
	}
	copy(out.TransactionId[:], raw)

	var idx uint64
	if _, err := fmt.Sscanf(parts[1], "%d", &idx); err != nil {
		return out, fmt.Errorf("decoding index: %w", err)
	}
	out.Index = uint16(idx)
	return out, nil
}
