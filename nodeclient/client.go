// Package nodeclient is the HTTP collaborator a running wallet wires the
// Transaction Builder to: it fetches the node's current protocol
// parameters and submits finished blocks, the same supporting role
// lnwallet/dcrwallet's SPVSyncer plays for a DcrWallet instance, minus the
// peer-to-peer plumbing dcrlnd needs and this REST-backed ledger doesn't.
package nodeclient

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iotaledger/iota-sdk-go/iotago"
	"github.com/iotaledger/iota-sdk-go/params"
)

// Config describes how to reach one node's core API.
type Config struct {
	// BaseURL is the node's API root, e.g. "https://node.example.org".
	BaseURL string
	// Timeout bounds every request this client issues. Zero means
	// DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the client used to issue requests; nil uses
	// http.DefaultClient's transport with Timeout applied.
	HTTPClient *http.Client
}

// DefaultTimeout is used when a Config leaves Timeout unset.
const DefaultTimeout = 15 * time.Second

// Client talks to a single node's core REST API.
type Client struct {
	cfg Config
	hc  *http.Client
}

// New returns a Client for cfg.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, hc: hc}
}

// infoResponse mirrors the subset of a node's /api/core/v3/info body this
// client actually reads. Unrecognized fields are ignored, the same
// "opaque config, recognized options enumerated" framing params.ProtocolParameters
// itself documents.
type infoResponse struct {
	Protocol struct {
		Bech32Hrp   string `json:"bech32Hrp"`
		TokenSupply string `json:"tokenSupply"`
		Parameters  struct {
			StorageScore struct {
				StorageCost          uint64 `json:"storageCost,string"`
				FactorData           uint64 `json:"factorData"`
				FactorKey            uint64 `json:"factorKey"`
				FactorBlockIssuer    uint64 `json:"factorBlockIssuerKey"`
				FactorStaking        uint64 `json:"factorStakingFeature"`
				FactorDelegation     uint64 `json:"factorDelegation"`
				OffsetOutputOverhead uint64 `json:"offsetOutputOverhead,string"`
			} `json:"storageScoreParameters"`
			Mana struct {
				GenerationRate               uint64   `json:"generationRate"`
				GenerationRateExponent       uint64   `json:"generationRateExponent"`
				DecayFactors                 []uint64 `json:"decayFactors"`
				DecayFactorEpochsSum         uint64   `json:"decayFactorEpochsSum"`
				DecayFactorEpochsSumExponent uint64   `json:"decayFactorEpochsSumExponent"`
				AnnualDecayFactorPercentage  uint64   `json:"annualDecayFactorPercentage"`
			} `json:"manaParameters"`
			WorkScore struct {
				Basic      uint64 `json:"basic"`
				Account    uint64 `json:"account"`
				Nft        uint64 `json:"nft"`
				Foundry    uint64 `json:"foundry"`
				Delegation uint64 `json:"delegation"`
				Anchor     uint64 `json:"anchor"`
				PerByte    uint64 `json:"block"`
			} `json:"workScoreParameters"`
			SlotsPerEpochExponent uint64 `json:"slotsPerEpochExponent"`
			MaxInputs             uint16 `json:"maxInputsCount"`
			MaxOutputs            uint16 `json:"maxOutputsCount"`
			MinCommittableAge     uint32 `json:"minCommittableAge"`
			MaxCommittableAge     uint32 `json:"maxCommittableAge"`
		} `json:"parameters"`
	} `json:"protocolParameters"`
}

// FetchProtocolParameters retrieves and decodes the node's current
// protocol parameters (§6.1's "opaque config" populated from the node's
// info endpoint rather than flags).
func (c *Client) FetchProtocolParameters(ctx context.Context) (params.ProtocolParameters, error) {
	var body infoResponse
	if err := c.getJSON(ctx, "/api/core/v3/info", &body); err != nil {
		return params.ProtocolParameters{}, err
	}

	p := body.Protocol
	supply, err := parseUint(p.TokenSupply)
	if err != nil {
		return params.ProtocolParameters{}, fmt.Errorf("nodeclient: decoding tokenSupply: %w", err)
	}

	pp := params.ProtocolParameters{
		Bech32HRP:   p.Bech32Hrp,
		TokenSupply: supply,
		MaxInputs:   p.Parameters.MaxInputs,
		MaxOutputs:  p.Parameters.MaxOutputs,
		StorageScoreParameters: params.StorageScoreParameters{
			StorageCost:          p.Parameters.StorageScore.StorageCost,
			FactorData:           p.Parameters.StorageScore.FactorData,
			FactorKey:            p.Parameters.StorageScore.FactorKey,
			FactorBlockIssuer:    p.Parameters.StorageScore.FactorBlockIssuer,
			FactorStaking:        p.Parameters.StorageScore.FactorStaking,
			FactorDelegation:     p.Parameters.StorageScore.FactorDelegation,
			OffsetOutputOverhead: p.Parameters.StorageScore.OffsetOutputOverhead,
		},
		ManaParameters: params.ManaParameters{
			GenerationRate:               p.Parameters.Mana.GenerationRate,
			GenerationRateExponent:       p.Parameters.Mana.GenerationRateExponent,
			DecayFactors:                 p.Parameters.Mana.DecayFactors,
			DecayFactorEpochsSum:         p.Parameters.Mana.DecayFactorEpochsSum,
			DecayFactorEpochsSumExponent: p.Parameters.Mana.DecayFactorEpochsSumExponent,
			AnnualDecayFactorPercentage:  p.Parameters.Mana.AnnualDecayFactorPercentage,
			SlotsPerEpochExponent:        p.Parameters.SlotsPerEpochExponent,
		},
		WorkScoreParameters: params.WorkScoreParameters{
			Basic:      p.Parameters.WorkScore.Basic,
			Account:    p.Parameters.WorkScore.Account,
			Nft:        p.Parameters.WorkScore.Nft,
			Foundry:    p.Parameters.WorkScore.Foundry,
			Delegation: p.Parameters.WorkScore.Delegation,
			Anchor:     p.Parameters.WorkScore.Anchor,
			PerByte:    p.Parameters.WorkScore.PerByte,
		},
		CommittableAgeRange: params.CommittableAgeRange{
			Min: p.Parameters.MinCommittableAge,
			Max: p.Parameters.MaxCommittableAge,
		},
	}
	return pp.WithDefaults(), nil
}

// SubmitBlock posts a fully assembled, signed block to the node and
// returns the resulting block id.
func (c *Client) SubmitBlock(ctx context.Context, block []byte) (iotago.Hash256, error) {
	var out iotago.Hash256

	url := c.cfg.BaseURL + "/api/core/v3/blocks"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(block))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.hc.Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return out, statusErr(resp.StatusCode, respBody)
	}

	var decoded struct {
		BlockId string `json:"blockId"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return out, fmt.Errorf("nodeclient: decoding submit-block response: %w", err)
	}

	raw, err := hex.DecodeString(trimHexPrefix(decoded.BlockId))
	if err != nil {
		return out, fmt.Errorf("nodeclient: decoding blockId: %w", err)
	}
	copy(out[:], raw)

	log.Debugf("submitted block, id %s", decoded.BlockId)
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	url := c.cfg.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return statusErr(resp.StatusCode, body)
	}
	return json.Unmarshal(body, v)
}

func statusErr(code int, body []byte) error {
	if code == http.StatusNotFound {
		return ErrNotFound
	}
	return &HttpStatusError{StatusCode: code, Body: string(body)}
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	var v uint64
	_, err := fmt.Sscanf(s, "%d", &v)
	return v, err
}
