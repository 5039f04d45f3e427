package walletconfig

import (
	"path/filepath"
	"testing"

	"github.com/iotaledger/iota-sdk-go/params"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Parse(&cfg, []string{"--nodeaddr", "https://custom.example.org", "--bech32hrp", "atoi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NodeAddr != "https://custom.example.org" {
		t.Errorf("NodeAddr = %q, want override", cfg.NodeAddr)
	}
	if cfg.Bech32HRP != "atoi" {
		t.Errorf("Bech32HRP = %q, want %q", cfg.Bech32HRP, "atoi")
	}
	if cfg.ProtocolParamsFile != DefaultProtocolParamsFile {
		t.Errorf("ProtocolParamsFile = %q, want default preserved", cfg.ProtocolParamsFile)
	}
}

func TestValidateRejectsEmptyNodeAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NodeAddr = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an empty NodeAddr")
	}
}

func TestSaveAndLoadProtocolParametersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "protocol_parameters.json")

	pp := params.ProtocolParameters{
		Bech32HRP:   "iota",
		TokenSupply: 1_813_620_509_061_365,
		MaxInputs:   128,
		MaxOutputs:  128,
		StorageScoreParameters: params.StorageScoreParameters{
			StorageCost: 100,
			FactorData:  1,
		},
	}

	if err := SaveProtocolParameters(path, pp); err != nil {
		t.Fatalf("SaveProtocolParameters: %v", err)
	}

	got, err := LoadProtocolParameters(path)
	if err != nil {
		t.Fatalf("LoadProtocolParameters: %v", err)
	}
	if got.Bech32HRP != pp.Bech32HRP || got.TokenSupply != pp.TokenSupply {
		t.Errorf("round-tripped params = %+v, want %+v", got, pp)
	}
	if got.StorageScoreParameters.StorageCost != 100 {
		t.Errorf("StorageCost = %d, want 100", got.StorageScoreParameters.StorageCost)
	}
}
