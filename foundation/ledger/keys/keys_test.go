package keys_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
)

const (
	pkHex  = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	pubHex = "188bcf3224a4b231816d3f1643276140918d31de45f7536d760480ba8770380a"
	addr   = "GSC1fae85851bdf5c9f49923722ce38f3c1d"
)

// =============================================================================

func Test_Generate(t *testing.T) {
	pk, err := keys.Generate()
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	if len(pk) != 64 {
		t.Fatalf("Should generate 64 hex characters: got %d.", len(pk))
	}

	if string(pk) != strings.ToLower(string(pk)) {
		t.Fatalf("Should generate lowercase hex.")
	}

	if _, err := keys.ParsePrivateKey(string(pk)); err != nil {
		t.Fatalf("Should generate a parseable key: %s", err)
	}

	if !pk.Address().IsAddress() {
		t.Fatalf("Should derive a well formed address: got %s.", pk.Address())
	}

	pk2, err := keys.Generate()
	if err != nil {
		t.Fatalf("Should be able to generate a second key: %s", err)
	}

	if pk == pk2 {
		t.Fatalf("Should generate distinct keys.")
	}
}

func Test_Derivation(t *testing.T) {
	pk, err := keys.ParsePrivateKey(pkHex)
	if err != nil {
		t.Fatalf("Should be able to parse the key: %s", err)
	}

	if pub := pk.PublicKey(); pub != pubHex {
		t.Logf("got: %s", pub)
		t.Logf("exp: %s", pubHex)
		t.Fatalf("Should derive the known public key.")
	}

	if a := pk.Address(); a != addr {
		t.Logf("got: %s", a)
		t.Logf("exp: %s", addr)
		t.Fatalf("Should derive the known address.")
	}

	if pk.Address() != pk.Address() {
		t.Fatalf("Should derive the same address every time.")
	}
}

func Test_ParsePrivateKey(t *testing.T) {
	pk, err := keys.ParsePrivateKey(strings.ToUpper(pkHex))
	if err != nil {
		t.Fatalf("Should accept uppercase hex: %s", err)
	}
	if string(pk) != pkHex {
		t.Fatalf("Should normalize the key to lowercase.")
	}

	if _, err := keys.ParsePrivateKey(pkHex[:63]); !errors.Is(err, keys.ErrInvalidKeyFormat) {
		t.Fatalf("Should reject a 63 character key.")
	}

	if _, err := keys.ParsePrivateKey(pkHex + "0"); !errors.Is(err, keys.ErrInvalidKeyFormat) {
		t.Fatalf("Should reject a 65 character key.")
	}

	if _, err := keys.ParsePrivateKey(strings.Repeat("z", 64)); !errors.Is(err, keys.ErrInvalidKeyFormat) {
		t.Fatalf("Should reject non hex characters.")
	}

	if _, err := keys.ParsePrivateKey(""); !errors.Is(err, keys.ErrInvalidKeyFormat) {
		t.Fatalf("Should reject an empty key.")
	}
}

func Test_Address(t *testing.T) {
	tt := []struct {
		name  string
		value string
		want  bool
	}{
		{"full", addr, true},
		{"short payload", "GSC1" + pkHex[:31], true},
		{"too short", "GSC1" + pkHex[:30], false},
		{"too long", "GSC1" + pkHex[:33], false},
		{"no prefix", pkHex[:36], false},
		{"bad payload", "GSC1" + strings.Repeat("x", 32), false},
		{"prefix only", "GSC1", false},
		{"empty", "", false},
		{"genesis", "GENESIS", false},
		{"coinbase", "COINBASE", false},
	}

	for _, tst := range tt {
		if got := keys.Address(tst.value).IsAddress(); got != tst.want {
			t.Errorf("Should report IsAddress=%v for %s case.", tst.want, tst.name)
		}
	}

	if !keys.Genesis.IsSystem() || !keys.Coinbase.IsSystem() {
		t.Fatalf("Should treat GENESIS and COINBASE as system addresses.")
	}

	if keys.Address(addr).IsSystem() {
		t.Fatalf("Should not treat a wallet address as a system address.")
	}
}

func Test_ToAddress(t *testing.T) {
	if _, err := keys.ToAddress(addr); err != nil {
		t.Fatalf("Should accept a well formed address: %s", err)
	}

	if _, err := keys.ToAddress("GENESIS"); err != nil {
		t.Fatalf("Should accept the genesis address: %s", err)
	}

	if _, err := keys.ToAddress("COINBASE"); err != nil {
		t.Fatalf("Should accept the coinbase address: %s", err)
	}

	if _, err := keys.ToAddress("bogus"); err == nil {
		t.Fatalf("Should reject a malformed address.")
	}
}
