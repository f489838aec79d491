package state_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goldstarcoin/ledger/foundation/ledger/database"
	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/keystore"
	"github.com/goldstarcoin/ledger/foundation/ledger/mnemonic"
	"github.com/goldstarcoin/ledger/foundation/ledger/registry"
	"github.com/goldstarcoin/ledger/foundation/ledger/snapshot"
	"github.com/goldstarcoin/ledger/foundation/ledger/state"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	pkHex = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	addr2 = "GSC18dc79feefd3b86e2f9991def0e5ccd9a"
)

// =============================================================================

// badStore fails every operation, standing in for an unreadable disk.
type badStore struct{}

func (badStore) Save(snap snapshot.Snapshot) error { return errors.New("disk full") }
func (badStore) Load() (snapshot.Snapshot, bool, error) {
	return snapshot.Snapshot{}, false, errors.New("corrupted")
}

// captureNotifier records announced transactions.
type captureNotifier struct {
	ch chan database.Tx
}

func (n *captureNotifier) Announce(tx database.Tx) { n.ch <- tx }

// newEngine constructs an engine over a fresh in memory store.
func newEngine(t *testing.T) *state.State {
	t.Helper()

	st, err := state.New(state.Config{Store: snapshot.NewMemory()})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the engine: %v", failed, err)
	}

	return st
}

// =============================================================================

func Test_GenesisAndReload(t *testing.T) {
	t.Log("Given the need to start from a synthesized genesis and reload state.")
	{
		t.Logf("\tTest 0:\tWhen starting an engine with no prior snapshot.")
		{
			store := snapshot.NewMemory()

			st, err := state.New(state.Config{Store: store})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the engine: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the engine.", success)

			chain := st.Chain()
			if len(chain) != 1 || chain[0].Index != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould synthesize a single genesis block: got %d.", failed, len(chain))
			}
			t.Logf("\t%s\tTest 0:\tShould synthesize a single genesis block.", success)

			gen, exists := st.Genesis()
			if !exists || gen.Miner != keys.Genesis {
				t.Fatalf("\t%s\tTest 0:\tShould expose the genesis block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould expose the genesis block.", success)

			if _, err := st.CreateWallet("alice", ""); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create a wallet: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to create a wallet.", success)

			st2, err := state.New(state.Config{Store: store})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to reload the engine: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to reload the engine.", success)

			if len(st2.Chain()) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould not synthesize a second genesis on reload: got %d blocks.", failed, len(st2.Chain()))
			}
			t.Logf("\t%s\tTest 0:\tShould not synthesize a second genesis on reload.", success)

			if _, exists := st2.WalletByName("alice"); !exists {
				t.Fatalf("\t%s\tTest 0:\tShould reload the wallet registry.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reload the wallet registry.", success)
		}
	}
}

func Test_WalletLifecycle(t *testing.T) {
	t.Log("Given the need to manage wallets end to end.")
	{
		t.Logf("\tTest 0:\tWhen creating and importing wallets.")
		{
			st := newEngine(t)

			if _, err := st.CreateWallet("ab", ""); !errors.Is(err, registry.ErrInvalidName) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a short name: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a short name.", success)

			w, err := st.CreateWallet("alice", "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create a wallet: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to create a wallet.", success)

			if w.IsEncrypted || w.EncodedPrivateKey == "" {
				t.Fatalf("\t%s\tTest 0:\tShould store the raw key without a passphrase.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould store the raw key without a passphrase.", success)

			if _, err := st.CreateWallet("alice", ""); !errors.Is(err, registry.ErrDuplicateName) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a duplicate name: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a duplicate name.", success)

			before := len(st.Wallets())
			if _, err := st.ImportWalletFromKey("mallory", "zz", ""); !errors.Is(err, keys.ErrInvalidKeyFormat) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a malformed key: got %v.", failed, err)
			}
			if len(st.Wallets()) != before {
				t.Fatalf("\t%s\tTest 0:\tShould not register anything on a failed import.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not register anything on a failed import.", success)

			imp, err := st.ImportWalletFromKey("bob", pkHex, "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to import a key: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to import a key.", success)

			if string(imp.Address) != "GSC1"+pkHex[:32] {
				t.Fatalf("\t%s\tTest 0:\tShould derive the address from the key: got %s.", failed, imp.Address)
			}
			t.Logf("\t%s\tTest 0:\tShould derive the address from the key.", success)

			if _, err := st.ImportWalletFromKey("carol", pkHex, ""); !errors.Is(err, registry.ErrDuplicateAddress) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a second wallet on the same address: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a second wallet on the same address.", success)

			if _, err := st.ImportWalletFromMnemonic("dave", []string{"one", "two"}, ""); !errors.Is(err, mnemonic.ErrInvalidMnemonic) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a short phrase: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a short phrase.", success)

			words, err := st.GenerateMnemonic()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to generate a phrase: %v", failed, err)
			}

			rec1, err := st.ImportWalletFromMnemonic("dave", words, "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to import the phrase: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to import the phrase.", success)

			rec2, err := newEngine(t).ImportWalletFromMnemonic("dave", words, "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to import the phrase elsewhere: %v", failed, err)
			}
			if rec1.Address != rec2.Address {
				t.Fatalf("\t%s\tTest 0:\tShould derive the same address from the same phrase.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould derive the same address from the same phrase.", success)
		}

		t.Logf("\tTest 1:\tWhen backing up and restoring a wallet.")
		{
			st := newEngine(t)

			w, err := st.CreateWallet("alice", "hunter2")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create a wallet: %v", failed, err)
			}

			if !w.IsEncrypted {
				t.Fatalf("\t%s\tTest 1:\tShould encrypt the key under a passphrase.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould encrypt the key under a passphrase.", success)

			b, err := st.BackupWallet("alice")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to back the wallet up: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to back the wallet up.", success)

			pk, err := keystore.Decrypt(b.EncodedPrivateKey, "hunter2")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to decrypt the backup: %v", failed, err)
			}
			if pk.Address() != b.Address {
				t.Fatalf("\t%s\tTest 1:\tShould decrypt to the key behind the address.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould decrypt to the key behind the address.", success)

			if _, err := st.BackupWallet("nobody"); !errors.Is(err, state.ErrUnknownWallet) {
				t.Fatalf("\t%s\tTest 1:\tShould reject a backup of an unknown wallet: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a backup of an unknown wallet.", success)

			st2 := newEngine(t)

			// Fund the address before the wallet exists on this instance.
			if _, err := st2.Issue(string(b.Address), 30); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to fund the address: %v", failed, err)
			}

			restored, err := st2.RestoreWallet(b)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to restore the wallet: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to restore the wallet.", success)

			if restored.CachedBalance != 30 {
				t.Fatalf("\t%s\tTest 1:\tShould pick the ledger balance up on restore: got %v.", failed, restored.CachedBalance)
			}
			t.Logf("\t%s\tTest 1:\tShould pick the ledger balance up on restore.", success)

			if _, err := st2.RestoreWallet(b); !errors.Is(err, registry.ErrDuplicateName) {
				t.Fatalf("\t%s\tTest 1:\tShould reject a second restore under the same name: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a second restore under the same name.", success)
		}
	}
}

func Test_SendEdges(t *testing.T) {
	t.Log("Given the need to enforce funding at the amount plus fee boundary.")
	{
		t.Logf("\tTest 0:\tWhen the balance exactly covers amount plus fee.")
		{
			st := newEngine(t)

			w, err := st.CreateWallet("payer", "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create a wallet: %v", failed, err)
			}

			amount := 20.0
			fee := database.MinFee

			if _, err := st.Issue(string(w.Address), amount+fee); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to fund the wallet: %v", failed, err)
			}

			tx, err := st.Send("payer", addr2, amount)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould accept a send at the exact boundary: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould accept a send at the exact boundary.", success)

			if tx.Fee != fee {
				t.Fatalf("\t%s\tTest 0:\tShould charge the minimum fee: got %v.", failed, tx.Fee)
			}
			t.Logf("\t%s\tTest 0:\tShould charge the minimum fee.", success)

			if got := st.Balance(w.Address); got != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the sender at zero: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the sender at zero.", success)

			if got := st.Balance(keys.Address(addr2)); got != amount {
				t.Fatalf("\t%s\tTest 0:\tShould credit the receiver the amount: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould credit the receiver the amount.", success)
		}

		t.Logf("\tTest 1:\tWhen the balance is one cent short.")
		{
			st := newEngine(t)

			w, err := st.CreateWallet("payer", "")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create a wallet: %v", failed, err)
			}

			amount := 20.0
			fee := database.MinFee
			funded := amount + fee - 0.01

			if _, err := st.Issue(string(w.Address), funded); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to fund the wallet: %v", failed, err)
			}

			_, err = st.Send("payer", addr2, amount)
			if err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject the send.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the send.", success)

			var ife *state.InsufficientFundsError
			if !errors.As(err, &ife) {
				t.Fatalf("\t%s\tTest 1:\tShould report insufficient funds: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould report insufficient funds.", success)

			if ife.Balance != funded || ife.Required != amount+fee {
				t.Fatalf("\t%s\tTest 1:\tShould carry the balance and the requirement: got %v/%v.", failed, ife.Balance, ife.Required)
			}
			t.Logf("\t%s\tTest 1:\tShould carry the balance and the requirement.", success)

			if short := ife.Shortfall(); short <= 0 || short > 0.011 {
				t.Fatalf("\t%s\tTest 1:\tShould report a one cent shortfall: got %v.", failed, short)
			}
			t.Logf("\t%s\tTest 1:\tShould report a one cent shortfall.", success)

			if got := st.Balance(w.Address); got != funded {
				t.Fatalf("\t%s\tTest 1:\tShould leave the balance untouched: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the balance untouched.", success)

			if st.PendingCount() != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould only hold the issuance in the pending pool: got %d.", failed, st.PendingCount())
			}
			t.Logf("\t%s\tTest 1:\tShould only hold the issuance in the pending pool.", success)
		}

		t.Logf("\tTest 2:\tWhen the request itself is malformed.")
		{
			st := newEngine(t)

			if _, err := st.CreateWallet("payer", ""); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to create a wallet: %v", failed, err)
			}

			if _, err := st.Send("nobody", addr2, 1); !errors.Is(err, state.ErrUnknownWallet) {
				t.Fatalf("\t%s\tTest 2:\tShould reject an unknown sender: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould reject an unknown sender.", success)

			if _, err := st.Send("payer", "bogus", 1); !errors.Is(err, state.ErrInvalidAddress) {
				t.Fatalf("\t%s\tTest 2:\tShould reject a malformed receiver: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a malformed receiver.", success)

			if _, err := st.Send("payer", addr2, 0); !errors.Is(err, state.ErrInvalidAmount) {
				t.Fatalf("\t%s\tTest 2:\tShould reject a zero amount: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a zero amount.", success)

			if _, err := st.Issue("bogus", 1); !errors.Is(err, state.ErrInvalidAddress) {
				t.Fatalf("\t%s\tTest 2:\tShould reject issuance to a malformed address: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould reject issuance to a malformed address.", success)
		}
	}
}

func Test_ConcurrentSends(t *testing.T) {
	t.Log("Given the need to keep concurrent sends from overdrawing a wallet.")
	{
		t.Logf("\tTest 0:\tWhen two sends race over one balance.")
		{
			st := newEngine(t)

			w, err := st.CreateWallet("payer", "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create a wallet: %v", failed, err)
			}

			// Each send needs 10.1. The balance covers one, not both.
			if _, err := st.Issue(string(w.Address), 15); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to fund the wallet: %v", failed, err)
			}

			results := make(chan error, 2)
			var wg sync.WaitGroup
			wg.Add(2)

			for i := 0; i < 2; i++ {
				go func() {
					defer wg.Done()
					_, err := st.Send("payer", addr2, 10)
					results <- err
				}()
			}

			wg.Wait()
			close(results)

			var ok, funds int
			for err := range results {
				switch {
				case err == nil:
					ok++
				default:
					var ife *state.InsufficientFundsError
					if !errors.As(err, &ife) {
						t.Fatalf("\t%s\tTest 0:\tShould only fail on funds: got %v.", failed, err)
					}
					funds++
				}
			}

			if ok != 1 || funds != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould commit exactly one send: got %d ok %d rejected.", failed, ok, funds)
			}
			t.Logf("\t%s\tTest 0:\tShould commit exactly one send.", success)

			if got, want := st.Balance(w.Address), 15-(10+database.MinFee); got != want {
				t.Fatalf("\t%s\tTest 0:\tShould leave the single debit applied: got %v exp %v.", failed, got, want)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the single debit applied.", success)

			if got := st.Balance(keys.Address(addr2)); got != 10 {
				t.Fatalf("\t%s\tTest 0:\tShould credit the receiver once: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould credit the receiver once.", success)
		}
	}
}

func Test_IssueSupplyCap(t *testing.T) {
	t.Log("Given the need to cap issuance at the total supply.")
	{
		t.Logf("\tTest 0:\tWhen issuing against a small supply.")
		{
			st := newEngine(t)

			if err := st.MergeExternal([]byte(`{"total_supply":100}`)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to lower the supply: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to lower the supply.", success)

			if _, err := st.Issue(addr2, 60); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould allow issuance inside the cap: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould allow issuance inside the cap.", success)

			if _, err := st.Issue(addr2, 50); !errors.Is(err, state.ErrSupplyExhausted) {
				t.Fatalf("\t%s\tTest 0:\tShould reject issuance past the cap: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject issuance past the cap.", success)

			if got := st.Balance(keys.Address(addr2)); got != 60 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the balance at the issued amount: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the balance at the issued amount.", success)
		}
	}
}

func Test_ExportMerge(t *testing.T) {
	t.Log("Given the need to move state between instances through snapshots.")
	{
		t.Logf("\tTest 0:\tWhen merging one engine's export into a fresh engine.")
		{
			src := newEngine(t)

			w, err := src.CreateWallet("alice", "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create a wallet: %v", failed, err)
			}
			if _, err := src.Issue(string(w.Address), 100); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to fund the wallet: %v", failed, err)
			}
			if _, err := src.Send("alice", addr2, 25.5); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to transfer: %v", failed, err)
			}

			data, err := json.Marshal(src.ExportSnapshot())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to marshal the export: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to marshal the export.", success)

			dst := newEngine(t)
			if err := dst.MergeExternal(data); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to merge the export: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to merge the export.", success)

			if got, want := dst.Balance(w.Address), src.Balance(w.Address); got != want {
				t.Fatalf("\t%s\tTest 0:\tShould reproduce the sender balance: got %v exp %v.", failed, got, want)
			}
			t.Logf("\t%s\tTest 0:\tShould reproduce the sender balance.", success)

			if got := dst.Balance(keys.Address(addr2)); got != 25.5 {
				t.Fatalf("\t%s\tTest 0:\tShould reproduce the receiver balance: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould reproduce the receiver balance.", success)

			if got, want := len(dst.Chain()), len(src.Chain()); got != want {
				t.Fatalf("\t%s\tTest 0:\tShould carry the chain over: got %d exp %d.", failed, got, want)
			}
			t.Logf("\t%s\tTest 0:\tShould carry the chain over.", success)

			obs, exists := dst.WalletByAddress(w.Address)
			if !exists {
				t.Fatalf("\t%s\tTest 0:\tShould synthesize a wallet for the funded address.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould synthesize a wallet for the funded address.", success)

			if !obs.IsObserver() || !strings.HasPrefix(obs.Name, "Observer ") {
				t.Fatalf("\t%s\tTest 0:\tShould synthesize an observer without key material: got %q.", failed, obs.Name)
			}
			t.Logf("\t%s\tTest 0:\tShould synthesize an observer without key material.", success)

			if len(dst.Wallets()) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould hold observers for both funded addresses: got %d.", failed, len(dst.Wallets()))
			}
			t.Logf("\t%s\tTest 0:\tShould hold observers for both funded addresses.", success)
		}

		t.Logf("\tTest 1:\tWhen merging over locally known wallets.")
		{
			st := newEngine(t)

			w, err := st.CreateWallet("alice", "")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create a wallet: %v", failed, err)
			}

			data := []byte(`{"balances":{"` + string(w.Address) + `":77}}`)
			if err := st.MergeExternal(data); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to merge balances: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to merge balances.", success)

			after, _ := st.WalletByName("alice")
			if after.IsObserver() {
				t.Fatalf("\t%s\tTest 1:\tShould keep the local wallet's key material.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould keep the local wallet's key material.", success)

			if after.CachedBalance != 77 {
				t.Fatalf("\t%s\tTest 1:\tShould refresh the cached balance: got %v.", failed, after.CachedBalance)
			}
			t.Logf("\t%s\tTest 1:\tShould refresh the cached balance.", success)

			if len(st.Wallets()) != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould not synthesize an observer over a known wallet: got %d.", failed, len(st.Wallets()))
			}
			t.Logf("\t%s\tTest 1:\tShould not synthesize an observer over a known wallet.", success)
		}
	}
}

func Test_OneShotImport(t *testing.T) {
	t.Log("Given the need to absorb an external snapshot exactly once at startup.")
	{
		t.Logf("\tTest 0:\tWhen an import file is present.")
		{
			importPath := filepath.Join(t.TempDir(), "import.json")
			data := []byte(`{"balances":{"` + addr2 + `":42},"mempool":[]}`)

			if err := os.WriteFile(importPath, data, 0600); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write the import file: %v", failed, err)
			}

			st, err := state.New(state.Config{Store: snapshot.NewMemory(), ImportPath: importPath})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the engine: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the engine.", success)

			if got := st.Balance(keys.Address(addr2)); got != 42 {
				t.Fatalf("\t%s\tTest 0:\tShould absorb the imported balance: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould absorb the imported balance.", success)

			if _, err := os.Stat(importPath); !os.IsNotExist(err) {
				t.Fatalf("\t%s\tTest 0:\tShould move the import file aside.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould move the import file aside.", success)

			if _, err := os.Stat(importPath + ".imported"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould keep the imported file as a marker: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould keep the imported file as a marker.", success)

			st2, err := state.New(state.Config{Store: snapshot.NewMemory(), ImportPath: importPath})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to start again: %v", failed, err)
			}

			if got := st2.Balance(keys.Address(addr2)); got != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould not replay the import: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould not replay the import.", success)
		}
	}
}

func Test_MemoryOnlySession(t *testing.T) {
	t.Log("Given the need to keep running when the snapshot store fails.")
	{
		t.Logf("\tTest 0:\tWhen every store operation errors.")
		{
			st, err := state.New(state.Config{Store: badStore{}})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould construct the engine despite the store: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould construct the engine despite the store.", success)

			w, err := st.CreateWallet("alice", "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould still create wallets in memory: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould still create wallets in memory.", success)

			if _, err := st.Issue(string(w.Address), 10); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould still process issuance in memory: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould still process issuance in memory.", success)

			if got := st.Balance(w.Address); got != 10 {
				t.Fatalf("\t%s\tTest 0:\tShould track balances in memory: got %v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould track balances in memory.", success)
		}
	}
}

func Test_Notifier(t *testing.T) {
	t.Log("Given the need to announce committed transactions.")
	{
		t.Logf("\tTest 0:\tWhen a transaction commits.")
		{
			notifier := &captureNotifier{ch: make(chan database.Tx, 2)}

			st, err := state.New(state.Config{Store: snapshot.NewMemory(), Notifier: notifier})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the engine: %v", failed, err)
			}

			if _, err := st.Issue(addr2, 5); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to issue: %v", failed, err)
			}

			select {
			case tx := <-notifier.ch:
				if string(tx.Receiver) != addr2 || tx.Amount != 5 {
					t.Fatalf("\t%s\tTest 0:\tShould announce the committed transaction: got %v.", failed, tx)
				}
				t.Logf("\t%s\tTest 0:\tShould announce the committed transaction.", success)

			case <-time.After(2 * time.Second):
				t.Fatalf("\t%s\tTest 0:\tShould announce within the deadline.", failed)
			}
		}
	}
}
