package database

import (
	"github.com/goldstarcoin/ledger/foundation/ledger/keys"
	"github.com/goldstarcoin/ledger/foundation/ledger/signature"
)

// Block represents a group of finalized transactions. Blocks arrive through
// snapshots already assembled; the hash, merkle root and nonce are carried
// through as-is and never recomputed or re-verified locally.
type Block struct {
	Index        uint64       `json:"index"`         // Position of the block in the chain.
	Timestamp    float64      `json:"timestamp"`     // Unix seconds the block was assembled.
	Transactions []Tx         `json:"transactions"`  // Transactions finalized by this block.
	PrevHash     string       `json:"previous_hash"` // Hash of the previous block in the chain.
	Nonce        uint64       `json:"nonce"`         // Work value carried from the assembling node.
	Hash         string       `json:"hash"`          // Hash of this block as assembled.
	MerkleRoot   string       `json:"merkle_root"`   // Merkle tree root carried from the assembling node.
	Difficulty   int          `json:"difficulty"`    // Difficulty in effect when the block was assembled.
	Miner        keys.Address `json:"miner"`         // Address credited for assembling the block.
	Reward       float64      `json:"reward"`        // Reward paid for assembling the block.
}

// Genesis synthesizes the first block of a brand new chain. It carries no
// transactions and is attributed to the reserved genesis address.
func Genesis(difficulty int, reward float64) Block {
	b := Block{
		Index:        0,
		Timestamp:    Timestamp(),
		Transactions: []Tx{},
		PrevHash:     signature.ZeroHash,
		Nonce:        0,
		MerkleRoot:   signature.ZeroHash,
		Difficulty:   difficulty,
		Miner:        keys.Genesis,
		Reward:       reward,
	}

	b.Hash = b.hash()

	return b
}

// hash computes a digest over the block's identifying fields. Only used
// when synthesizing genesis; imported blocks keep their original hash.
func (b Block) hash() string {
	data := signature.FormatDecimal(float64(b.Index)) +
		b.PrevHash +
		b.MerkleRoot +
		string(b.Miner) +
		signature.FormatDecimal(b.Timestamp)

	return signature.Hash(data)
}
