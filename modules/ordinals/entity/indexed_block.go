package entity

import "github.com/btcsuite/btcd/chaincfg/chainhash"

type IndexedBlock struct {
	Height   int64
	Hash     chainhash.Hash
	PrevHash chainhash.Hash
	// CumulativeSats is the total number of sats emitted through this height,
	// checked against the closed-form emission schedule on every commit.
	CumulativeSats uint64
}
