package rng

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/osse101/MawRitual_Go/internal/domain"
)

// NonceCounter hands out the process-wide sacrifice nonce. IncrementNonce
// advances it by exactly one and returns the new value.
type NonceCounter interface {
	IncrementNonce() uint64
}

// Draw records one seed derivation so a roll can be reproduced later.
type Draw struct {
	Nonce   uint64 `json:"nonce"`
	Seed    Seed   `json:"seed"`
	Purpose string `json:"purpose"`
}

// Source derives seeds from the nonce, chain entropy and the action context.
// The randomness is observable to anyone who can see chain state and pending
// actions; it is not suitable where players can profit from predicting rolls.
type Source struct {
	nonces  NonceCounter
	entropy domain.ChainEntropy
}

// NewSource creates a source bound to one action's chain entropy.
func NewSource(nonces NonceCounter, entropy domain.ChainEntropy) *Source {
	return &Source{nonces: nonces, entropy: entropy}
}

// NextSeed increments the nonce and returns keccak256(nonce, entropy, context).
// It never fails.
func (s *Source) NextSeed(ctx domain.ActionContext) Draw {
	nonce := s.nonces.IncrementNonce()
	return Draw{
		Nonce:   nonce,
		Seed:    Derive(nonce, s.entropy, ctx),
		Purpose: ctx.Purpose,
	}
}

// Derive is the pure seed function. Exposed so tests and off-chain tools can
// recompute a recorded draw.
func Derive(nonce uint64, entropy domain.ChainEntropy, ctx domain.ActionContext) Seed {
	h := sha3.NewLegacyKeccak256()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], nonce)
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], uint64(entropy.Height))
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], uint64(entropy.Timestamp))
	h.Write(buf[:])
	h.Write(entropy.BlockHash[:])

	ctxHash := ContextHash(ctx)
	h.Write(ctxHash[:])

	var out Seed
	copy(out[:], h.Sum(nil))
	return out
}

// ContextHash hashes the action context with length-prefixed fields.
func ContextHash(ctx domain.ActionContext) [32]byte {
	h := sha3.NewLegacyKeccak256()
	writeField(h, []byte(ctx.Actor))
	writeField(h, []byte(ctx.Kind))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], ctx.Amount)
	h.Write(buf[:])
	writeField(h, []byte(ctx.Purpose))

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeField(h interface{ Write([]byte) (int, error) }, b []byte) {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(b)))
	_, _ = h.Write(l[:])
	_, _ = h.Write(b)
}
