package rng

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/osse101/MawRitual_Go/internal/domain"
)

// Seed is a 256-bit pseudo-random value read as a big-endian unsigned integer.
type Seed [32]byte

// Mod returns seed mod n over the full 256 bits. n must be > 0.
func (s Seed) Mod(n uint64) uint64 {
	if n == 0 {
		panic("rng: Mod by zero")
	}
	v := new(big.Int).SetBytes(s[:])
	return v.Mod(v, new(big.Int).SetUint64(n)).Uint64()
}

// Hit is a weighted coin flip: true with probability bps/10000.
func (s Seed) Hit(bps uint32) bool {
	if bps == 0 {
		return false
	}
	if bps >= domain.MaxBasisPoints {
		return true
	}
	return s.Mod(domain.MaxBasisPoints) < uint64(bps)
}

// Hex returns the 0x-prefixed hex form.
func (s Seed) Hex() string {
	return "0x" + hex.EncodeToString(s[:])
}

func (s Seed) String() string {
	return s.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seed) UnmarshalText(text []byte) error {
	parsed, err := ParseSeed(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeed parses a hex seed, with or without 0x prefix. Short values are
// left-padded so "0x2d" parses as the integer 45.
func ParseSeed(str string) (Seed, error) {
	var s Seed
	if len(str) >= 2 && (str[:2] == "0x" || str[:2] == "0X") {
		str = str[2:]
	}
	if len(str) == 0 || len(str) > 64 {
		return s, fmt.Errorf("%w: seed must be 1-64 hex digits", domain.ErrInvalidInput)
	}
	if len(str)%2 == 1 {
		str = "0" + str
	}
	raw, err := hex.DecodeString(str)
	if err != nil {
		return s, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	copy(s[32-len(raw):], raw)
	return s, nil
}

// SeedFromUint64 builds a seed whose integer value is v.
func SeedFromUint64(v uint64) Seed {
	var s Seed
	new(big.Int).SetUint64(v).FillBytes(s[:])
	return s
}
