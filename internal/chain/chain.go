// Package chain simulates the head of the chain the engine draws entropy
// from. Heights advance with a clock at a fixed block interval; block hashes
// are keccak-256 of the chain id and height.
package chain

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/sha3"

	"github.com/osse101/MawRitual_Go/internal/domain"
)

// DefaultBlockInterval matches a 12 second slot time
const DefaultBlockInterval = 12 * time.Second

type ViewConfig struct {
	ChainID       string
	Genesis       time.Time
	BlockInterval time.Duration
	Clock         clockwork.Clock
}

func (cfg *ViewConfig) Validate() error {
	if cfg.ChainID == "" {
		return errors.New("chain id is required")
	}
	if cfg.BlockInterval < 0 {
		return errors.New("block interval must not be negative")
	}
	if cfg.BlockInterval == 0 {
		cfg.BlockInterval = DefaultBlockInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Genesis.IsZero() {
		cfg.Genesis = cfg.Clock.Now()
	}
	return nil
}

// View reads the simulated chain head
type View struct {
	cfg ViewConfig
}

func NewView(cfg ViewConfig) (*View, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &View{cfg: cfg}, nil
}

// Height is the number of whole block intervals since genesis.
func (v *View) Height() int64 {
	elapsed := v.cfg.Clock.Since(v.cfg.Genesis)
	if elapsed < 0 {
		return 0
	}
	return int64(elapsed / v.cfg.BlockInterval)
}

// Entropy returns the entropy of the current head.
func (v *View) Entropy() domain.ChainEntropy {
	return v.EntropyAt(v.Height())
}

// EntropyAt returns the entropy a block at height would carry.
func (v *View) EntropyAt(height int64) domain.ChainEntropy {
	return domain.ChainEntropy{
		Height:    height,
		Timestamp: v.cfg.Genesis.Add(time.Duration(height) * v.cfg.BlockInterval).Unix(),
		BlockHash: BlockHash(v.cfg.ChainID, height),
	}
}

// BlockHash is keccak256(chainID || height).
func BlockHash(chainID string, height int64) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(chainID))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(height))
	h.Write(buf[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
