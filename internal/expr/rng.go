package expr

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// generator is a seedable, portable PRNG: two evaluators seeded identically
// must produce identical bit patterns, so it is built on a named stream
// cipher (ChaCha20, the variant golang.org/x/crypto exposes) rather than
// math/rand, whose algorithm is not guaranteed to be stable across versions.
type generator struct {
	cipher *chacha20.Cipher
	buf    [64]byte
	pos    int
}

func newGenerator(seed uint64) *generator {
	return &generator{cipher: cipherFromSeed(seed), pos: 64}
}

func cipherFromSeed(seed uint64) *chacha20.Cipher {
	var seedBytes [8]byte
	binary.BigEndian.PutUint64(seedBytes[:], seed)
	key := sha256.Sum256(seedBytes[:])
	c, err := chacha20.NewUnauthenticatedCipher(key[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		panic(err) // key/nonce sizes are fixed constants; can't fail
	}
	return c
}

func (g *generator) nextUint32() uint32 {
	if g.pos >= len(g.buf) {
		var zero [64]byte
		g.cipher.XORKeyStream(g.buf[:], zero[:])
		g.pos = 0
	}
	v := binary.BigEndian.Uint32(g.buf[g.pos : g.pos+4])
	g.pos += 4
	return v
}

// float01 returns a uniform value in [0, 1).
func (g *generator) float01() float32 {
	return float32(g.nextUint32()>>8) / float32(1<<24)
}

func (g *generator) rangeF(lo, hi float32) float32 {
	return lo + g.float01()*(hi-lo)
}
