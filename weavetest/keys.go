package weavetest

import (
	"crypto/rand"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// NewPubkey returns a random identity. It lies on the curve, so it can
// never collide with a derived program address.
func NewPubkey() solana.PublicKey {
	return PubkeyOf(NewKey())
}

// PubkeyOf returns the identity of given key.
func PubkeyOf(key ed25519.PrivateKey) solana.PublicKey {
	var pk solana.PublicKey
	copy(pk[:], key.Public().(ed25519.PublicKey))
	return pk
}
