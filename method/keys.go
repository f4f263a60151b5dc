package method

import (
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/findy-network/credat/core"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const p256CoordLen = 32

// NewKeyPair generates a key pair in the raw byte layout the trust store
// keeps: ES256 public is an uncompressed P-256 point and private the 32 byte
// scalar, EdDSA public is 32 bytes and private the 32 byte seed.
func NewKeyPair(alg core.Algorithm) (kp core.KeyPair, err error) {
	defer err2.Handle(&err, "new %s key pair", alg)

	switch alg {
	case core.ES256:
		k := try.To1(ecdh.P256().GenerateKey(rand.Reader))
		return core.KeyPair{
			Algorithm:  alg,
			PublicKey:  k.PublicKey().Bytes(),
			PrivateKey: k.Bytes(),
		}, nil
	case core.EdDSA:
		pub, priv := try.To2(ed25519.GenerateKey(rand.Reader))
		return core.KeyPair{
			Algorithm:  alg,
			PublicKey:  pub,
			PrivateKey: priv.Seed(),
		}, nil
	default:
		return kp, fmt.Errorf("%w: %s", core.ErrUnsupportedAlgorithm, alg)
	}
}

// Signer returns the private key of kp in a form the JOSE signers accept:
// *ecdsa.PrivateKey or ed25519.PrivateKey.
func Signer(kp core.KeyPair) (s crypto.Signer, err error) {
	defer err2.Handle(&err, "%s private key", kp.Algorithm)

	switch kp.Algorithm {
	case core.ES256:
		k := try.To1(ecdh.P256().NewPrivateKey(kp.PrivateKey))
		pub := try.To1(ecdsaPublic(k.PublicKey().Bytes()))
		return &ecdsa.PrivateKey{
			PublicKey: *pub,
			D:         new(big.Int).SetBytes(kp.PrivateKey),
		}, nil
	case core.EdDSA:
		if len(kp.PrivateKey) != ed25519.SeedSize {
			return nil, fmt.Errorf("seed length %d", len(kp.PrivateKey))
		}
		return ed25519.NewKeyFromSeed(kp.PrivateKey), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedAlgorithm, kp.Algorithm)
	}
}

// PublicKey parses raw public key bytes to *ecdsa.PublicKey or
// ed25519.PublicKey.
func PublicKey(alg core.Algorithm, pub []byte) (_ crypto.PublicKey, err error) {
	defer err2.Handle(&err, "%s public key", alg)

	switch alg {
	case core.ES256:
		return try.To1(ecdsaPublic(pub)), nil
	case core.EdDSA:
		if len(pub) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("key length %d", len(pub))
		}
		return ed25519.PublicKey(pub), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedAlgorithm, alg)
	}
}

func ecdsaPublic(point []byte) (*ecdsa.PublicKey, error) {
	// ecdh validates that the point is on the curve
	if _, err := ecdh.P256().NewPublicKey(point); err != nil {
		return nil, err
	}
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(point[1 : 1+p256CoordLen]),
		Y:     new(big.Int).SetBytes(point[1+p256CoordLen:]),
	}, nil
}
