// Package cryptox implements password hashing with argon2id.
//
// Hashes are encoded in the PHC string format
//
//	$argon2id$v=19$m=<KiB>,t=<iterations>,p=<parallelism>$<salt>$<key>
//
// with unpadded standard base64, which is also what passlib produces, so
// hashes written by other tooling verify here unchanged.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash is returned by DecodeHash for strings that are not
// argon2id PHC hashes this package is willing to verify.
var ErrInvalidHash = errors.New("invalid argon2id hash")

// Upper bounds accepted when decoding a stored hash. A hash with larger
// parameters is rejected instead of being computed.
const (
	maxMemoryKiB   = 256 * 1024
	maxIterations  = 16
	maxParallelism = 16
)

// Params are the argon2id cost parameters.
type Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams matches the passlib argon2 defaults.
var DefaultParams = Params{
	MemoryKiB:   64 * 1024,
	Iterations:  3,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword derives an argon2id key from password with a fresh random
// salt and returns it PHC-encoded. Two calls with the same password never
// return the same string.
func HashPassword(password string, p Params) (string, error) {
	if p.MemoryKiB == 0 || p.Iterations == 0 || p.Parallelism == 0 || p.SaltLength == 0 || p.KeyLength == 0 {
		return "", fmt.Errorf("argon2id params must be positive: %+v", p)
	}

	salt := common.GenerateRandByteArray(int(p.SaltLength))
	key := argon2.IDKey([]byte(password), salt, p.Iterations, p.MemoryKiB, p.Parallelism, p.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.MemoryKiB, p.Iterations, p.Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// VerifyPassword reports whether password matches encoded. Malformed or
// unsupported hashes simply do not match.
func VerifyPassword(password, encoded string) bool {
	p, salt, want, err := DecodeHash(encoded)
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, p.Iterations, p.MemoryKiB, p.Parallelism, p.KeyLength)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// DecodeHash splits a PHC argon2id string into its parameters, salt and key.
func DecodeHash(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, ErrInvalidHash
	}

	var mem, iter, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return Params{}, nil, nil, ErrInvalidHash
	}
	if mem == 0 || mem > maxMemoryKiB || iter == 0 || iter > maxIterations || par == 0 || par > maxParallelism {
		return Params{}, nil, nil, ErrInvalidHash
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) < 8 {
		return Params{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) < 16 || len(key) > 128 {
		return Params{}, nil, nil, ErrInvalidHash
	}

	p := Params{
		MemoryKiB:   mem,
		Iterations:  iter,
		Parallelism: uint8(par), // #nosec G115 -- bounded by maxParallelism above
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(key)),
	}
	return p, salt, key, nil
}
