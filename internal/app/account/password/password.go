package password

import (
	"github.com/alexedwards/argon2id"

	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/errors"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher derives peppered argon2id hashes. Each call salts freshly, so
// two hashes of the same plaintext never compare equal.
type Hasher struct {
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := argon2id.CreateHash(plaintext+h.pepper, argonParams)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return hash, nil
}

// Verify reports whether plaintext matches hash. Malformed hashes verify
// as false rather than erroring.
func (h *Hasher) Verify(plaintext, hash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plaintext+h.pepper, hash)
	return err == nil && ok
}
