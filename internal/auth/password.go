package auth

import "github.com/alexedwards/argon2id"

// passwordParams follows the current OWASP argon2id minimums. Raising them
// later only affects new hashes; ComparePassword reads the parameters baked
// into each stored hash.
var passwordParams = &argon2id.Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, passwordParams)
}

func ComparePassword(password, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, hash)
}
