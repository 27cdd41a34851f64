package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the work factor used for new password hashes. The cost
// is deliberate: hashing is the one CPU-expensive step in the login path and
// must not be lowered or cached around.
const DefaultBcryptCost = 10

// HashPassword hashes a plaintext password with the given bcrypt cost. Every
// call salts independently, so equal inputs produce distinct hashes.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a plaintext password against its stored hash using
// the salt embedded in the hash. A mismatch returns an error, never a panic.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
