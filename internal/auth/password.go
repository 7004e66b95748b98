// Package auth — password credential hashing.
//
// WHY SCRYPT?
// scrypt is a deliberately slow, memory-hard key derivation function. Slow
// means brute-force attempts are expensive; memory-hard means GPU/ASIC
// attacks don't get the usual thousand-fold speedup, because each guess
// needs tens of megabytes of RAM, not just compute.
//
// CREDENTIAL FORMAT:
//
//	<derivedKeyHex>.<saltHex>
//
// 64-byte derived key and 16-byte salt, both hex-encoded, joined by a single
// dot. The salt rides along inside the credential, so no separate salt
// column is needed and Verify can recompute the key from the stored string
// alone. Every admin-tooling consumer of the users table depends on this
// exact shape — do not change it without migrating stored rows.
//
// NEVER store passwords in plain text or with fast hashes (MD5, SHA-256);
// those fall to rainbow tables in minutes.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/muaz-405/DevQuest/internal/apperror"
)

// scrypt parameters.
//
// N is the CPU/memory cost (must be a power of two); r the block size; p the
// parallelism. N=32768, r=8 needs ~32MB per hash and takes on the order of
// 100ms on a modern server — negligible at login, brutal for an attacker.
const (
	scryptN       = 32768
	scryptR       = 8
	scryptP       = 1
	saltLength    = 16 // bytes of random salt
	derivedKeyLen = 64 // bytes of derived key
)

// PasswordService derives and verifies stored credentials.
//
// It's a struct (not free functions) so the cost can be injected in tests —
// a small N makes test hashing near-instant without changing the logic
// under test.
type PasswordService struct {
	n int
}

// NewPasswordService creates a PasswordService with the production cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{n: scryptN}
}

// newPasswordServiceWithCost creates a PasswordService with a custom scrypt N.
// Unexported helper used by the tests in this package.
func newPasswordServiceWithCost(n int) *PasswordService {
	return &PasswordService{n: n}
}

// NewPasswordServiceForTest creates a PasswordService with a weak cost for
// use in other packages' tests. Do NOT use in production.
func NewPasswordServiceForTest() *PasswordService {
	return &PasswordService{n: 1024}
}

// Hash derives a storable credential from a plaintext password.
//
// Each call generates a fresh random salt, so hashing the same plaintext
// twice yields two different credentials — this module is for storage, not
// comparison. Use Verify to check a password against a stored credential.
//
// A failing randomness source is a fatal configuration error: without
// unpredictable salts every credential we store is weakened, so the caller
// must treat this as unrecoverable.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperror.ValidationFailed("password", "password must not be empty")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("auth: reading random salt: %w",
			apperror.Configuration("no randomness source available"))
	}

	key, err := scrypt.Key([]byte(plaintext), salt, p.n, scryptR, scryptP, derivedKeyLen)
	if err != nil {
		return "", fmt.Errorf("auth: deriving key: %w", err)
	}

	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// Verify checks whether a plaintext password matches a stored credential.
//
// Returns nil on match, a non-nil error otherwise.
//
// TIMING SAFETY:
// The derived keys are compared with subtle.ConstantTimeCompare, so response
// time doesn't reveal how many leading bytes an attacker got right.
func (p *PasswordService) Verify(stored, plaintext string) error {
	keyHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return fmt.Errorf("auth: stored credential is malformed")
	}

	wantKey, err := hex.DecodeString(keyHex)
	if err != nil {
		return fmt.Errorf("auth: decoding stored key: %w", err)
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return fmt.Errorf("auth: decoding stored salt: %w", err)
	}

	gotKey, err := scrypt.Key([]byte(plaintext), salt, p.n, scryptR, scryptP, len(wantKey))
	if err != nil {
		return fmt.Errorf("auth: deriving key: %w", err)
	}

	if subtle.ConstantTimeCompare(wantKey, gotKey) != 1 {
		return apperror.Unauthorized("invalid email or password")
	}
	return nil
}
