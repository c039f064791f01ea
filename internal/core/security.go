// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Stored hashes are argon2id PHC strings:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// bcrypt hashes imported from the previous GlowGuard backend still verify
// and are replaced on the next successful login.

var ErrMalformedHash = errors.New("malformed password hash")

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	keyLen      uint32
}

var currentArgon2 = argon2Params{
	memory:      64 * 1024,
	iterations:  1,
	parallelism: 4,
	keyLen:      32,
}

const saltLen = 16

func (p argon2Params) derive(password string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(password),
		salt,
		p.iterations,
		p.memory,
		p.parallelism,
		p.keyLen,
	)
}

func (p argon2Params) encode(salt, key []byte) string {
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory,
		p.iterations,
		p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	return currentArgon2.encode(salt, currentArgon2.derive(password, salt)), nil
}

func VerifyPassword(password, encoded string) (bool, error) {
	if isBcryptHash(encoded) {
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("verify bcrypt hash: %w", err)
		}
	}

	params, salt, key, err := parseArgon2(encoded)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(key, params.derive(password, salt)) == 1, nil
}

// PasswordCheck is the outcome of a login-time verification. Rehash holds
// a replacement hash when the stored one uses outdated parameters or bcrypt.
type PasswordCheck struct {
	Valid  bool
	Rehash string
}

// decoy is verified against when the account does not exist, so unknown
// emails cost as much as wrong passwords.
var decoy = func() string {
	hash, err := HashPassword("glowguard-decoy-password")
	if err != nil {
		panic(fmt.Sprintf("security: generate decoy hash: %v", err))
	}
	return hash
}()

// CheckPassword verifies password against stored, or against a decoy hash
// when stored is nil or empty. The decoy path never reports Valid.
func CheckPassword(password string, stored *string) (PasswordCheck, error) {
	if stored == nil || *stored == "" {
		_, _ = VerifyPassword(password, decoy) //nolint:errcheck // timing only
		return PasswordCheck{}, nil
	}

	valid, err := VerifyPassword(password, *stored)
	if err != nil || !valid {
		return PasswordCheck{}, err
	}

	check := PasswordCheck{Valid: true}
	if needsRehash(*stored) {
		// the password already matched; a failed upgrade keeps the old hash
		if rehash, hashErr := HashPassword(password); hashErr == nil {
			check.Rehash = rehash
		}
	}

	return check, nil
}

func parseArgon2(encoded string) (argon2Params, []byte, []byte, error) {
	var p argon2Params

	fields := strings.Split(strings.TrimPrefix(encoded, "$"), "$")
	if len(fields) != 5 || fields[0] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[1], "v=%d", &version); err != nil ||
		version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: version %q", ErrMalformedHash, fields[1])
	}

	if _, err := fmt.Sscanf(
		fields[2],
		"m=%d,t=%d,p=%d",
		&p.memory,
		&p.iterations,
		&p.parallelism,
	); err != nil {
		return p, nil, nil, fmt.Errorf("%w: params: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[3])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: key", ErrMalformedHash)
	}

	//nolint:gosec // G115: argon2 keys are tens of bytes
	p.keyLen = uint32(len(key))

	return p, salt, key, nil
}

func needsRehash(encoded string) bool {
	if isBcryptHash(encoded) {
		return true
	}

	params, _, _, err := parseArgon2(encoded)
	return err != nil || params != currentArgon2
}

func isBcryptHash(encoded string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}
