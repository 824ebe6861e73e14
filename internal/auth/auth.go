package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadToken = errors.New("invalid token")

// PurposeReset marks a token minted solely for completing a password
// reset. Session middleware refuses such tokens, and the reset flow
// refuses tokens without it, so the two kinds are never interchangeable.
const PurposeReset = "reset"

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	// Purpose is empty for session tokens, PurposeReset for reset tokens.
	Purpose string `json:"purpose,omitempty"`
	// Fingerprint binds a reset token to the password hash it was minted
	// against; once the password changes the token is dead.
	Fingerprint string `json:"pwfp,omitempty"`
	jwt.RegisteredClaims
}

func MakeToken(uid, email, secret string, ttl time.Duration) (string, error) {
	c := Claims{
		UserID: uid,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// MakeResetToken mints a single-use password-reset token. passwordHash is
// the account's current hash; its fingerprint in the claims makes the
// token unusable after the password it was issued for changes.
func MakeResetToken(uid, email, secret, passwordHash string, ttl time.Duration) (string, error) {
	c := Claims{
		UserID:      uid,
		Email:       email,
		Purpose:     PurposeReset,
		Fingerprint: PasswordFingerprint(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// PasswordFingerprint derives a short non-reversible identifier for a
// password hash.
func PasswordFingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}

func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}

// TempSecret returns a random throwaway password for promoted accounts.
// The staged plaintext password is never carried onto the real account;
// the client sets their own via the credential-reset mail.
func TempSecret() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
