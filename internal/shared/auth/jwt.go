package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	// Issuer is stamped on every session token and required on verify.
	Issuer = "career-backend"

	defaultTTL         = 7 * 24 * time.Hour
	minProdSecretBytes = 32
	clockSkew          = 30 * time.Second
)

// Claims is the session identity carried in the bearer token.
type Claims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwtlib.RegisteredClaims
}

var (
	errMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// SignJWT signs claims with HS256. Issuer, issue time and expiry are filled
// in when absent; JWT_TTL overrides the default lifetime.
func SignJWT(claims Claims) (string, error) {
	secret, err := secretKey()
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("sub is required")
	}

	now := time.Now().UTC()
	if claims.Issuer == "" {
		claims.Issuer = Issuer
	}
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwtlib.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwtlib.NewNumericDate(now.Add(tokenTTL()))
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyJWT checks signature, issuer and expiry and returns the claims.
func VerifyJWT(token string) (Claims, error) {
	secret, err := secretKey()
	if err != nil {
		return Claims{}, err
	}

	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(Issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithLeeway(clockSkew),
	)
	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil || parsed == nil || !parsed.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func tokenTTL() time.Duration {
	raw := strings.TrimSpace(os.Getenv("JWT_TTL"))
	if raw == "" {
		return defaultTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		return defaultTTL
	}
	return ttl
}

// secretKey reads JWT_SECRET. Production refuses a missing or short secret;
// other environments fall back to a fixed development key.
func secretKey() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	env := strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))
	if env == "production" || env == "prod" {
		if secret == "" {
			return nil, fmt.Errorf("%w: JWT_SECRET required in production", errMissingSecret)
		}
		if len(secret) < minProdSecretBytes {
			return nil, fmt.Errorf("%w: JWT_SECRET must be at least %d bytes", errMissingSecret, minProdSecretBytes)
		}
	}
	if secret == "" {
		secret = "dev-secret"
	}
	return []byte(secret), nil
}
