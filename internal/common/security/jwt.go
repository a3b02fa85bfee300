package security

import (
	"errors"
	"time"
	"tle_zone_assist/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

var tokenTTL = 72 * time.Hour

func InitJWT() {
	Configure(config.AppConfig.JWTKey, config.AppConfig.JWTExp)
}

// Configure installs the HS256 key used to verify (and, in tests, mint)
// session tokens. Tokens are issued by the platform's session service.
func Configure(key []byte, ttl time.Duration) {
	TokenAuth = jwtauth.New("HS256", key, nil)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{"user_id": userID}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiry(claims, time.Now().Add(tokenTTL))
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
