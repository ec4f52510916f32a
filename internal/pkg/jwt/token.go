package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// ValidateToken validates a JWT token signed by the identity
// collaborator and returns the claims. When issuer is non-empty the
// token's iss claim must match it.
func ValidateToken(tokenString, secret, issuer string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if issuer != "" && !claims.VerifyIssuer(issuer, true) {
		return nil, errors.New("unexpected token issuer")
	}
	return &claims, nil
}
