package userservice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID decodes the numeric user id carried in the subject claim.
func (c *Claims) UserID() (int, error) {
	return strconv.Atoi(c.Subject)
}

func generateToken(userID int, email string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	expiry := time.Now().Add(ttl)

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "quillfeed",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiry, nil
}

func newAuthToken(userID int, email string, secret []byte) (*AuthToken, error) {
	access, accessExpiry, err := generateToken(userID, email, secret, AccessTokenTime)
	if err != nil {
		return nil, err
	}

	refresh, refreshExpiry, err := generateToken(userID, email, secret, RefreshTokenTime)
	if err != nil {
		return nil, err
	}

	return &AuthToken{
		AccessToken:        access,
		RefreshToken:       refresh,
		AccessTokenExpiry:  accessExpiry,
		RefreshTokenExpiry: refreshExpiry,
	}, nil
}

// parseToken verifies the signature and returns the claims. The signing method
// check guards against algorithm confusion.
func parseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
