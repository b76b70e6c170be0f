package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
}

func loadSecret(v *viper.Viper) ([]byte, error) {
	if secret := v.GetString("jwt.secret"); secret != "" {
		return []byte(secret), nil
	}
	secretPath := v.GetString("jwt.secret_file")
	if secretPath == "" {
		return nil, fmt.Errorf("no SWEEPER_JWT_SECRET or SWEEPER_JWT_SECRET_FILE env variable set")
	}
	secretBytes, err := os.ReadFile(secretPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT secret: %w", err)
	}
	return []byte(strings.TrimSpace(string(secretBytes))), nil
}

// NewJWT reads the HS256 secret. In development a missing secret is replaced
// by a random one, so handles do not survive a restart.
func NewJWT(v *viper.Viper) (*JWT, error) {
	secret, err := loadSecret(v)
	if err != nil {
		if !Development(v) {
			return nil, err
		}
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate JWT secret: %w", err)
		}
	}
	return NewJWTWithSecret(secret)
}

func NewJWTWithSecret(secret []byte) (*JWT, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("empty JWT secret")
	}
	j := &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
	}
	return j, nil
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *JWT) ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
}
