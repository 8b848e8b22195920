package config

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

type jwtEnv struct {
	PrivateKey     string        `env:"JWT_PRIVATE_KEY"`
	PrivateKeyFile string        `env:"JWT_PRIVATE_KEY_FILE,file"`
	PublicKey      string        `env:"JWT_PUBLIC_KEY"`
	PublicKeyFile  string        `env:"JWT_PUBLIC_KEY_FILE,file"`
	TokenLifetime  time.Duration `env:"JWT_TOKEN_LIFETIME" envDefault:"720h"`
}

func firstPEM(name, value, fromFile string) ([]byte, error) {
	if value != "" {
		return []byte(value), nil
	}
	if fromFile != "" {
		return []byte(fromFile), nil
	}
	return nil, fmt.Errorf("no %s or %s_FILE env variable set", name, name)
}

func NewJWT() (*JWT, error) {
	cfg, err := env.ParseAs[jwtEnv]()
	if err != nil {
		return nil, fmt.Errorf("unable to parse jwt config: %w", err)
	}

	privatePEM, err := firstPEM("JWT_PRIVATE_KEY", cfg.PrivateKey, cfg.PrivateKeyFile)
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT private key: %w", err)
	}

	publicPEM, err := firstPEM("JWT_PUBLIC_KEY", cfg.PublicKey, cfg.PublicKeyFile)
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT public key: %w", err)
	}

	return NewJWTFromKeys(privateKey, publicKey, cfg.TokenLifetime), nil
}

func NewJWTFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, lifetime time.Duration) *JWT {
	return &JWT{
		privateKey:    privateKey,
		publicKey:     publicKey,
		signingMethod: jwt.SigningMethodRS256,
		tokenLifetime: lifetime,
	}
}

func (j *JWT) TokenLifetime() time.Duration {
	return j.tokenLifetime
}

func (j *JWT) Sign(claims *PlayerClaims) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.tokenLifetime))
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.privateKey)
}

func (j *JWT) ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
}
