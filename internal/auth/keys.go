package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Chaves guarda a chave RSA de assinatura e os dados fixos dos tokens.
type Chaves struct {
	privada  *rsa.PrivateKey
	publicas map[string]*rsa.PublicKey // kid -> pub
	kid      string
	issuer   string
	audience string
}

func NovasChaves(priv *rsa.PrivateKey, kid, issuer, audience string) *Chaves {
	return &Chaves{
		privada:  priv,
		publicas: map[string]*rsa.PublicKey{kid: &priv.PublicKey},
		kid:      kid,
		issuer:   issuer,
		audience: audience,
	}
}

// CarregarChaves lê uma chave privada RSA em PEM (PKCS#1 ou PKCS#8).
func CarregarChaves(pemBytes []byte, kid, issuer, audience string) (*Chaves, error) {
	if kid == "" || issuer == "" || audience == "" {
		return nil, errors.New("kid, issuer e audience são obrigatórios")
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("pem decode private key failed")
	}

	var pk any
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		pk = k
	} else if k8, err2 := x509.ParsePKCS8PrivateKey(block.Bytes); err2 == nil {
		pk = k8
	} else {
		return nil, fmt.Errorf("parse private key: %v / %v", err, err2)
	}

	priv, ok := pk.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return NovasChaves(priv, kid, issuer, audience), nil
}

// CarregarChavesDoAmbiente usa AUTH_RSA_PRIVATE_PATH, AUTH_KID, AUTH_ISSUER e AUTH_AUDIENCE.
func CarregarChavesDoAmbiente() (*Chaves, error) {
	path := os.Getenv("AUTH_RSA_PRIVATE_PATH")
	if path == "" {
		return nil, errors.New("missing env: AUTH_RSA_PRIVATE_PATH")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	return CarregarChaves(b, os.Getenv("AUTH_KID"), os.Getenv("AUTH_ISSUER"), os.Getenv("AUTH_AUDIENCE"))
}

func (c *Chaves) publica(kid string) (*rsa.PublicKey, bool) {
	p, ok := c.publicas[kid]
	return p, ok
}

func signMethod() jwt.SigningMethod { return jwt.SigningMethodRS256 }
