package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"
)

func testKeyPair(t *testing.T) (privatePEM, publicPEM []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	privatePEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	publicPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})
	return privatePEM, publicPEM
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	privatePEM, publicPEM := testKeyPair(t)
	svc, err := NewAuthService(privatePEM, publicPEM, 15*time.Minute, 72*time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestAuthService(t)
	identity := Identity{
		Email:   "ann@example.com",
		Name:    "Ann",
		Role:    "candidate",
		Creator: "hr@corp.com",
	}

	pair, err := svc.GenerateTokenPair(identity)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}

	accessClaims, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if accessClaims.TokenType != "access" {
		t.Fatalf("access token type = %q", accessClaims.TokenType)
	}
	if accessClaims.Identity != identity {
		t.Fatalf("identity = %+v, want %+v", accessClaims.Identity, identity)
	}
	if accessClaims.Subject != identity.Email {
		t.Fatalf("subject = %q, want email", accessClaims.Subject)
	}

	refreshClaims, err := svc.ValidateToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if refreshClaims.TokenType != "refresh" {
		t.Fatalf("refresh token type = %q", refreshClaims.TokenType)
	}
	if refreshClaims.ID == "" {
		t.Fatal("refresh token must carry a jti for blacklist rotation")
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := newTestAuthService(t)
	verifier := newTestAuthService(t)

	pair, err := issuer.GenerateTokenPair(Identity{Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}

	if _, err := verifier.ValidateToken(pair.AccessToken); err == nil {
		t.Fatal("token signed by another key must be rejected")
	}
}

func TestValidateTokenRejectsEmptyString(t *testing.T) {
	svc := newTestAuthService(t)
	if _, err := svc.ValidateToken(""); err == nil {
		t.Fatal("empty token must be rejected")
	}
}
