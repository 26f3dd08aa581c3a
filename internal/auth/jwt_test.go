// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/animenotes/internal/config"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

func newTestManager(t *testing.T, ttl time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, TokenTTL: ttl, JWTIssuer: "animenotes"})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{"valid secret", &config.SecurityConfig{JWTSecret: testSecret, TokenTTL: time.Hour}, false},
		{"empty secret", &config.SecurityConfig{TokenTTL: time.Hour}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewJWTManager(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewJWTManager() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && m == nil {
				t.Error("NewJWTManager() returned nil manager")
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, err := m.GenerateToken("user-42", "mika")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID() != "user-42" || claims.Username != "mika" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := m.GenerateToken("", "anon"); !errors.Is(err, ErrMissingSubject) {
		t.Errorf("GenerateToken(\"\") = %v, want ErrMissingSubject", err)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	m := newTestManager(t, time.Hour)

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	other := newTestManager(t, time.Hour)
	other.secret = []byte("a_completely_different_secret_of_enough_length")
	foreign, _ := other.GenerateToken("user-1", "")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", foreign},
		{"expired", sign(&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Issuer: "animenotes", ExpiresAt: past}}, jwt.SigningMethodHS256, []byte(testSecret))},
		{"no expiry", sign(&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Issuer: "animenotes"}}, jwt.SigningMethodHS256, []byte(testSecret))},
		{"no subject", sign(&Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "animenotes", ExpiresAt: future}}, jwt.SigningMethodHS256, []byte(testSecret))},
		{"wrong issuer", sign(&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Issuer: "someone-else", ExpiresAt: future}}, jwt.SigningMethodHS256, []byte(testSecret))},
		{"hs512", sign(&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Issuer: "animenotes", ExpiresAt: future}}, jwt.SigningMethodHS512, []byte(testSecret))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() = nil error")
			}
		})
	}
}
