/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	tok, err := signToken(secret, "alice", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sub, err := verifyToken(secret, tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "alice" {
		t.Fatalf("subject = %q, want alice", sub)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	secret := "test-secret"
	tok, err := signToken(secret, "alice", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifyToken(secret, tok); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	tok, err := signToken("secret-a", "alice", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifyToken("secret-b", tok); err == nil {
		t.Fatalf("expected bad signature error")
	}
}

func TestVerifyTokenRejectsMalformed(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b.c", "!!!.???"} {
		if _, err := verifyToken("s", tok); err == nil {
			t.Fatalf("token %q unexpectedly verified", tok)
		}
	}
}

func TestWithAuthMiddleware(t *testing.T) {
	secret := "mw-secret"
	called := false
	h := withAuth(secret, func(w http.ResponseWriter, r *http.Request, sub string) {
		called = true
		if sub != "bob" {
			t.Fatalf("subject = %q, want bob", sub)
		}
		w.WriteHeader(http.StatusOK)
	})

	// Missing header
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/decks", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header status = %d, want 401", rec.Code)
	}
	if called {
		t.Fatalf("handler called without auth")
	}

	// Valid token
	tok, err := signToken(secret, "bob", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/decks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("auth status = %d, want 200", rec.Code)
	}
	if !called {
		t.Fatalf("handler not called with valid token")
	}
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("0001_init.sql")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v != 1 {
		t.Fatalf("version = %d, want 1", v)
	}
	if _, err := parseVersion("init.sql"); err == nil {
		t.Fatalf("expected error for unversioned filename")
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("no embedded migrations found")
	}
}
