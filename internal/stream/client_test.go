package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func TestCreateToken(t *testing.T) {
	client := New("api-key", "api-secret")

	token, err := client.CreateToken("user-7")
	if err != nil {
		t.Fatalf("create token failed: %v", err)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("api-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("minted token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != "user-7" {
		t.Fatalf("expected user_id claim user-7, got %v", claims["user_id"])
	}
}

func TestUpsertUser(t *testing.T) {
	var gotPath, gotKey, gotAuthType string
	var gotBody map[string]map[string]map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotAuthType = r.Header.Get("Stream-Auth-Type")

		auth := r.Header.Get("Authorization")
		parsed, err := jwt.Parse(auth, func(tok *jwt.Token) (interface{}, error) {
			return []byte("api-secret"), nil
		})
		if err != nil || !parsed.Valid {
			t.Errorf("server token does not verify: %v", err)
		} else if claims := parsed.Claims.(jwt.MapClaims); claims["server"] != true {
			t.Errorf("expected server claim, got %v", claims)
		}

		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewWithBaseURL("api-key", "api-secret", srv.URL)
	if err := client.UpsertUser("u-1", "alice", "https://example.com/a.jpg"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if gotPath != "/users" {
		t.Fatalf("expected path /users, got %q", gotPath)
	}
	if gotKey != "api-key" {
		t.Fatalf("expected api_key query param, got %q", gotKey)
	}
	if gotAuthType != "jwt" {
		t.Fatalf("expected Stream-Auth-Type jwt, got %q", gotAuthType)
	}

	record := gotBody["users"]["u-1"]
	if record["id"] != "u-1" || record["name"] != "alice" || record["image"] != "https://example.com/a.jpg" {
		t.Fatalf("unexpected upsert payload: %v", gotBody)
	}
}

func TestUpsertUser_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer srv.Close()

	client := NewWithBaseURL("bad-key", "api-secret", srv.URL)
	err := client.UpsertUser("u-1", "alice", "")
	if err == nil {
		t.Fatalf("expected error on 403 response")
	}
}
