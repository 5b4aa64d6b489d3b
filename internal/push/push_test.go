package push

import (
	"encoding/base64"
	"testing"

	"github.com/mtlahti/choreboard/internal/model"
)

func TestGenerateVAPIDKeys(t *testing.T) {
	pub, priv, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate VAPID keys: %v", err)
	}

	if pub == "" {
		t.Error("expected non-empty public key")
	}
	if priv == "" {
		t.Error("expected non-empty private key")
	}

	// Public key should be base64url-encoded, 65 bytes uncompressed P-256 point
	pubBytes, err := base64.RawURLEncoding.DecodeString(pub)
	if err != nil {
		t.Fatalf("decode public key: %v", err)
	}
	if len(pubBytes) != 65 {
		t.Errorf("public key length = %d, want 65", len(pubBytes))
	}

	// Private key should be base64url-encoded, 32 bytes P-256 scalar
	privBytes, err := base64.RawURLEncoding.DecodeString(priv)
	if err != nil {
		t.Fatalf("decode private key: %v", err)
	}
	if len(privBytes) != 32 {
		t.Errorf("private key length = %d, want 32", len(privBytes))
	}

	// Generate again, keys must differ
	pub2, _, _ := GenerateVAPIDKeys()
	if pub == pub2 {
		t.Error("expected different keys on second generation")
	}
}

func strp(s string) *string { return &s }

func TestDigestBody(t *testing.T) {
	empty := model.DayPlan{Date: "2026-03-02"}
	if body := digestBody(empty); body != "" {
		t.Errorf("empty plan body = %q, want suppressed", body)
	}

	plan := model.DayPlan{
		Date: "2026-03-02",
		Tasks: model.TaskSet{
			Cook:       strp("Anna"),
			WashDishes: strp("Ben"),
		},
	}
	got := digestBody(plan)
	want := "Today: Anna cooks, Ben washes dishes"
	if got != want {
		t.Errorf("body = %q, want %q", got, want)
	}

	// An assigned-then-cleared slot reads as unassigned.
	plan.Tasks.Cook = strp("")
	got = digestBody(plan)
	if got != "Today: Ben washes dishes" {
		t.Errorf("body = %q, empty assignee should be skipped", got)
	}
}
