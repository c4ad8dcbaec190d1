package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deepakscse/auction-BE/internal/util"
)

const testSecretKey = "01234567890123456789012345678901"

func TestJWTMakerRoundTrip(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker: %v", err)
	}

	teamID := util.Int64Pointer(3)
	tokenString, createdPayload, err := maker.CreateToken("user-1", "member", teamID, TypeAccess, time.Minute)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if tokenString == "" {
		t.Fatal("expected a non-empty token")
	}

	payload, err := maker.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if payload.Subject != "user-1" {
		t.Errorf("subject = %q, want %q", payload.Subject, "user-1")
	}
	if payload.Role != "member" {
		t.Errorf("role = %q, want %q", payload.Role, "member")
	}
	if payload.TeamID == nil || *payload.TeamID != 3 {
		t.Errorf("team_id = %v, want 3", payload.TeamID)
	}
	if payload.Type != TypeAccess {
		t.Errorf("type = %q, want %q", payload.Type, TypeAccess)
	}
	if payload.ID != createdPayload.ID {
		t.Errorf("token ID = %q, want %q", payload.ID, createdPayload.ID)
	}
}

func TestJWTMakerRejectsShortKey(t *testing.T) {
	if _, err := NewJWTMaker("too-short"); err == nil {
		t.Fatal("expected an error for a short secret key")
	}
}

func TestJWTMakerRejectsExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker: %v", err)
	}

	tokenString, _, err := maker.CreateToken("user-1", "member", nil, TypeAccess, -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err = maker.VerifyToken(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyToken error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTMakerRejectsTamperedToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker: %v", err)
	}

	tokenString, _, err := maker.CreateToken("user-1", "admin", nil, TypeAccess, time.Minute)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	otherMaker, err := NewJWTMaker(strings.Repeat("x", 32))
	if err != nil {
		t.Fatalf("NewJWTMaker: %v", err)
	}

	if _, err = otherMaker.VerifyToken(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyToken error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTMakerKeepsRefreshTypeDistinct(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker: %v", err)
	}

	tokenString, _, err := maker.CreateToken("user-1", "member", nil, TypeRefresh, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	payload, err := maker.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if payload.Type != TypeRefresh {
		t.Fatalf("type = %q, want %q", payload.Type, TypeRefresh)
	}
}
