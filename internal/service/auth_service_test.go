package service

import (
	"errors"
	"testing"

	"controlling_kiln/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type authRepoStub struct {
	createID   int
	createErr  error
	user       *models.User
	getErr     error
	lastHash   string
	lastCreate string
}

func (a *authRepoStub) Create(username, hash string) (int, error) {
	a.lastCreate = username
	a.lastHash = hash
	return a.createID, a.createErr
}
func (a *authRepoStub) GetByUsername(username string) (*models.User, error) {
	return a.user, a.getErr
}

const testSigningKey = "test-signing-key"

func TestAuthService_SignUp_HashesPassword(t *testing.T) {
	repo := &authRepoStub{createID: 5}
	svc := NewAuthService(repo, testSigningKey)

	id, err := svc.SignUp("potter", "wheel123")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if id != 5 || repo.lastCreate != "potter" {
		t.Fatalf("id=%d create=%q", id, repo.lastCreate)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.lastHash), []byte("wheel123")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("wheel123"), bcrypt.MinCost)
	repo := &authRepoStub{user: &models.User{ID: 9, Username: "potter", PasswordHash: string(hash)}}
	svc := NewAuthService(repo, testSigningKey)

	token, err := svc.GenerateToken("potter", "wheel123")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if id != 9 {
		t.Fatalf("user id = %d, want 9", id)
	}
}

func TestAuthService_GenerateToken_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("wheel123"), bcrypt.MinCost)
	repo := &authRepoStub{user: &models.User{ID: 9, PasswordHash: string(hash)}}
	svc := NewAuthService(repo, testSigningKey)

	if _, err := svc.GenerateToken("potter", "nope"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("err = %v, want ErrInvalidPassword", err)
	}
}

func TestAuthService_GenerateToken_UnknownUser(t *testing.T) {
	svc := NewAuthService(&authRepoStub{}, testSigningKey)

	if _, err := svc.GenerateToken("ghost", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestAuthService_ParseToken_RejectsForeignKey(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	repo := &authRepoStub{user: &models.User{ID: 1, PasswordHash: string(hash)}}

	issuer := NewAuthService(repo, "other-key")
	token, err := issuer.GenerateToken("potter", "pw")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	verifier := NewAuthService(repo, testSigningKey)
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatalf("token signed with a different key must not parse")
	}
}
