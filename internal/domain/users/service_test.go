package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"petify/internal/adapters/auth/jwt"
	"petify/internal/adapters/auth/password"
	mem "petify/internal/adapters/storage/memory"
	"petify/internal/domain/pets"
	"petify/internal/domain/users"
	"petify/internal/platform/apperr"
	"petify/internal/platform/patch"
)

type fixture struct {
	svc      *users.Service
	identity *users.Identity
	repo     users.Repository
	store    *mem.Store
}

func setup(t *testing.T) fixture {
	t.Helper()
	s := mem.NewStore()
	repo := mem.NewUserRepo(s)
	tokens := jwt.NewManager(jwt.Config{Secret: "test-secret", Audience: "petify:auth", TTL: time.Hour})

	return fixture{
		svc:      users.NewService(repo, &password.Bcrypt{Cost: bcrypt.MinCost}, tokens, s),
		identity: users.NewIdentity(jwt.NewVerifier(tokens), repo),
		repo:     repo,
		store:    s,
	}
}

func register(t *testing.T, f fixture, email string) users.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), users.RegisterInput{Email: email, Password: "secret123"})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	f := setup(t)

	u := register(t, f, "  Ana@Example.COM ")
	assert.Equal(t, "ana@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsSuperuser)
	assert.False(t, u.IsVerified)
	assert.NotEqual(t, "secret123", u.HashedPassword)

	_, err := f.svc.Register(context.Background(), users.RegisterInput{Email: "ana@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.EqualError(t, err, users.CodeUserAlreadyExists)

	_, err = f.svc.Register(context.Background(), users.RegisterInput{Email: "x@example.com", Password: "short"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestLoginAndIdentity(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	u := register(t, f, "ana@example.com")

	tok, err := f.svc.Login(ctx, "ANA@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)

	claims, err := f.identity.Verify(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, err = f.svc.Login(ctx, "ana@example.com", "wrong-pass")
	assert.EqualError(t, err, users.CodeBadCredentials)
	_, err = f.svc.Login(ctx, "nobody@example.com", "secret123")
	assert.EqualError(t, err, users.CodeBadCredentials)

	_, err = f.identity.Verify(ctx, "garbage")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// desactivado => token inválido y login rechazado
	u.IsActive = false
	require.NoError(t, f.repo.Update(ctx, u))

	_, err = f.identity.Verify(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = f.svc.Login(ctx, "ana@example.com", "secret123")
	assert.EqualError(t, err, users.CodeBadCredentials)
}

func TestUpdateSelf_IgnoresFlags(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	u := register(t, f, "ana@example.com")

	out, err := f.svc.UpdateSelf(ctx, u.ID, users.UpdateInput{
		Email:       patch.Set("Nueva@Example.com"),
		IsSuperuser: patch.Set(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "nueva@example.com", out.Email)
	assert.False(t, out.IsSuperuser)

	register(t, f, "taken@example.com")
	_, err = f.svc.UpdateSelf(ctx, u.ID, users.UpdateInput{Email: patch.Set("TAKEN@example.com")})
	assert.EqualError(t, err, users.CodeEmailAlreadyExists)

	_, err = f.svc.UpdateSelf(ctx, u.ID, users.UpdateInput{Password: patch.Set("newsecret99")})
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "nueva@example.com", "newsecret99")
	assert.NoError(t, err)
}

func TestAdminOperations(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	admin := register(t, f, "admin@example.com")
	target := register(t, f, "eve@example.com")

	_, err := f.svc.GetAsAdmin(ctx, target.ID, admin.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	admin.IsSuperuser = true
	require.NoError(t, f.repo.Update(ctx, admin))

	got, err := f.svc.GetAsAdmin(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.Email, got.Email)

	up, err := f.svc.UpdateAsAdmin(ctx, admin.ID, target.ID, users.UpdateInput{IsVerified: patch.Set(true)})
	require.NoError(t, err)
	assert.True(t, up.IsVerified)

	_, err = f.svc.UpdateAsAdmin(ctx, admin.ID, target.ID, users.UpdateInput{IsActive: patch.Null[bool]()})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.svc.GetAsAdmin(ctx, admin.ID, "missing")
	assert.EqualError(t, err, "User not found")
}

func TestDeleteAsAdmin_CascadesPets(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	admin := register(t, f, "admin@example.com")
	admin.IsSuperuser = true
	require.NoError(t, f.repo.Update(ctx, admin))
	target := register(t, f, "eve@example.com")

	petRepo := mem.NewPetRepo(f.store)
	petsSvc := pets.NewService(petRepo, f.store)
	p, err := petsSvc.Create(ctx, target.ID, pets.CreateInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAsAdmin(ctx, admin.ID, target.ID))

	_, err = petRepo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = f.svc.DeleteAsAdmin(ctx, admin.ID, target.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
