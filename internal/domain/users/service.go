package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"petify/internal/platform/apperr"
	"petify/internal/platform/patch"
	"petify/internal/ports/auth"
	"petify/internal/ports/storage"
)

// Códigos de error que el frontend ya conoce (mismo formato que {"detail": CODE}).
const (
	CodeUserAlreadyExists  = "REGISTER_USER_ALREADY_EXISTS"
	CodeBadCredentials     = "LOGIN_BAD_CREDENTIALS"
	CodeEmailAlreadyExists = "UPDATE_USER_EMAIL_ALREADY_EXISTS"
)

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	issuer auth.TokenIssuer
	tx     storage.TxRunner
	now    func() time.Time
}

func NewService(repo Repository, hasher auth.PasswordHasher, issuer auth.TokenIssuer, tx storage.TxRunner) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		tx:     tx,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

// UpdateInput: Email/Password para cualquier usuario sobre sí mismo;
// los flags sólo los aplica un superuser.
type UpdateInput struct {
	Email    patch.Field[string]
	Password patch.Field[string]

	IsActive    patch.Field[bool]
	IsSuperuser patch.Field[bool]
	IsVerified  patch.Field[bool]
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register crea un usuario activo, no verificado y sin privilegios.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return User{}, apperr.Invalid("email", "is required")
	}
	if err := validatePassword(in.Password); err != nil {
		return User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
		CreatedAt:      s.now(),
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByEmail(ctx, email); err == nil {
			return apperr.WithDetail(apperr.ErrBadRequest, CodeUserAlreadyExists)
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return s.repo.Create(ctx, u)
	})
	if errors.Is(err, apperr.ErrConflict) {
		return User{}, apperr.WithDetail(apperr.ErrBadRequest, CodeUserAlreadyExists)
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// Login verifica credenciales y emite un access token.
// Usuario inexistente, password incorrecto o cuenta inactiva responden igual.
func (s *Service) Login(ctx context.Context, email, password string) (auth.Token, error) {
	bad := apperr.WithDetail(apperr.ErrBadRequest, CodeBadCredentials)

	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return auth.Token{}, bad
		}
		return auth.Token{}, err
	}
	if !s.hasher.Compare(u.HashedPassword, password) || !u.IsActive {
		return auth.Token{}, bad
	}

	return s.issuer.Issue(auth.Claims{UserID: u.ID, Email: u.Email})
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, apperr.NotFound("User")
		}
		return User{}, err
	}
	return u, nil
}

// UpdateSelf ignora los flags de privilegio aunque vengan en el input.
func (s *Service) UpdateSelf(ctx context.Context, userID string, in UpdateInput) (User, error) {
	in.IsActive = patch.Field[bool]{}
	in.IsSuperuser = patch.Field[bool]{}
	in.IsVerified = patch.Field[bool]{}
	return s.update(ctx, userID, in)
}

func (s *Service) GetAsAdmin(ctx context.Context, actorID, targetID string) (User, error) {
	if err := s.requireSuperuser(ctx, actorID); err != nil {
		return User{}, err
	}
	return s.Get(ctx, targetID)
}

func (s *Service) UpdateAsAdmin(ctx context.Context, actorID, targetID string, in UpdateInput) (User, error) {
	if err := s.requireSuperuser(ctx, actorID); err != nil {
		return User{}, err
	}
	return s.update(ctx, targetID, in)
}

func (s *Service) DeleteAsAdmin(ctx context.Context, actorID, targetID string) error {
	if err := s.requireSuperuser(ctx, actorID); err != nil {
		return err
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		u, err := s.Get(ctx, targetID)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, u.ID)
	})
}

func (s *Service) update(ctx context.Context, userID string, in UpdateInput) (User, error) {
	if in.Email.Present && (in.Email.IsNull() || NormalizeEmail(*in.Email.Value) == "") {
		return User{}, apperr.Invalid("email", "must be a valid email")
	}
	if in.Password.Present {
		if in.Password.IsNull() {
			return User{}, apperr.Invalid("password", "is required")
		}
		if err := validatePassword(*in.Password.Value); err != nil {
			return User{}, err
		}
	}
	for name, f := range map[string]patch.Field[bool]{
		"is_active":    in.IsActive,
		"is_superuser": in.IsSuperuser,
		"is_verified":  in.IsVerified,
	} {
		if f.IsNull() {
			return User{}, apperr.Invalid(name, "must be a boolean")
		}
	}

	var hash string
	if in.Password.Present {
		h, err := s.hasher.Hash(*in.Password.Value)
		if err != nil {
			return User{}, err
		}
		hash = h
	}

	var out User
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		u, err := s.Get(ctx, userID)
		if err != nil {
			return err
		}

		if in.Email.Present {
			email := NormalizeEmail(*in.Email.Value)
			if email != u.Email {
				if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != u.ID {
					return apperr.WithDetail(apperr.ErrBadRequest, CodeEmailAlreadyExists)
				} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
					return err
				}
				u.Email = email
			}
		}
		if hash != "" {
			u.HashedPassword = hash
		}
		if in.IsActive.Present {
			u.IsActive = *in.IsActive.Value
		}
		if in.IsSuperuser.Present {
			u.IsSuperuser = *in.IsSuperuser.Value
		}
		if in.IsVerified.Present {
			u.IsVerified = *in.IsVerified.Value
		}

		if err := s.repo.Update(ctx, u); err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				return apperr.WithDetail(apperr.ErrBadRequest, CodeEmailAlreadyExists)
			}
			return err
		}
		out = u
		return nil
	})
	return out, err
}

func (s *Service) requireSuperuser(ctx context.Context, actorID string) error {
	actor, err := s.repo.GetByID(ctx, strings.TrimSpace(actorID))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrUnauthenticated
		}
		return err
	}
	if !actor.IsSuperuser {
		return apperr.ErrForbidden
	}
	return nil
}

func validatePassword(p string) error {
	switch n := len([]rune(p)); {
	case n < 8:
		return apperr.Invalid("password", "must be at least 8 characters")
	case n > 64:
		return apperr.Invalid("password", "must be at most 64 characters")
	}
	return nil
}
