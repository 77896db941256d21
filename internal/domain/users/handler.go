package users

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petify/internal/middleware"
	"petify/internal/platform/apperr"
	"petify/internal/platform/httpx"
	"petify/internal/platform/patch"
)

// RegisterAuthRoutes: rutas públicas de /auth (register, login) + logout autenticado.
// authLimit se aplica sólo a register/login.
func RegisterAuthRoutes(r chi.Router, svc *Service, authLimit func(http.Handler) http.Handler) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Group(func(g chi.Router) {
			if authLimit != nil {
				g.Use(authLimit)
			}
			g.Post("/register", registerHandler(svc))
			g.Post("/login", loginHandler(svc))
		})
		ar.With(middleware.RequireAuth).Post("/logout", logoutHandler())
	})
}

// RegisterUserRoutes va dentro del grupo autenticado.
func RegisterUserRoutes(r chi.Router, svc *Service) {
	r.Get("/users/me", getMeHandler(svc))
	r.Patch("/users/me", updateMeHandler(svc))

	r.Get("/users/{userID}", getUserHandler(svc))
	r.Patch("/users/{userID}", updateUserHandler(svc))
	r.Delete("/users/{userID}", deleteUserHandler(svc))
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type updateUserRequest struct {
	Email       patch.Field[string] `json:"email" swaggertype:"string"`
	Password    patch.Field[string] `json:"password" swaggertype:"string"`
	IsActive    patch.Field[bool]   `json:"is_active" swaggertype:"boolean"`
	IsSuperuser patch.Field[bool]   `json:"is_superuser" swaggertype:"boolean"`
	IsVerified  patch.Field[bool]   `json:"is_verified" swaggertype:"boolean"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Email y password (8 a 64 caracteres)"
// @Success 201 {object} userResponse
// @Failure 400 {object} httpx.ErrorResponse "REGISTER_USER_ALREADY_EXISTS"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{Email: req.Email, Password: req.Password})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// loginHandler godoc
// @Summary Login
// @Description OAuth2 password flow: form-urlencoded con username (email) y password.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} httpx.ErrorResponse "LOGIN_BAD_CREDENTIALS"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httpx.WriteError(w, r, apperr.Invalid("payload", "invalid form"))
			return
		}

		username := strings.TrimSpace(r.PostForm.Get("username"))
		password := r.PostForm.Get("password")

		fields := map[string]string{}
		if username == "" {
			fields["username"] = "is required"
		}
		if password == "" {
			fields["password"] = "is required"
		}
		if len(fields) > 0 {
			httpx.WriteError(w, r, &apperr.ValidationError{Fields: fields})
			return
		}

		tok, err := svc.Login(r.Context(), username, password)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: tok.AccessToken, TokenType: "bearer"})
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Description Los tokens son stateless: el cliente sólo descarta el suyo.
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/logout [post]
func logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// getMeHandler godoc
// @Summary Usuario actual
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /users/me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		u, err := svc.Get(r.Context(), uid)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// updateMeHandler godoc
// @Summary Actualizar usuario actual
// @Description Sólo email y password; los flags se ignoran.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body updateUserRequest true "Campos a modificar"
// @Success 200 {object} userResponse
// @Failure 400 {object} httpx.ErrorResponse "UPDATE_USER_EMAIL_ALREADY_EXISTS"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /users/me [patch]
func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		in, err := decodeUpdate(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		u, err := svc.UpdateSelf(r.Context(), uid, in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// getUserHandler godoc
// @Summary Obtener usuario (superuser)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "ID del usuario"
// @Success 200 {object} userResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "User not found"
// @Router /users/{userID} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		u, err := svc.GetAsAdmin(r.Context(), uid, chi.URLParam(r, "userID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// updateUserHandler godoc
// @Summary Actualizar usuario (superuser)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "ID del usuario"
// @Param payload body updateUserRequest true "Campos a modificar"
// @Success 200 {object} userResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "User not found"
// @Router /users/{userID} [patch]
func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		in, err := decodeUpdate(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		u, err := svc.UpdateAsAdmin(r.Context(), uid, chi.URLParam(r, "userID"), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// deleteUserHandler godoc
// @Summary Borrar usuario (superuser)
// @Tags users
// @Security BearerAuth
// @Param userID path string true "ID del usuario"
// @Success 204
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "User not found"
// @Router /users/{userID} [delete]
func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		if err := svc.DeleteAsAdmin(r.Context(), uid, chi.URLParam(r, "userID")); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeUpdate(r *http.Request) (UpdateInput, error) {
	var req updateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return UpdateInput{}, err
	}
	if req.Email.Present && req.Email.Value != nil {
		if err := httpx.ValidateVar("email", *req.Email.Value, "required,email"); err != nil {
			return UpdateInput{}, err
		}
	}
	return UpdateInput{
		Email:       req.Email,
		Password:    req.Password,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
		IsVerified:  req.IsVerified,
	}, nil
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
	}
}
