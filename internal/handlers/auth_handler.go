package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yoonsu-park/community-board/internal/config"
	"github.com/yoonsu-park/community-board/internal/models"
	"github.com/yoonsu-park/community-board/internal/services"
	jwtutil "github.com/yoonsu-park/community-board/pkg/jwt"
	"github.com/yoonsu-park/community-board/pkg/middleware"
)

// AuthHandler issues and revokes session tokens.
type AuthHandler struct {
	Service  *services.UserService
	Registry *jwtutil.RevocationRegistry
	Config   *config.Config
}

func NewAuthHandler(service *services.UserService, registry *jwtutil.RevocationRegistry, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Service:  service,
		Registry: registry,
		Config:   cfg,
	}
}

// RegisterUserHandler handles account creation.
func (h *AuthHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), &models.User{
		Nickname: req.Nickname,
		Email:    req.Email,
	}, req.Password)
	if err != nil {
		log.WithError(err).Error("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User registered")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.PublicUser{ID: user.ID, Nickname: user.Nickname, Email: user.Email})
}

// LoginUserHandler checks credentials and issues a session token.
func (h *AuthHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithField("email", credentials.Email).Warn("Authentication failed")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Nickname, user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  models.PublicUser{ID: user.ID, Nickname: user.Nickname, Email: user.Email},
	})
}

// LogoutUserHandler revokes the presented token until its natural expiry.
func (h *AuthHandler) LogoutUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	token := middleware.GetTokenFromContext(r.Context())
	if claims == nil || token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	expiresAt := time.Now().Add(h.Config.TokenExpiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	h.Registry.Revoke(token, expiresAt)

	log.WithField("userID", claims.UserID).Info("User logged out, token revoked")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
}
