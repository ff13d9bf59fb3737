package httpapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/purvjoshi04/SharedInk/internal/auth"
	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/repository"
	"github.com/purvjoshi04/SharedInk/pkg/log"
	"github.com/purvjoshi04/SharedInk/pkg/response"
)

// AuthHandler serves account creation and signin.
type AuthHandler struct {
	store  repository.Store
	tokens *auth.JWTManager
}

func NewAuthHandler(store repository.Store, tokens *auth.JWTManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Signup creates an account and a personal canvas room, then returns a
// session token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalError(c, "failed to process password")
		return
	}

	user := &domain.User{
		ID:       uuid.New().String(),
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hash),
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			response.Conflict(c, "email already registered")
			return
		}
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("create user failed")
		response.InternalError(c, "failed to create user")
		return
	}

	// every account gets a default room so the canvas works right after
	// signup
	room := &domain.Room{
		ID:      uuid.New().String(),
		Slug:    fmt.Sprintf("canvas-%s-%d", user.ID, time.Now().UnixMilli()),
		AdminID: user.ID,
	}
	if err := h.store.CreateRoom(c.Request.Context(), room); err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("create default room failed")
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		response.InternalError(c, "failed to issue token")
		return
	}

	response.Created(c, domain.AuthResponse{Token: token, UserID: user.ID, RoomID: room.ID})
}

// Signin checks credentials and returns a session token together with
// the user's default room.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req domain.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.store.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Unauthorized(c, "invalid credentials")
			return
		}
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("find user failed")
		response.InternalError(c, "failed to sign in")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		response.InternalError(c, "failed to issue token")
		return
	}

	resp := domain.AuthResponse{Token: token, UserID: user.ID}
	if room, err := h.store.FindRoomByAdmin(c.Request.Context(), user.ID); err == nil {
		resp.RoomID = room.ID
	}

	response.Success(c, resp)
}
