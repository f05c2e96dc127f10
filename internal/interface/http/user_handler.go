package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/movielog/movielog/internal/application"
	"github.com/movielog/movielog/internal/domain/entity"
	repo "github.com/movielog/movielog/internal/domain/repository"
	"github.com/movielog/movielog/internal/interface/middleware"
	"github.com/movielog/movielog/pkg/helpers"
	"github.com/movielog/movielog/pkg/response"
	"github.com/movielog/movielog/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email"`
	Username        string `json:"username" form:"username" binding:"required,uname"`
	Password        string `json:"password" form:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" binding:"required,eqfield=Password"`
	FirstName       string `json:"first_name" form:"first_name" binding:"required"`
	LastName        string `json:"last_name" form:"last_name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
	}
}

// Register creates the account, logs the new user in and points them at
// their (empty) library. A duplicate registration is sent to the login
// page instead.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid registration form", validation.ToDetails(err), nil)
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			response.Error[any](c, http.StatusConflict, "that user is already registered, please log in", nil, gin.H{"redirect": "/login"})
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil, nil)
		return
	}

	pair, err := h.Svc.IssueTokens(c.Request.Context(), u)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("issue tokens after register failed")
		response.Success(c, http.StatusCreated, userJSON(u), "you have registered, please log in", gin.H{"redirect": "/login"})
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusCreated, userJSON(u), "you have registered", gin.H{"redirect": "/mymovies"})
}

// Login authenticates and establishes the session. An unknown email is
// pointed at registration; a deferred "next" target is honored when it is
// a local path.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid login form", validation.ToDetails(err), nil)
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "that email is not registered, please register", nil, gin.H{"redirect": "/register"})
		return
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil, nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil, nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)

	redirect := "/mymovies"
	// Only local paths; anything else is dropped.
	if next := c.Query("next"); strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		redirect = next
	}
	response.Success(c, http.StatusOK, userJSON(u), "you are now logged in", gin.H{"redirect": redirect})
}

// Refresh rotates the token pair using the refresh cookie.
func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil, nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil, nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", nil)
}

// Logout tears down the session and clears the cookies.
func (h *UserHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", gin.H{"redirect": "/"})
}

// Profile renders the profile of the user in the path.
func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil, nil)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile", nil)
}

// UpdateProfile applies name/avatar changes to the caller's own profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err), nil)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to update profile", nil, nil)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile updated", nil)
}

// UploadAvatar accepts a multipart image and stores it in object storage.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil, nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read avatar file", nil, nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("avatar upload failed")
		response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}
