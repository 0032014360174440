package auth

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/user"
	"github.com/DhavalSuthar-24/transferportal/pkg/mailer"
	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
	"github.com/DhavalSuthar-24/transferportal/pkg/token"
	"github.com/DhavalSuthar-24/transferportal/pkg/utils"
	"github.com/DhavalSuthar-24/transferportal/pkg/validator"
)

const verifyTokenTTL = 48 * time.Hour

// AuthController handles registration, verification and session HTTP requests
type AuthController struct {
	userRepo  user.UserRepository
	orgRepo   organization.OrganizationRepository
	mail      mailer.Mailer
	appConfig *config.Config
}

func NewAuthController(userRepo user.UserRepository, orgRepo organization.OrganizationRepository, mail mailer.Mailer, appConfig *config.Config) *AuthController {
	return &AuthController{userRepo: userRepo, orgRepo: orgRepo, mail: mail, appConfig: appConfig}
}

// PlayerSignup godoc
// @Summary Register a player account
// @Description Creates an inactive account and sends a verification email.
// @Tags Auth
// @Accept json
// @Produce json
// @Param signup body PlayerSignupRequest true "Player registration"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Router /auth/signup/player [post]
func (ac *AuthController) PlayerSignup(c *gin.Context) {
	var req PlayerSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid signup data", validator.ParseError(err))
		return
	}

	u, _ := ac.registerUser(c, req.FirstName, req.LastName, req.Email, req.Password)
	if u == nil {
		return
	}

	profile := &user.AccountProfile{
		UserID:      u.ID,
		Role:        user.RolePlayer,
		PhoneNumber: req.PhoneNumber,
	}
	if err := ac.userRepo.CreateProfile(profile); err != nil {
		responses.InternalServerError(c, "Failed to create profile")
		return
	}

	ac.sendVerificationEmail(u)
	responses.SendSuccess(c, http.StatusCreated, "Account created. Check your email to verify your address.", nil)
}

// CoachSignup godoc
// @Summary Register a coach account
// @Description Creates an inactive coach account tied to a home association.
// @Description When the signup email's domain matches the association's
// @Description official domain the coach is approved automatically; otherwise
// @Description an admin must approve the account before it can contact players.
// @Tags Auth
// @Accept json
// @Produce json
// @Param signup body CoachSignupRequest true "Coach registration"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /auth/signup/coach [post]
func (ac *AuthController) CoachSignup(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var req CoachSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid signup data", validator.ParseError(err))
		return
	}

	assoc, err := ac.orgRepo.GetActiveAssociation(req.AssociationID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load association")
		return
	}
	if assoc == nil {
		responses.SendValidationError(c, "Association not found in region", nil)
		return
	}

	u, _ := ac.registerUser(c, req.FirstName, req.LastName, req.Email, req.Password)
	if u == nil {
		return
	}

	profile := &user.AccountProfile{
		UserID:          u.ID,
		Role:            user.RoleCoach,
		PhoneNumber:     req.PhoneNumber,
		AssociationID:   &assoc.ID,
		IsCoachApproved: emailMatchesDomain(req.Email, assoc.OfficialDomain),
	}
	if err := ac.userRepo.CreateProfile(profile); err != nil {
		responses.InternalServerError(c, "Failed to create profile")
		return
	}

	ac.sendVerificationEmail(u)

	message := "Account created. Check your email to verify your address."
	if !profile.IsCoachApproved {
		message += " Your coach account is pending admin approval."
	}
	responses.SendSuccess(c, http.StatusCreated, message, nil)
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Tags Auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid or expired token"
// @Router /auth/verify-email [get]
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	tok := c.Query("token")
	if tok == "" {
		responses.BadRequest(c, "Verification token is required")
		return
	}

	u, err := ac.userRepo.GetUserByVerifyToken(tok)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify email")
		return
	}
	if u == nil || u.VerifyExpires == nil || u.VerifyExpires.Before(time.Now()) {
		responses.BadRequest(c, "Verification token is invalid or has expired")
		return
	}

	u.IsActive = true
	u.VerifyToken = ""
	u.VerifyExpires = nil
	if err := ac.userRepo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to verify email")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Email verified. You can now log in.", nil)
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} responses.SuccessResponse{data=LoginResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid login data", validator.ParseError(err))
		return
	}

	u, err := ac.userRepo.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil {
		responses.InternalServerError(c, "Failed to log in")
		return
	}
	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}
	if !u.IsActive {
		responses.Unauthorized(c, "Please verify your email before logging in")
		return
	}

	tokens, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged in", LoginResponse{
		User:   newAuthUserResponse(u),
		Tokens: *tokens,
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Description The presented refresh token is revoked and replaced.
// @Tags Auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse{data=TokenPairResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/refresh [post]
func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid refresh payload", validator.ParseError(err))
		return
	}

	claims, err := token.ValidateJWT(req.RefreshToken, ac.appConfig.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, "Invalid refresh token")
		return
	}

	stored, err := ac.userRepo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.InternalServerError(c, "Failed to refresh session")
		return
	}
	if stored == nil || stored.UserID != claims.UserID || stored.ExpiresAt.Before(time.Now()) {
		responses.Unauthorized(c, "Invalid refresh token")
		return
	}

	u, err := ac.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		responses.InternalServerError(c, "Failed to refresh session")
		return
	}
	if u == nil || !u.IsActive {
		responses.Unauthorized(c, "Account is not active")
		return
	}

	if err := ac.userRepo.RevokeRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to refresh session")
		return
	}
	tokens, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session refreshed", tokens)
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param logout body LogoutRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid logout payload", validator.ParseError(err))
		return
	}
	if err := ac.userRepo.RevokeRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to log out")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged out", nil)
}

// Me godoc
// @Summary Get the current account
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=AuthUserResponse}
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", newAuthUserResponse(u))
}

// ApproveCoach godoc
// @Summary Approve or revoke a coach account
// @Tags Auth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param approval body ApproveCoachRequest true "Approval flag"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/coaches/{id}/approve [post]
func (ac *AuthController) ApproveCoach(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid user id")
		return
	}

	var req ApproveCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid approval payload", validator.ParseError(err))
		return
	}

	profile, err := ac.userRepo.GetProfileByUserID(uint(id64))
	if err != nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}
	if profile == nil || profile.Role != user.RoleCoach {
		responses.NotFound(c, "Coach")
		return
	}

	profile.IsCoachApproved = req.Approved
	if err := ac.userRepo.UpdateProfile(profile); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}

	message := "Coach approved"
	if !req.Approved {
		message = "Coach approval revoked"
	}
	responses.SendSuccess(c, http.StatusOK, message, nil)
}

// --- helpers ---

// registerUser creates the inactive account row. On failure it has already
// written the HTTP response and returns nil.
func (ac *AuthController) registerUser(c *gin.Context, firstName, lastName, email, password string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := ac.userRepo.GetUserByEmail(email)
	if err != nil {
		responses.InternalServerError(c, "Failed to create account")
		return nil, err
	}
	if existing != nil {
		responses.Conflict(c, "An account with this email already exists")
		return nil, nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		responses.InternalServerError(c, "Failed to create account")
		return nil, err
	}

	expires := time.Now().Add(verifyTokenTTL)
	u := &user.User{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		Password:      hashed,
		IsActive:      false,
		VerifyToken:   utils.GenerateVerificationToken(),
		VerifyExpires: &expires,
	}
	if err := ac.userRepo.CreateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to create account")
		return nil, err
	}
	return u, nil
}

func (ac *AuthController) issueTokens(u *user.User) (*TokenPairResponse, error) {
	access, err := token.GenerateJWT(u.ID, u.EffectiveRole(), ac.appConfig.JWT.AccessTokenSecret, ac.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := token.GenerateRefreshToken(u.ID, ac.appConfig.JWT.RefreshTokenSecret, ac.appConfig.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return nil, err
	}
	record := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: time.Now().AddDate(0, 0, ac.appConfig.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.userRepo.SaveRefreshToken(record); err != nil {
		return nil, err
	}
	return &TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (ac *AuthController) sendVerificationEmail(u *user.User) {
	link := ac.appConfig.App.FrontendURL + "/verify-email?token=" + u.VerifyToken
	body := "Welcome to the Transfer Portal, " + u.FirstName + "!\n\n" +
		"Please verify your email address by opening the link below:\n" +
		link + "\n\n" +
		"The link expires in 48 hours."
	mailer.SendBestEffort(ac.mail, u.Email, "Verify your email", body)
}

func newAuthUserResponse(u *user.User) AuthUserResponse {
	return AuthUserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Role:            u.EffectiveRole(),
		IsCoachApproved: u.Profile != nil && u.Profile.IsCoachApproved,
	}
}

func emailMatchesDomain(email, domain string) bool {
	if domain == "" {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.EqualFold(email[at+1:], domain)
}
