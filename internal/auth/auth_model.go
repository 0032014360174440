package auth

// Request/response DTOs for the auth endpoints.

type PlayerSignupRequest struct {
	FirstName   string `json:"first_name" binding:"required,min=2,max=50"`
	LastName    string `json:"last_name" binding:"required,min=2,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,e164"`
}

type CoachSignupRequest struct {
	FirstName     string `json:"first_name" binding:"required,min=2,max=50"`
	LastName      string `json:"last_name" binding:"required,min=2,max=50"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
	PhoneNumber   string `json:"phone_number" binding:"omitempty,e164"`
	AssociationID uint   `json:"association_id" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ApproveCoachRequest struct {
	Approved bool `json:"approved"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthUserResponse struct {
	ID              uint   `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	IsCoachApproved bool   `json:"is_coach_approved"`
}

type LoginResponse struct {
	User   AuthUserResponse  `json:"user"`
	Tokens TokenPairResponse `json:"tokens"`
}
