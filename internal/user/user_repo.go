package user

import (
	"errors"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user and profile data operations
type UserRepository interface {
	CreateUser(u *User) error
	UpdateUser(u *User) error
	GetUserByID(id uint) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByVerifyToken(token string) (*User, error)

	CreateProfile(p *AccountProfile) error
	UpdateProfile(p *AccountProfile) error
	GetProfileByUserID(userID uint) (*AccountProfile, error)

	SaveRefreshToken(token *RefreshToken) error
	GetRefreshToken(tokenString string) (*RefreshToken, error)
	RevokeRefreshToken(tokenString string) error
	RevokeAllRefreshTokensForUser(userID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) UpdateUser(u *User) error {
	return r.db.Save(u).Error
}

// GetUserByID loads the user with its profile, so role predicates evaluate
// against current data.
func (r *userRepository) GetUserByID(id uint) (*User, error) {
	var u User
	if err := r.db.Preload("Profile").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Preload("Profile").Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByVerifyToken(token string) (*User, error) {
	var u User
	if err := r.db.Where("verify_token = ?", token).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) CreateProfile(p *AccountProfile) error {
	return r.db.Create(p).Error
}

func (r *userRepository) UpdateProfile(p *AccountProfile) error {
	return r.db.Save(p).Error
}

func (r *userRepository) GetProfileByUserID(userID uint) (*AccountProfile, error) {
	var p AccountProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) SaveRefreshToken(token *RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *userRepository) GetRefreshToken(tokenString string) (*RefreshToken, error) {
	var t RefreshToken
	if err := r.db.Where("token = ? AND revoked = ?", tokenString, false).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *userRepository) RevokeRefreshToken(tokenString string) error {
	return r.db.Model(&RefreshToken{}).Where("token = ?", tokenString).Update("revoked", true).Error
}

func (r *userRepository) RevokeAllRefreshTokensForUser(userID uint) error {
	return r.db.Model(&RefreshToken{}).Where("user_id = ?", userID).Update("revoked", true).Error
}
