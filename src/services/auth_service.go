package services

import (
	"context"
	"time"

	"cryptodash/src/models"
	"cryptodash/src/repositories"
	"cryptodash/src/schemas"
	"cryptodash/src/utils"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceI interface {
	Login(ctx context.Context, username, password string) (*schemas.LoginResponse, error)
	TokenAuth() *jwtauth.JWTAuth
}

type AuthService struct {
	users     repositories.UserRepository
	logs      repositories.OperationLogRepository
	tokenAuth *jwtauth.JWTAuth
	tokenTTL  time.Duration
}

func NewAuthService(users repositories.UserRepository, logs repositories.OperationLogRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		logs:      logs,
		tokenAuth: jwtauth.New("HS256", []byte(jwtSecret), nil),
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthService) TokenAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// Login verifies credentials and issues a signed token. Inactive users are
// rejected the same way as wrong credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*schemas.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != models.StatusActive {
		return nil, utils.Unauthorized("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.Unauthorized("invalid username or password")
	}

	now := time.Now()
	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	_ = s.logs.Create(ctx, &models.OperationLog{
		Operator: user.Username,
		Action:   "login",
		Target:   "system",
	})

	return &schemas.LoginResponse{
		Token: tokenString,
		User: schemas.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.Name,
			Role:     user.Role,
		},
	}, nil
}
