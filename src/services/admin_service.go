package services

import (
	"context"
	"encoding/json"

	"cryptodash/src/models"
	"cryptodash/src/repositories"
	"cryptodash/src/schemas"
	"cryptodash/src/utils"

	"golang.org/x/crypto/bcrypt"
)

type AdminServiceI interface {
	ListUsers(ctx context.Context, search, role, status string, page, pageSize int) (*schemas.UserListResponse, error)
	CreateUser(ctx context.Context, req *schemas.UserCreateRequest, operator string) (*schemas.UserInfo, error)
	UpdateUser(ctx context.Context, id int64, req *schemas.UserUpdateRequest, operator string) error
	ResetPassword(ctx context.Context, id int64, newPassword, operator string) error
	DeleteUser(ctx context.Context, id int64, operator string) error
	ListLogs(ctx context.Context, operator, action string, page, pageSize int) (*schemas.LogListResponse, error)
	GetSettings(ctx context.Context) (*schemas.SettingsDocument, error)
	PutSettings(ctx context.Context, doc *schemas.SettingsDocument, operator string) error
	RecordOperation(ctx context.Context, operator, action, target, ip string)
}

type AdminService struct {
	users    repositories.UserRepository
	logs     repositories.OperationLogRepository
	settings repositories.SettingsRepository
}

func NewAdminService(users repositories.UserRepository, logs repositories.OperationLogRepository, settings repositories.SettingsRepository) *AdminService {
	return &AdminService{users: users, logs: logs, settings: settings}
}

func (s *AdminService) ListUsers(ctx context.Context, search, role, status string, page, pageSize int) (*schemas.UserListResponse, error) {
	users, total, err := s.users.List(ctx, search, role, status, page, pageSize)
	if err != nil {
		return nil, err
	}
	infos := make([]schemas.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, schemas.UserInfo{
			ID:       u.ID,
			Username: u.Username,
			Name:     u.Name,
			Role:     u.Role,
		})
	}
	return &schemas.UserListResponse{Users: infos, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *AdminService) CreateUser(ctx context.Context, req *schemas.UserCreateRequest, operator string) (*schemas.UserInfo, error) {
	if req.Username == "" || req.Password == "" {
		return nil, utils.BadRequest("username and password are required")
	}
	existing, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.BadRequest("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		Email:        req.Email,
		Role:         role,
		Status:       models.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.RecordOperation(ctx, operator, "create user", user.Username, "")
	return &schemas.UserInfo{ID: user.ID, Username: user.Username, Name: user.Name, Role: user.Role}, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id int64, req *schemas.UserUpdateRequest, operator string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NotFound("user not found")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.RecordOperation(ctx, operator, "update user", user.Username, "")
	return nil
}

func (s *AdminService) ResetPassword(ctx context.Context, id int64, newPassword, operator string) error {
	if newPassword == "" {
		return utils.BadRequest("new password is required")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NotFound("user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	s.RecordOperation(ctx, operator, "reset password", user.Username, "")
	return nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64, operator string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NotFound("user not found")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.RecordOperation(ctx, operator, "delete user", user.Username, "")
	return nil
}

func (s *AdminService) ListLogs(ctx context.Context, operator, action string, page, pageSize int) (*schemas.LogListResponse, error) {
	logs, total, err := s.logs.List(ctx, operator, action, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &schemas.LogListResponse{Logs: logs, Total: total}, nil
}

// GetSettings returns the stored settings document, falling back to defaults
// when nothing has been saved yet.
func (s *AdminService) GetSettings(ctx context.Context) (*schemas.SettingsDocument, error) {
	raw, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	doc := schemas.DefaultSettings()
	if raw != nil {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

func (s *AdminService) PutSettings(ctx context.Context, doc *schemas.SettingsDocument, operator string) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.settings.Put(ctx, raw); err != nil {
		return err
	}

	s.RecordOperation(ctx, operator, "update settings", "system_settings", "")
	return nil
}

// RecordOperation appends an audit row; audit failures are deliberately
// swallowed so they never fail the underlying operation.
func (s *AdminService) RecordOperation(ctx context.Context, operator, action, target, ip string) {
	_ = s.logs.Create(ctx, &models.OperationLog{
		Operator: operator,
		Action:   action,
		Target:   target,
		IP:       ip,
	})
}
