package service

import (
	"context"
	"time"

	"github.com/hametuha/hamelp-be/repository"
	"github.com/hametuha/hamelp-be/types"
)

type UserService interface {
	CreateUser(ctx context.Context, user *types.User) error
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
}

type userService struct {
	repo repository.UserRepo
}

func NewUserService(repo repository.UserRepo) UserService {
	return &userService{
		repo: repo,
	}
}

func (s *userService) CreateUser(ctx context.Context, user *types.User) error {
	user.CreatedAt = time.Now().Unix()
	user.UpdatedAt = time.Now().Unix()
	if user.Role == "" {
		user.Role = types.USER_ROLE_SUBSCRIBER
	}
	return s.repo.CreateUser(ctx, user)
}

func (s *userService) GetUser(ctx context.Context, id string) (*types.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}
