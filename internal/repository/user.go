package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository/dao"
)

var (
	ErrUserNickExists = dao.ErrUserNickExists
	ErrUserNotFound   = dao.ErrUserNotFound
)

type UserDAO interface {
	Upsert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Upsert(ctx context.Context, user domain.User) (domain.User, error) {
	saved, err := r.dao.Upsert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	users := make([]domain.User, len(found))
	for i, u := range found {
		users[i] = r.daoToDomain(u)
	}

	return users, nil
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	accountType := u.AccountType
	if accountType == "" {
		accountType = domain.AccountTypeUser
	}

	return dao.User{
		ID:           u.ID,
		Nick:         u.Nick,
		Email:        u.Email,
		Name:         u.Name,
		Bio:          u.Bio,
		ImageProfile: u.ImageProfile,
		AccountType:  accountType,
		Public:       u.Public,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:           u.ID,
		Nick:         u.Nick,
		Email:        u.Email,
		Name:         u.Name,
		Bio:          u.Bio,
		ImageProfile: u.ImageProfile,
		AccountType:  u.AccountType,
		Public:       u.Public,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
