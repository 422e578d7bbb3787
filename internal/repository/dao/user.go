package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNickExists = errors.New("nick already taken")
	ErrUserNotFound   = errors.New("user not found")
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Nick  string `gorm:"uniqueIndex;not null"`
	Email string

	Name         string
	Bio          string
	ImageProfile string
	AccountType  string `gorm:"not null;default:user"`
	Public       bool   `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// userUpsert overwrites the profile fields of an existing row. account_type
// is left out so an upsert never changes it.
var userUpsert = clause.OnConflict{
	Columns:   []clause.Column{{Name: "id"}},
	DoUpdates: clause.AssignmentColumns([]string{"nick", "email", "name", "bio", "image_profile", "public", "updated_at"}),
}

// Upsert inserts the user or overwrites its profile fields. The account
// type is never changed by an upsert.
func (d *UserDAO) Upsert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Clauses(userUpsert).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return User{}, ErrUserNickExists
		}

		return User{}, result.Error
	}

	return d.FindByID(ctx, user.ID)
}

func (d *UserDAO) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Order("nick").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}
