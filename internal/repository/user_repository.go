package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"movieapi/internal/model"
)

// UserRepository defines persistence operations for users.
// Lookups that miss return gorm.ErrRecordNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Search(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.Search(ctx, model.UserFilter{})
}

// Search matches every present filter field by equality; an empty filter lists all users.
func (r *userRepository) Search(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).Order("id")
	if conds := filter.Conditions(); len(conds) > 0 {
		q = q.Where(conds)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update writes every column of an existing user. It never inserts: a user
// deleted in the meantime yields gorm.ErrRecordNotFound.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExisting(tx, &model.User{}, user.ID); err != nil {
			return err
		}
		return tx.Model(user).Select("*").Omit("id", "created_at").Updates(user).Error
	})
}

// UpdateLastLogin stamps the login time. A missing row is not an error; some
// MySQL setups report zero affected rows when the value is unchanged.
func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
