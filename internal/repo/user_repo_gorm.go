package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"users-api/internal/domain"
	"users-api/internal/feature/user"
	"users-api/pkg/utils"
)

// UserRepo stores users in postgres or mysql through gorm.
type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Migrate creates the users table if it does not exist yet.
func (r *UserRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&user.UserModel{})
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	u.ID = utils.NewID()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	m := user.FromDomain(u)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var rows []user.UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToDomain())
	}
	return out, nil
}

func (r *UserRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *UserRepo) Close(context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
