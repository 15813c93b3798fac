package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/identity"
)

// DialectorOpener is a function that returns a gorm.Dialector for a DSN.
type DialectorOpener = func(string) gorm.Dialector

func init() {
	RegisterDialector("sqlite", sqlite.Open)
}

// RegisterDialector registers a SQL storage provider backed by GORM.
func RegisterDialector(name string, open DialectorOpener) {
	Register(name, func(ctx context.Context, dsn string) (domain.Storage, error) {
		db, err := gorm.Open(open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, err
		}

		repo := NewGormStorage(db)
		if err := repo.AutoMigrate(); err != nil {
			return nil, err
		}
		return repo, nil
	})
}

// GormStorage implements domain.Storage on a SQL database via GORM. Used for
// local development and deployments without a MongoDB instance.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (s *GormStorage) DB() *gorm.DB { return s.db }

func (s *GormStorage) AutoMigrate() error {
	return s.db.AutoMigrate(
		&identity.User{},
		&identity.Todo{},
		&identity.ErrorLog{},
	)
}

func (s *GormStorage) CreateUser(ctx context.Context, u *identity.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.DuplicateKeyError{Field: s.collidingField(ctx, u)}
	}
	return err
}

// collidingField decides which unique column caused a duplicate-key failure.
// GORM's translated error does not carry the column, so probe for an existing
// row with the same username.
func (s *GormStorage) collidingField(ctx context.Context, u *identity.User) string {
	var n int64
	s.db.WithContext(ctx).Model(&identity.User{}).Where("username = ?", u.Username).Count(&n)
	if n > 0 {
		return "username"
	}
	return "email"
}

func (s *GormStorage) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	var u identity.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStorage) GetUserByResetToken(ctx context.Context, token string) (*identity.User, error) {
	var u identity.User
	err := s.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires > ?", token, time.Now()).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStorage) UpdateUser(ctx context.Context, u *identity.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *GormStorage) CreateTodo(ctx context.Context, t *identity.Todo) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *GormStorage) GetTodo(ctx context.Context, id string) (*identity.Todo, error) {
	var t identity.Todo
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GormStorage) ListTodosByUser(ctx context.Context, userID string) ([]identity.Todo, error) {
	var todos []identity.Todo
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *GormStorage) UpdateTodo(ctx context.Context, t *identity.Todo) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *GormStorage) DeleteTodo(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&identity.Todo{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *GormStorage) CreateLog(ctx context.Context, l *identity.ErrorLog) error {
	return s.db.WithContext(ctx).Create(l).Error
}
