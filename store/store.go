package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/go-authgate/authcore/models"
)

// dialectors maps a driver name to its gorm dialector constructor. sqlite
// and postgres are built in; RegisterDriver adds more. Names are matched
// case-insensitively.
var dialectors = map[string]func(dsn string) gorm.Dialector{
	"sqlite":   sqlite.Open,
	"postgres": postgres.Open,
}

// RegisterDriver makes an additional database driver available to New.
func RegisterDriver(name string, open func(dsn string) gorm.Dialector) {
	dialectors[strings.ToLower(name)] = open
}

func openDialector(driver, dsn string) (gorm.Dialector, error) {
	open, ok := dialectors[strings.ToLower(driver)]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return open(dsn), nil
}

// Store is the gorm-backed user store the local providers read from.
type Store struct {
	db *gorm.DB
}

// New opens the database for the given driver and DSN and migrates the user
// schema.
func New(driver, dsn string) (*Store, error) {
	dialector, err := openDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// GetUserByUsername fetches the user record for (username, realm).
func (s *Store) GetUserByUsername(ctx context.Context, username, realm string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND realm = ?", username, realm).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user record, assigning an ID when absent.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Realm == "" {
		user.Realm = "default"
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND realm = ?", user.Username, user.Realm).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameConflict
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	return s.db.WithContext(ctx).Create(user).Error
}

// DeleteUser removes the user record for (username, realm).
func (s *Store) DeleteUser(ctx context.Context, username, realm string) error {
	res := s.db.WithContext(ctx).
		Where("username = ? AND realm = ?", username, realm).
		Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// SeedAdmin creates an initial admin user in the realm when it holds no
// users yet. With an empty password a random one is generated and returned
// so the caller can surface it once; an already-populated realm is a no-op.
func (s *Store) SeedAdmin(ctx context.Context, username, password, realm string) (string, error) {
	if realm == "" {
		realm = "default"
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("realm = ?", realm).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", nil
	}

	var generated string
	if password == "" {
		p, err := generateRandomPassword(16)
		if err != nil {
			return "", err
		}
		password = p
		generated = p
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	admin := &models.User{
		Username:     username,
		Realm:        realm,
		PasswordHash: string(hash),
	}
	admin.SetRoles("admin")
	if err := s.CreateUser(ctx, admin); err != nil {
		return "", err
	}
	return generated, nil
}

// generateRandomPassword generates a random password of specified length
func generateRandomPassword(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	// Use base64 URL encoding to get a safe, printable password
	return base64.URLEncoding.EncodeToString(bytes)[:length], nil
}
