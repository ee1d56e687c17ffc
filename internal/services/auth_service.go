package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/rohanz/shopkart/internal/models"
)

// UserStore is the credential store. The Mongo implementation lives in
// internal/db; tests use an in-memory one.
type UserStore interface {
	Insert(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a new user. Role defaults to "user"; only the two
// known roles are accepted.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, invalidf("username and password are required")
	}
	switch role {
	case "":
		role = models.RoleUser
	case models.RoleUser, models.RoleAdmin:
	default:
		return models.User{}, invalidf("unknown role %q", role)
	}

	// Pre-check for a friendly error; the unique index on username
	// still catches concurrent registrations.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return models.User{}, ErrDuplicateUsername
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Password:  hash,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks the password and issues a session token. Unknown
// username and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (token, role string, err error) {
	if username == "" || password == "" {
		return "", "", invalidf("username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.Password) {
		return "", "", ErrInvalidCredentials
	}

	token, err = IssueToken(s.jwtSecret, user)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ListUsers returns all accounts with password hashes stripped.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}
