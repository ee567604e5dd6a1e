package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
	"github.com/stylehub-labs/stylehub-backend-go/utils"
)

// AuthService handles registration, login and profile updates.
type AuthService struct {
	users  store.UserStore
	tokens *utils.TokenManager
}

func NewAuthService(users store.UserStore, tokens *utils.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password and returns the user
// with a signed token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", InvalidStatef("please provide all required fields")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Addresses: []models.Address{},
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", InvalidStatef("email already registered")
		}
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	user.Password = ""
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token. The
// error is deliberately the same for a missing user and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", Forbiddenf("invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", Forbiddenf("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	user.Password = ""
	return user, token, nil
}

// UpdateProfile changes name, email and optionally the password.
func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, email, password string) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// AddAddress appends a shipping address to the user's address book.
func (s *AuthService) AddAddress(ctx context.Context, userID primitive.ObjectID, addr models.Address) (*models.User, error) {
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.Pincode == "" || addr.Phone == "" {
		return nil, InvalidStatef("please provide all address fields")
	}

	user, err := s.users.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}

	addr.ID = primitive.NewObjectID()
	user.Addresses = append(user.Addresses, addr)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}
