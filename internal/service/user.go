package service

import (
	"time"

	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/errors"
	"github.com/converse-dev/converse/internal/jwt"
	"github.com/converse-dev/converse/internal/utils"
)

type UserService interface {
	Register(username, email, password string, avatar *string) (*domain.User, error)
	Login(usernameOrEmail, password string) (*domain.User, string, error)
	Get(id domain.UserId) (*domain.User, error)
	Search(query string) ([]*domain.User, error)
}

type UserStorage interface {
	CreateUser(user *domain.User) (*domain.User, error)
	GetUser(id domain.UserId) (*domain.User, error)
	GetUserByUsernameOrEmail(usernameOrEmail string) (*domain.User, error)
	SearchUsers(query string) ([]*domain.User, error)
}

type User struct {
	storage UserStorage
	jwt     jwt.JwtService
}

func NewUser(storage UserStorage, jwtService jwt.JwtService) *User {
	return &User{storage, jwtService}
}

func (u *User) Register(username, email, password string, avatar *string) (*domain.User, error) {
	passHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return u.storage.CreateUser(&domain.User{
		Username:  username,
		Email:     email,
		PassHash:  passHash,
		Avatar:    avatar,
		CreatedAt: time.Now().UTC().Round(time.Microsecond),
	})
}

// Login resolves the user by exact username or email and issues a token.
func (u *User) Login(usernameOrEmail, password string) (*domain.User, string, error) {
	user, err := u.storage.GetUserByUsernameOrEmail(usernameOrEmail)
	if err != nil {
		return nil, "", err
	}
	if !utils.CheckPassword(password, user.PassHash) {
		return nil, "", errors.WrongPassword
	}
	token, err := u.jwt.NewToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *User) Get(id domain.UserId) (*domain.User, error) {
	return u.storage.GetUser(id)
}

// Search matches the query as a substring of username or email.
func (u *User) Search(query string) ([]*domain.User, error) {
	return u.storage.SearchUsers(query)
}
