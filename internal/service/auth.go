package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/logger"
)

type AuthService interface {
	Signup(data domain.SignupData) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage UserStorage
	jwt     Jwt
}

type UserStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(username domain.Username) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage UserStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// Signup stores a new user with a bcrypt hash of the password.
func (a *Auth) Signup(data domain.SignupData) (domain.UserId, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}
	return a.storage.SaveUser(domain.User{
		Username:  data.Username,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		PassHash:  string(passHash),
	})
}

// Login checks the credentials and returns a signed session token.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	user, err := a.storage.User(creds.Username)
	if err != nil {
		// to not leak existing users
		if errors.IsNotFound(err) {
			return "", errors.ErrBadCreds
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Info("password verification failed", "username", creds.Username)
		return "", errors.ErrBadCreds
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return "", err
	}
	return token, nil
}
