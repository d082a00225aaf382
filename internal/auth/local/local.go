// Package local is a self-contained identity provider for development and
// tests: bcrypt password hashes in storage, HS256 access tokens.
package local

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
	"github.com/studyhive-dev/studyhive/internal/logger"
)

type User struct {
	Id        domain.UserId
	Email     domain.Email
	PassHash  string
	CreatedAt time.Time
}

type UserStorage interface {
	SaveUser(ctx context.Context, user User) error
	UserByEmail(ctx context.Context, email domain.Email) (User, error)
}

type Provider struct {
	storage   UserStorage
	secretKey string
	ttl       time.Duration
}

func New(storage UserStorage, secretKey string, ttl time.Duration) *Provider {
	return &Provider{storage: storage, secretKey: secretKey, ttl: ttl}
}

func (p *Provider) SignUp(ctx context.Context, email domain.Email, password domain.Password, name string) (domain.UserId, error) {
	if _, err := p.storage.UserByEmail(ctx, email); err == nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusBadRequest}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Id:        uuid.NewString(),
		Email:     email,
		PassHash:  string(passHash),
		CreatedAt: time.Now().UTC(),
	}
	if err := p.storage.SaveUser(ctx, user); err != nil {
		return "", err
	}
	return user.Id, nil
}

func (p *Provider) SignIn(ctx context.Context, email domain.Email, password domain.Password) (auth.Session, error) {
	badCreds := &internal_errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}

	user, err := p.storage.UserByEmail(ctx, email)
	if err != nil {
		return auth.Session{}, badCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return auth.Session{}, badCreds
	}

	token, err := p.newToken(user)
	if err != nil {
		return auth.Session{}, err
	}
	return auth.Session{AccessToken: token, UserId: user.Id}, nil
}

func (p *Provider) Resolve(ctx context.Context, tokenString string) (*domain.Caller, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(p.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	uid, ok := claims["uid"].(string)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	email, _ := claims["email"].(string)

	return &domain.Caller{Id: uid, Email: email}, nil
}

func (p *Provider) newToken(user User) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = user.Id
	claims["email"] = user.Email
	claims["exp"] = time.Now().Add(p.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "err", err)
		return "", fmt.Errorf("can't create token")
	}
	return tokenString, nil
}
