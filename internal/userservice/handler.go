package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quillfeed/quillfeed/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, secret string) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		c:      c,
		secret: []byte(secret),
	}
}

// RegisterUser creates a new user account, issues the first token pair and
// publishes a user.created event for the welcome email.
func (s *UserService) RegisterUser(ctx context.Context, email, name, password string) (*User, *AuthToken, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	validateName(v, name)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	u := User{
		Email: email,
		Name:  name,
	}

	if err := u.Password.set(password); err != nil {
		return nil, nil, err
	}

	if err := s.m.insertUser(ctx, &u); err != nil {
		return nil, nil, err
	}

	token, err := newAuthToken(u.ID, u.Email, s.secret)
	if err != nil {
		return nil, nil, err
	}

	data := struct {
		Email string
		Name  string
	}{
		Email: u.Email,
		Name:  u.Name,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, nil, err
	}

	if err := s.mb.Publish(ctx, eventData, common.UserCreatedKey, common.UserExchange); err != nil {
		return nil, nil, err
	}

	return &u, token, nil
}

// LoginUser verifies the email/password pair and issues a fresh token pair.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*User, *AuthToken, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, nil, ErrAuthenticationFailure
		default:
			return nil, nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrAuthenticationFailure
	}

	token, err := newAuthToken(user.ID, user.Email, s.secret)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// RefreshToken reissues a token pair for an already-authenticated user.
func (s *UserService) RefreshToken(ctx context.Context, userID int) (*User, *AuthToken, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	token, err := newAuthToken(user.ID, user.Email, s.secret)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// VerifyAccessToken resolves a bearer token to the user it identifies. The
// database lookup is memoized briefly so the middleware does not hit the
// users table on every request.
func (s *UserService) VerifyAccessToken(ctx context.Context, token string) (*User, error) {
	claims, err := parseToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	return s.GetUserByID(ctx, id)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyUserByID(id)); ok {
			return cached.(*User), nil
		}
	}

	user, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyUserByID(id), user)
	}

	return user, nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
