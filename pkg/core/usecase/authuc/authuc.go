// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authuc contains the authentication use case: registration
// with a salted bcrypt password hash and login which verifies the
// hash and issues a signed bearer token carrying the user's role.
// The hashing mechanics themselves are the standard library of the
// bcrypt package; nothing here elaborates on them.
package authuc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/momeni/campus-parking/pkg/core/cerr"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/repo"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates that the email is unknown or the
// password does not match its stored hash. The two cases are not
// distinguished on purpose.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken indicates a malformed, expired, or badly signed
// bearer token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Session is the outcome of a successful login.
type Session struct {
	Token     string     // signed bearer token
	User      model.User // authenticated user (no secrets)
	ExpiresAt time.Time  // token expiry instant
}

// Claims is the verified identity which a bearer token carries, as
// consumed by the REST authentication middleware.
type Claims struct {
	UserID   int64
	Role     model.Role
	FullName string
}

// UseCase represents the authentication use case. It holds a database
// connection pool, the users repository instance, the token signing
// secret, and the token time-to-live.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users

	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// New instantiates an authentication use case. The signing secret is
// mandatory; the token time-to-live defaults to 24 hours.
func New(
	p repo.Pool, u repo.Users, secret string, opts ...Option,
) (*UseCase, error) {
	if secret == "" {
		return nil, errors.New("empty token signing secret")
	}
	uc := &UseCase{pool: p, usersrp: u, secret: []byte(secret)}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.tokenTTL == 0 {
		uc.tokenTTL = 24 * time.Hour
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Register creates a user with the given role, storing a bcrypt hash
// of the password. The plaintext password never leaves this function.
func (auth *UseCase) Register(
	ctx context.Context,
	collegeID, fullName, email, password string,
	role model.Role,
) (u *model.User, err error) {
	if err = role.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(password), bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	err = auth.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		u, err = auth.usersrp.Conn(c).Create(ctx, &model.User{
			CollegeID: collegeID,
			FullName:  fullName,
			Email:     email,
			Role:      role,
		}, string(hash))
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// Login verifies the email/password pair and issues a signed token.
// Unknown emails and wrong passwords both yield an
// Authentication-kinded ErrInvalidCredentials.
func (auth *UseCase) Login(ctx context.Context, email, password string) (
	s *Session, err error,
) {
	var u *model.User
	var hash string
	err = auth.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		u, hash, err = auth.usersrp.Conn(c).FindByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if u == nil {
		return nil, cerr.Authentication(ErrInvalidCredentials)
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return nil, cerr.Authentication(ErrInvalidCredentials)
	}
	now := auth.now()
	expiry := now.Add(auth.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatInt(u.ID, 10),
		"role": u.Role.String(),
		"name": u.FullName,
		"iat":  now.Unix(),
		"exp":  expiry.Unix(),
		"jti":  uuid.NewString(),
	})
	signed, err := token.SignedString(auth.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &Session{Token: signed, User: *u, ExpiresAt: expiry}, nil
}

// VerifyToken parses and validates a bearer token, returning the
// identity claims it carries. All failure modes collapse into an
// Authentication-kinded ErrInvalidToken.
func (auth *UseCase) VerifyToken(tokenString string) (*Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", t.Header["alg"],
				)
			}
			return auth.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return nil, cerr.Authentication(ErrInvalidToken)
	}
	sub, _ := claims["sub"].(string)
	roleStr, _ := claims["role"].(string)
	name, _ := claims["name"].(string)
	uid, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, cerr.Authentication(ErrInvalidToken)
	}
	role, err := model.ParseRole(roleStr)
	if err != nil {
		return nil, cerr.Authentication(ErrInvalidToken)
	}
	return &Claims{UserID: uid, Role: role, FullName: name}, nil
}
