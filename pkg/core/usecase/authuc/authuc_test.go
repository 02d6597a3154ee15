// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authuc_test

import (
	"context"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/momeni/campus-parking/internal/test/dbcontainer"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/schema"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/repo"
	"github.com/momeni/campus-parking/pkg/core/usecase/authuc"
	"github.com/stretchr/testify/suite"
)

const signingKey = "auth-test-secret"

type IntegrationAuthTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	UC   *authuc.UseCase
}

func TestIntegrationAuthTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationAuthTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (iats *IntegrationAuthTestSuite) SetupSuite() {
	err := iats.Pool.Conn(
		iats.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, schema.Init)
		},
	)
	iats.Require().NoError(err, "failed to initialize test database")

	iats.UC, err = authuc.New(iats.Pool, usersrp.New(), signingKey)
	iats.Require().NoError(err, "failed to create auth use case")
}

func (iats *IntegrationAuthTestSuite) TestEmptySecret() {
	_, err := authuc.New(iats.Pool, usersrp.New(), "")
	iats.Error(err, "an empty signing secret must be refused")
}

func (iats *IntegrationAuthTestSuite) TestInvalidRole() {
	_, err := iats.UC.Register(
		iats.Ctx, "CMU-1", "Bad Role", "bad-role@example.edu",
		"long-enough-password", model.RoleInvalid,
	)
	iats.Error(err, "unparsable roles may not reach the database")
}

func (iats *IntegrationAuthTestSuite) TestLoginRoundTrip() {
	u, err := iats.UC.Register(
		iats.Ctx, "CMU-7001", "Round Trip", "round-trip@example.edu",
		"long-enough-password", model.RoleGuard,
	)
	iats.Require().NoError(err)
	iats.NotZero(u.ID)
	iats.False(u.Verified)

	s, err := iats.UC.Login(
		iats.Ctx, "round-trip@example.edu", "long-enough-password",
	)
	iats.Require().NoError(err)
	iats.Equal(u.ID, s.User.ID)
	iats.True(s.ExpiresAt.After(time.Now()))

	claims, err := iats.UC.VerifyToken(s.Token)
	iats.Require().NoError(err)
	iats.Equal(u.ID, claims.UserID)
	iats.Equal(model.RoleGuard, claims.Role)
	iats.Equal("Round Trip", claims.FullName)
}

func (iats *IntegrationAuthTestSuite) TestLoginFailures() {
	_, err := iats.UC.Register(
		iats.Ctx, "CMU-7002", "Login Failures", "failures@example.edu",
		"long-enough-password", model.RoleMember,
	)
	iats.Require().NoError(err)

	_, err = iats.UC.Login(
		iats.Ctx, "failures@example.edu", "wrong-password",
	)
	iats.ErrorIs(err, authuc.ErrInvalidCredentials)

	// an unknown email is indistinguishable from a wrong password
	_, err = iats.UC.Login(
		iats.Ctx, "nobody@example.edu", "long-enough-password",
	)
	iats.ErrorIs(err, authuc.ErrInvalidCredentials)
}

func (iats *IntegrationAuthTestSuite) TestTokenFailures() {
	_, err := iats.UC.VerifyToken("not-a-token")
	iats.ErrorIs(err, authuc.ErrInvalidToken)

	_, err = iats.UC.Register(
		iats.Ctx, "CMU-7003", "Token Failures", "tokens@example.edu",
		"long-enough-password", model.RoleMember,
	)
	iats.Require().NoError(err)

	// a token which expired one hour ago must be rejected
	expired, err := authuc.New(
		iats.Pool, usersrp.New(), signingKey,
		authuc.WithTokenTTL(time.Hour),
		authuc.WithClock(func() time.Time {
			return time.Now().Add(-2 * time.Hour)
		}),
	)
	iats.Require().NoError(err)
	s, err := expired.Login(
		iats.Ctx, "tokens@example.edu", "long-enough-password",
	)
	iats.Require().NoError(err)
	_, err = iats.UC.VerifyToken(s.Token)
	iats.ErrorIs(err, authuc.ErrInvalidToken)

	// ... and so must a token signed with another secret
	foreign, err := authuc.New(
		iats.Pool, usersrp.New(), "another-secret",
	)
	iats.Require().NoError(err)
	s, err = foreign.Login(
		iats.Ctx, "tokens@example.edu", "long-enough-password",
	)
	iats.Require().NoError(err)
	_, err = iats.UC.VerifyToken(s.Token)
	iats.ErrorIs(err, authuc.ErrInvalidToken)
}
