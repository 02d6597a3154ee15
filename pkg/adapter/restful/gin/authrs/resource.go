// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authrs realizes the authentication resource, allowing the
// registration and login REST APIs to be accepted and delegated to
// the authentication use case respectively.
package authrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/campus-parking/pkg/core/usecase/authuc"
)

type resource struct {
	auth *authuc.UseCase
}

// Register instantiates a resource adapting the authentication use
// case instance with the relevant REST APIs including:
//  1. POST request to /api/cpark/v1/auth/users
//     in order to register a member or guard account.
//  2. POST request to /api/cpark/v1/auth/sessions
//     in order to login and obtain a bearer token.
func Register(r *gin.RouterGroup, auth *authuc.UseCase) {
	rs := &resource{auth: auth}
	r.POST("auth/users", rs.RegisterUser)
	r.POST("auth/sessions", rs.Login)
}

func (rs *resource) RegisterUser(c *gin.Context) {
	req := rs.DserRegisterReq(c)
	if req == nil {
		return
	}
	u, err := rs.auth.Register(
		c, req.CollegeID, req.FullName, req.Email, req.Password,
		req.Role,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (rs *resource) Login(c *gin.Context) {
	req := rs.DserLoginReq(c)
	if req == nil {
		return
	}
	s, err := rs.auth.Login(c, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
