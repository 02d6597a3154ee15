// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package adminrs realizes the administration resource: dashboard
// counters, the identity verification review queue, and the one-way
// closing of guard-raised flags.
package adminrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/campus-parking/pkg/core/usecase/adminuc"
)

type resource struct {
	admin *adminuc.UseCase
}

// Register instantiates a resource adapting the administration use
// case instance with the relevant REST APIs including:
//  1. GET request to /api/cpark/v1/admin/overview
//     in order to load the administrators' dashboard counters.
//  2. GET request to /api/cpark/v1/admin/verifications and PATCH
//     request to .../verifications/:vid in order to list the pending
//     identity verifications and record a review verdict.
//  3. GET request to /api/cpark/v1/admin/flags and PATCH request to
//     .../flags/:fid in order to list the open flags and close one.
func Register(r *gin.RouterGroup, admin *adminuc.UseCase) {
	rs := &resource{admin: admin}
	r.GET("admin/overview", rs.Overview)
	r.GET("admin/verifications", rs.PendingVerifications)
	r.PATCH("admin/verifications/:vid", rs.ReviewVerification)
	r.GET("admin/flags", rs.OpenFlags)
	r.PATCH("admin/flags/:fid", rs.CloseFlag)
}

func (rs *resource) Overview(c *gin.Context) {
	cnt, err := rs.admin.Overview(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cnt)
}

func (rs *resource) PendingVerifications(c *gin.Context) {
	pvs, err := rs.admin.PendingVerifications(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, pvs)
}

func (rs *resource) ReviewVerification(c *gin.Context) {
	req := rs.DserReviewReq(c)
	if req == nil {
		return
	}
	claims := authmw.Claims(c)
	err := rs.admin.ReviewVerification(
		c, req.VerificationID, claims.UserID, req.Verdict, req.Notes,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) OpenFlags(c *gin.Context) {
	fds, err := rs.admin.OpenFlags(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, fds)
}

func (rs *resource) CloseFlag(c *gin.Context) {
	req := rs.DserCloseFlagReq(c)
	if req == nil {
		return
	}
	claims := authmw.Claims(c)
	err := rs.admin.CloseFlag(c, req.FlagID, claims.UserID, req.Note)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
