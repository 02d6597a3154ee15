// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package membersrs realizes the members resource: the dashboard
// snapshot, vehicle registration, and the profile and identity
// verification flow. Guards share the profile and verification APIs,
// so this resource serves both roles.
package membersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/campus-parking/pkg/core/usecase/memberuc"
)

type resource struct {
	members *memberuc.UseCase
}

// Register instantiates a resource adapting the member use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/cpark/v1/members/snapshot
//     in order to load the member dashboard view.
//  2. GET/PUT requests to /api/cpark/v1/members/profile
//     in order to load and edit the combined profile view.
//  3. POST request to /api/cpark/v1/members/vehicles and DELETE
//     request to .../vehicles/:vid in order to register and
//     deactivate vehicles.
//  4. POST requests to /api/cpark/v1/members/verification/images and
//     .../verification/reviews in order to submit identity images
//     and ask for an administrative review.
func Register(r *gin.RouterGroup, members *memberuc.UseCase) {
	rs := &resource{members: members}
	r.GET("members/snapshot", rs.Snapshot)
	r.GET("members/profile", rs.Profile)
	r.PUT("members/profile", rs.UpdateProfile)
	r.POST("members/vehicles", rs.RegisterVehicle)
	r.DELETE("members/vehicles/:vid", rs.DeactivateVehicle)
	r.POST("members/verification/images", rs.SubmitImages)
	r.POST("members/verification/reviews", rs.SubmitForReview)
}

func (rs *resource) Snapshot(c *gin.Context) {
	claims := authmw.Claims(c)
	s, err := rs.members.Snapshot(c, claims.UserID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (rs *resource) Profile(c *gin.Context) {
	claims := authmw.Claims(c)
	pr, err := rs.members.Profile(c, claims.UserID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, pr)
}

func (rs *resource) UpdateProfile(c *gin.Context) {
	req := rs.DserUpdateProfileReq(c)
	if req == nil {
		return
	}
	claims := authmw.Claims(c)
	err := rs.members.UpdateProfile(
		c, claims.UserID, req.FullName, req.CollegeID, req.Email,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) RegisterVehicle(c *gin.Context) {
	req := rs.DserRegisterVehicleReq(c)
	if req == nil {
		return
	}
	claims := authmw.Claims(c)
	v, err := rs.members.RegisterVehicle(c, claims.UserID, req.Plate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (rs *resource) DeactivateVehicle(c *gin.Context) {
	req := rs.DserVehicleURI(c)
	if req == nil {
		return
	}
	claims := authmw.Claims(c)
	err := rs.members.DeactivateVehicle(c, req.VehicleID, claims.UserID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) SubmitImages(c *gin.Context) {
	req := rs.DserSubmitImagesReq(c)
	if req == nil {
		return
	}
	claims := authmw.Claims(c)
	err := rs.members.SubmitVerificationImages(
		c, claims.UserID, req.ProfileImageURL, req.IDImageURL,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) SubmitForReview(c *gin.Context) {
	claims := authmw.Claims(c)
	if err := rs.members.SubmitForReview(c, claims.UserID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
