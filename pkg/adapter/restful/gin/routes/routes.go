// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/campus-parking/pkg/adapter/config"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/flagsrp"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/parkingrp"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/verificationsrp"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/adminrs"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/authrs"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/membersrs"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/parkingrs"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/repo"
	"github.com/momeni/campus-parking/pkg/core/usecase/adminuc"
	"github.com/momeni/campus-parking/pkg/core/usecase/memberuc"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like parkinguc and each repository package is named like parkingrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like parkingrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance, gated by
// the authentication and role authorization middlewares.
// Possible errors will be returned after possible wrapping.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, c *config.Config,
) error {
	usersRepo := usersrp.New()
	vehiclesRepo := vehiclesrp.New()
	flagsRepo := flagsrp.New()
	verificationsRepo := verificationsrp.New()
	parkingRepo := parkingrp.New()

	authUseCase, err := c.Auth.NewUseCase(p, usersRepo)
	if err != nil {
		return fmt.Errorf("creating auth use case: %w", err)
	}
	parkingUseCase, err := c.Usecases.Parking.NewUseCase(p, parkingRepo)
	if err != nil {
		return fmt.Errorf("creating parking use case: %w", err)
	}
	memberUseCase := memberuc.New(
		p, usersRepo, vehiclesRepo, verificationsRepo, parkingRepo,
	)
	adminUseCase := adminuc.New(
		p, usersRepo, vehiclesRepo, flagsRepo, verificationsRepo,
	)
	recognizer, err := c.Recognizer.NewRecognizer(ctx)
	if err != nil {
		return fmt.Errorf("creating plate recognizer: %w", err)
	}

	r := e.Group("/api/cpark/v1")
	authrs.Register(r, authUseCase)

	authed := r.Group("", authmw.Authenticate(authUseCase))
	parkingrs.Register(
		authed.Group("", authmw.RequireRole(
			model.RoleGuard, model.RoleAdmin,
		)),
		parkingUseCase, recognizer,
	)
	membersrs.Register(
		authed.Group("", authmw.RequireRole(
			model.RoleMember, model.RoleGuard, model.RoleAdmin,
		)),
		memberUseCase,
	)
	adminrs.Register(
		authed.Group("", authmw.RequireRole(model.RoleAdmin)),
		adminUseCase,
	)
	return nil
}
