// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authmw provides the authentication and authorization
// middlewares for the REST resources. Authenticate verifies the
// bearer token and stores the verified claims in the gin context;
// RequireRole then gates each route group on the claimed role.
package authmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/usecase/authuc"
)

// claimsKey is the gin context key holding the *authuc.Claims of the
// authenticated requester.
const claimsKey = "auth-claims"

// Authenticate verifies the Authorization bearer token of each
// request and aborts with 401 when it is missing or invalid. The
// verified claims become available to downstream handlers through
// the Claims function.
func Authenticate(auth *authuc.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		fields := strings.Fields(header)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "missing or malformed authorization header",
			})
			return
		}
		claims, err := auth.VerifyToken(fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": authuc.ErrInvalidToken.Error(),
			})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated requester
// holds one of the given roles. It must be registered after
// Authenticate.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": "no authenticated user",
			})
			return
		}
		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"detail": "insufficient role",
		})
	}
}

// Claims returns the verified claims of the authenticated requester,
// or nil when Authenticate did not run on this request.
func Claims(c *gin.Context) *authuc.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*authuc.Claims)
	return claims
}
