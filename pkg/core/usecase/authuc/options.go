// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authuc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the authentication use case.
type Option func(uc *UseCase) error

// WithTokenTTL option configures how long an issued bearer token
// stays valid. This option may be passed to the New() function.
func WithTokenTTL(ttl time.Duration) Option {
	return func(uc *UseCase) error {
		if ttl <= 0 {
			return fmt.Errorf("ttl (%d) is not positive", ttl)
		}
		if uc.tokenTTL != 0 {
			return errors.New("ttl is already configured")
		}
		uc.tokenTTL = ttl
		return nil
	}
}

// WithClock option replaces the wall clock which stamps token issue
// and expiry times. It exists for the tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("nil clock")
		}
		uc.now = now
		return nil
	}
}
