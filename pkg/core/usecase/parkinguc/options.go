// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package parkinguc

import (
	"errors"
	"time"
)

// Option is a functional option for the parking use case.
type Option func(uc *UseCase) error

// WithReservedSlotAllocation option decides the policy for slots in
// the reserved status. The allocation engine itself never produces
// or consumes that status, so whether a reserved slot behaves like
// an available one (allow=true) or like an occupied one (allow=false,
// the default) is left to the deployment configuration.
// This option may be passed to the New() function.
func WithReservedSlotAllocation(allow bool) Option {
	return func(uc *UseCase) error {
		uc.allocateReserved = allow
		return nil
	}
}

// WithClock option replaces the wall clock which stamps entry and
// exit times. It exists for the tests; production callers should not
// pass it.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("nil clock")
		}
		uc.now = now
		return nil
	}
}
