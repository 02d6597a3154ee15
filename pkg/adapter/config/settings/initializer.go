// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Nil2Zero initializes the given (*t) pointer, if it is nil, to point
// to a newly allocated zero value. Optional settings are declared as
// pointers, so a missing item can be distinguished from its zero
// value; after validation, code may rely on them being non-nil.
func Nil2Zero[T any](t **T) {
	if (*t) != nil {
		return
	}
	var zero T
	(*t) = &zero
}

// Nil2Default initializes the given (*t) pointer, if it is nil, to
// point to a newly allocated copy of the def default value.
func Nil2Default[T any](t **T, def T) {
	if (*t) != nil {
		return
	}
	(*t) = &def
}
