// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package recognize declares the plate recognition port of the core
// layer. The actual text extraction model is a black box which lives
// in the adapter layer (see pkg/adapter/ocr); the core only consumes
// its best-guess reading and treats the confidence as audit
// provenance, never as a gate.
package recognize

import "context"

// Reading is the best-guess result of one recognition attempt.
// An empty Plate signals that no plate-like text was detected; the
// Confidence then carries no meaning.
type Reading struct {
	Plate      string  // normalized plate text, empty if none found
	Confidence float64 // recognition confidence in [0, 1]
}

// Recognizer extracts a license plate reading from an image.
// Implementations must be safe for concurrent use.
type Recognizer interface {
	// Recognize inspects the image at the given path and returns the
	// highest-confidence plate candidate. A missing plate is reported
	// as a zero Reading with a nil error; errors are reserved for the
	// recognition backend itself failing.
	Recognize(ctx context.Context, imagePath string) (Reading, error)
}
