// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package textual provides a degraded plate recognizer which guesses
// the plate from the image file name instead of the image pixels. It
// keeps deployments without AWS credentials (and the test suites)
// functional; its readings carry a fixed low confidence so the audit
// trail reflects the weak provenance.
package textual

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/momeni/campus-parking/pkg/core/recognize"
)

// Confidence is attached to every successful file name based reading.
const Confidence = 0.40

var (
	nonAlnum    = regexp.MustCompile(`[^A-Z0-9]`)
	plateShaped = regexp.MustCompile(`[A-Z]{2}[0-9]{1,2}[A-Z]{0,2}[0-9]{3,4}`)
)

// Recognizer implements recognize.Recognizer by pattern matching on
// the image file name.
type Recognizer struct {
}

func New() *Recognizer {
	return &Recognizer{}
}

// Recognize extracts a plate-shaped substring from the base name of
// the image path. When the cleaned name holds no plate-shaped text,
// its first ten characters are reported as a best-effort guess, and
// an empty name yields a zero Reading.
func (rec *Recognizer) Recognize(_ context.Context, imagePath string) (
	recognize.Reading, error,
) {
	name := filepath.Base(imagePath)
	cleaned := nonAlnum.ReplaceAllString(strings.ToUpper(name), "")
	if cleaned == "" {
		return recognize.Reading{}, nil
	}
	plate := plateShaped.FindString(cleaned)
	if plate == "" {
		if len(cleaned) > 10 {
			cleaned = cleaned[:10]
		}
		plate = cleaned
	}
	return recognize.Reading{Plate: plate, Confidence: Confidence}, nil
}
