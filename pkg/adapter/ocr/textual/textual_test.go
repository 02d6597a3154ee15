// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package textual_test

import (
	"context"
	"testing"

	"github.com/momeni/campus-parking/pkg/adapter/ocr/textual"
	"github.com/momeni/campus-parking/pkg/core/recognize"
	"github.com/stretchr/testify/assert"
)

func TestRecognize(t *testing.T) {
	rec := textual.New()
	for _, tc := range []struct {
		name      string
		imagePath string
		reading   recognize.Reading
	}{
		{
			name:      "plate-shaped file name",
			imagePath: "/uploads/MH12AB1234.jpg",
			reading: recognize.Reading{
				Plate:      "MH12AB1234",
				Confidence: textual.Confidence,
			},
		},
		{
			name:      "plate buried in decorations",
			imagePath: "/uploads/IMG mh12ab1234 (copy).png",
			reading: recognize.Reading{
				Plate:      "MH12AB1234",
				Confidence: textual.Confidence,
			},
		},
		{
			name:      "no plate-shaped text",
			imagePath: "/uploads/gate-photo.png",
			reading: recognize.Reading{
				Plate:      "GATEPHOTOP",
				Confidence: textual.Confidence,
			},
		},
		{
			name:      "nothing alphanumeric",
			imagePath: "/uploads/---",
			reading:   recognize.Reading{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, err := rec.Recognize(context.Background(), tc.imagePath)
			assert.NoError(t, err)
			assert.Equal(t, tc.reading, r)
		})
	}
}
