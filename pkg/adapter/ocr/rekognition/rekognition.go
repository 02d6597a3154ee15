// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rekognition recognizes license plates with the AWS
// Rekognition DetectText API. Detected text blocks are normalized and
// filtered with a plate shape regexp and the highest-confidence match
// wins; no plate-like text at all is a normal outcome, not an error.
package rekognition

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/momeni/campus-parking/pkg/core/log"
	"github.com/momeni/campus-parking/pkg/core/recognize"
)

// plateRegexp matches a normalized (uppercased, stripped of
// non-alphanumerics) plate candidate, e.g., KA01AB1234 or MH12345.
var plateRegexp = regexp.MustCompile(
	`^[A-Z]{2}[0-9]{1,2}[A-Z]{0,2}[0-9]{3,4}$`,
)

// Recognizer implements recognize.Recognizer using the AWS
// Rekognition DetectText API.
type Recognizer struct {
	client *rekognition.Client
}

// New instantiates a Rekognition-backed plate recognizer, loading the
// AWS configuration (credentials, region) from the default sources.
func New(ctx context.Context) (*Recognizer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws configuration: %w", err)
	}
	return &Recognizer{
		client: rekognition.NewFromConfig(cfg),
	}, nil
}

// NewWithClient instantiates a recognizer around an existing client,
// useful for tests with a stubbed HTTP endpoint.
func NewWithClient(client *rekognition.Client) *Recognizer {
	return &Recognizer{client: client}
}

// Recognize reads the image file and asks DetectText for its text
// blocks, returning the plate-shaped line or word with the highest
// confidence. The AWS confidence is reported in percent and is scaled
// down to the [0, 1] range here.
func (rec *Recognizer) Recognize(ctx context.Context, imagePath string) (
	recognize.Reading, error,
) {
	none := recognize.Reading{}
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return none, fmt.Errorf("reading image file: %w", err)
	}
	result, err := rec.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{
			Bytes: imageBytes,
		},
	})
	if err != nil {
		return none, fmt.Errorf("rekognition detect-text: %w", err)
	}
	best := none
	for _, td := range result.TextDetections {
		if td.Type != types.TextTypesLine &&
			td.Type != types.TextTypesWord {
			continue
		}
		if td.DetectedText == nil || td.Confidence == nil {
			continue
		}
		txt := normalize(*td.DetectedText)
		conf := float64(*td.Confidence) / 100
		if !plateRegexp.MatchString(txt) {
			log.Debug(
				ctx, "discarding non-plate text block",
				slog.String("text", txt),
				slog.Float64("confidence", conf),
			)
			continue
		}
		if conf > best.Confidence {
			best = recognize.Reading{Plate: txt, Confidence: conf}
		}
	}
	if best.Plate == "" {
		log.Info(
			ctx, "no plate-shaped text detected",
			slog.Int("text-blocks", len(result.TextDetections)),
		)
		return none, nil
	}
	return best, nil
}

// normalize uppercases the detected text and strips all
// non-alphanumeric runes, so OCR artifacts like spaces, dots, and
// dashes do not defeat the plate shape regexp.
func normalize(s string) string {
	s = strings.ToUpper(s)
	var b strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
