// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the cpark binary to instantiate
// different components, from the adapter or use cases layers, using
// those loaded configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory
// items) and a series of functional options (for the optional items),
// so they may be accumulated and validated in the relevant
// end-component such as a UseCase instance. This design decision
// causes a bit of redundancy in favor of a defensive solution.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/momeni/campus-parking/pkg/adapter/config/settings"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/adapter/ocr/rekognition"
	"github.com/momeni/campus-parking/pkg/adapter/ocr/textual"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin"
	"github.com/momeni/campus-parking/pkg/core/recognize"
	"github.com/momeni/campus-parking/pkg/core/repo"
	"github.com/momeni/campus-parking/pkg/core/usecase/authuc"
	"github.com/momeni/campus-parking/pkg/core/usecase/parkinguc"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration file format can be kept intact while
// other layers change freely.
type Config struct {
	Database   Database   // PostgreSQL database connection settings
	Gin        Gin        // Gin-Gonic instantiation settings
	Auth       Auth       // bearer token issuance settings
	Recognizer Recognizer // license plate recognition backend
	Usecases   Usecases   // supported use cases configuration settings
}

// Database contains the PostgreSQL connection settings.
type Database struct {
	Host     string // domain name or IP address of the DBMS server
	Port     int    // port number of the DBMS server
	Name     string // database name, like cpark
	User     string // connecting role name
	Password string // password of the connecting role
}

// URL formats the connection settings as a postgresql connection URL.
func (d Database) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password),
		d.Host, d.Port, url.QueryEscape(d.Name),
	)
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
func (d Database) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := postgres.NewPool(ctx, d.URL())
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w", d.Host, d.Port, d.Name, err,
		)
	}
	return p, nil
}

// ValidateAndNormalize fills the missing connection settings with
// their default values and rejects the settings which have no
// reasonable default.
func (d *Database) ValidateAndNormalize() error {
	if d.Host == "" {
		d.Host = "localhost"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", d.Port)
	}
	if d.Name == "" {
		return errors.New("database name is required")
	}
	if d.User == "" {
		return errors.New("database user is required")
	}
	return nil
}

// Gin contains the gin-gonic engine instantiation settings.
type Gin struct {
	Logger   *bool // whether to register the gin.Logger() middleware
	Recovery *bool // whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Auth contains the bearer token issuance settings.
type Auth struct {
	// SigningKey is the mandatory HS256 token signing secret.
	SigningKey string `yaml:"signing-key"`
	// TokenTTL bounds the issued tokens lifetime. A missing value
	// leaves the choice to the authentication use case.
	TokenTTL *settings.Duration `yaml:"token-ttl"`
}

// NewUseCase instantiates a new authentication use case based on the
// settings in the `a` struct.
func (a Auth) NewUseCase(
	p repo.Pool, u repo.Users,
) (*authuc.UseCase, error) {
	opts := make([]authuc.Option, 0, 1)
	if a.TokenTTL != nil {
		opts = append(
			opts, authuc.WithTokenTTL(time.Duration(*a.TokenTTL)),
		)
	}
	return authuc.New(p, u, a.SigningKey, opts...)
}

// Recognizer backend kinds.
const (
	RekognitionRecognizer = "rekognition"
	TextualRecognizer     = "textual"
)

// Recognizer selects the license plate recognition backend.
type Recognizer struct {
	// Kind is either "rekognition" for the AWS Rekognition DetectText
	// backend (credentials and region are taken from the standard AWS
	// configuration sources) or "textual" for the degraded file name
	// based fallback. The fallback is the default.
	Kind string `yaml:",omitempty"`
}

// NewRecognizer instantiates the configured recognition backend.
// The Kind must have been validated by ValidateAndNormalize first.
func (r Recognizer) NewRecognizer(ctx context.Context) (
	recognize.Recognizer, error,
) {
	switch r.Kind {
	case RekognitionRecognizer:
		rec, err := rekognition.New(ctx)
		if err != nil {
			return nil, fmt.Errorf(
				"instantiating rekognition backend: %w", err,
			)
		}
		return rec, nil
	case TextualRecognizer:
		return textual.New(), nil
	default:
		panic("unvalidated recognizer kind: " + r.Kind)
	}
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Parking Parking // parking allocation related settings
}

// Parking contains the configuration settings for the parking
// allocation use case. Fields are defined as pointers, so it is
// possible to detect if they are or are not initialized and leave the
// defaulting decision to the use cases layer.
type Parking struct {
	// AllocateReservedSlots decides whether slots in the reserved
	// status accept allocations like available ones. A missing value
	// refuses them.
	AllocateReservedSlots *bool `yaml:"allocate-reserved-slots"`
}

// NewUseCase instantiates a new parking use case based on the settings
// in the `pk` struct.
func (pk Parking) NewUseCase(
	p repo.Pool, r repo.Parking,
) (*parkinguc.UseCase, error) {
	opts := make([]parkinguc.Option, 0, 1)
	if pk.AllocateReservedSlots != nil {
		opts = append(opts, parkinguc.WithReservedSlotAllocation(
			*pk.AllocateReservedSlots,
		))
	}
	return parkinguc.New(p, r, opts...)
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values
// with their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	settings.Nil2Default(&c.Gin.Logger, true)
	settings.Nil2Default(&c.Gin.Recovery, true)
	if c.Auth.SigningKey == "" {
		return errors.New("auth signing-key is required")
	}
	switch c.Recognizer.Kind {
	case "":
		c.Recognizer.Kind = TextualRecognizer
	case RekognitionRecognizer, TextualRecognizer:
	default:
		return fmt.Errorf(
			"unknown recognizer kind: %q", c.Recognizer.Kind,
		)
	}
	return nil
}

// ConnectionInfo returns the host, port, and database name of the
// connection information which are kept in this Config instance.
func (c *Config) ConnectionInfo() (dbName, host string, port int) {
	return c.Database.Name, c.Database.Host, c.Database.Port
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	return c.Database.ConnectionPool(ctx)
}
