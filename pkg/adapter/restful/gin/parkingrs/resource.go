// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package parkingrs realizes the parking resource behind the guards'
// gate flow: plate recognition and lookup, slot allocation, vehicle
// exit, flag raising, and the live dashboard queries.
package parkingrs

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/campus-parking/pkg/core/cerr"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/recognize"
	"github.com/momeni/campus-parking/pkg/core/usecase/parkinguc"
)

type resource struct {
	parking    *parkinguc.UseCase
	recognizer recognize.Recognizer
}

// Register instantiates a resource adapting the parking use case
// instance with the relevant REST APIs including:
//  1. GET requests to /api/cpark/v1/parking/overview, .../slots, and
//     .../events for the dashboard counters, the free slots, and the
//     active parking events respectively.
//  2. GET request to /api/cpark/v1/parking/vehicles/:plate
//     in order to resolve a plate to a vehicle and its owner.
//  3. POST request to /api/cpark/v1/parking/recognitions
//     in order to extract a plate reading from an uploaded image.
//  4. POST request to /api/cpark/v1/parking/events
//     in order to allocate a slot, opening a parking event.
//  5. POST request to /api/cpark/v1/parking/exits
//     in order to process a vehicle exit, closing its event.
//  6. POST request to /api/cpark/v1/parking/flags
//     in order to raise an operational flag.
func Register(
	r *gin.RouterGroup,
	parking *parkinguc.UseCase, recognizer recognize.Recognizer,
) {
	rs := &resource{parking: parking, recognizer: recognizer}
	r.GET("parking/overview", rs.Overview)
	r.GET("parking/slots", rs.AvailableSlots)
	r.GET("parking/events", rs.ActiveEvents)
	r.GET("parking/vehicles/:plate", rs.FindVehicle)
	r.POST("parking/recognitions", rs.Recognize)
	r.POST("parking/events", rs.Allocate)
	r.POST("parking/exits", rs.Release)
	r.POST("parking/flags", rs.RaiseFlag)
}

func (rs *resource) Overview(c *gin.Context) {
	ov, err := rs.parking.Overview(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (rs *resource) AvailableSlots(c *gin.Context) {
	slots, err := rs.parking.AvailableSlots(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (rs *resource) ActiveEvents(c *gin.Context) {
	evs, err := rs.parking.ActiveEvents(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, evs)
}

func (rs *resource) FindVehicle(c *gin.Context) {
	req := rs.DserPlateURI(c)
	if req == nil {
		return
	}
	vo, err := rs.parking.FindVehicle(c, req.Plate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vo)
}

// recognition is the response of the plate recognition API, pairing
// the reading with the resolved vehicle, if any matched it.
type recognition struct {
	Plate      string
	Confidence float64
	Vehicle    *model.VehicleOwner
}

func (rs *resource) Recognize(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		serdser.SerErr(c, cerr.BadRequest(err))
		return
	}
	// the textual backend reads the original file name, so it must
	// survive the round-trip through the spool directory
	dir, err := os.MkdirTemp("", "cpark-recognize-*")
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, filepath.Base(fh.Filename))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		serdser.SerErr(c, err)
		return
	}
	reading, err := rs.recognizer.Recognize(c, path)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := recognition{
		Plate:      reading.Plate,
		Confidence: reading.Confidence,
	}
	if reading.Plate != "" {
		vo, err := rs.parking.FindVehicle(c, reading.Plate)
		switch {
		case err == nil:
			resp.Vehicle = vo
		case errors.Is(err, parkinguc.ErrVehicleNotFound):
			// a reading without a registered vehicle is still useful
		default:
			serdser.SerErr(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) Allocate(c *gin.Context) {
	req := rs.DserAllocateReq(c)
	if req == nil {
		return
	}
	claims := authmw.Claims(c)
	ev, err := rs.parking.Allocate(
		c, req.VehicleID, req.SlotID, claims.UserID, req.Reading,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

// release is the response of the vehicle exit API. Event stays nil
// when the plate had no active event to close.
type release struct {
	Released bool
	Event    *model.ParkingEvent
}

func (rs *resource) Release(c *gin.Context) {
	req := rs.DserReleaseReq(c)
	if req == nil {
		return
	}
	ev, released, err := rs.parking.Release(c, req.Plate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, release{Released: released, Event: ev})
}

func (rs *resource) RaiseFlag(c *gin.Context) {
	req := rs.DserRaiseFlagReq(c)
	if req == nil {
		return
	}
	claims := authmw.Claims(c)
	f, err := rs.parking.RaiseFlag(
		c, claims.UserID, req.Reason, req.VehicleID,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}
