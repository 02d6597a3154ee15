// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/momeni/campus-parking/internal/test/dbcontainer"
	"github.com/momeni/campus-parking/pkg/adapter/config"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/schema"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/routes"
	"github.com/momeni/campus-parking/pkg/core/model"
	"github.com/momeni/campus-parking/pkg/core/repo"
	"github.com/momeni/campus-parking/pkg/core/usecase/authuc"
	"github.com/momeni/campus-parking/pkg/core/usecase/memberuc"
	"github.com/stretchr/testify/suite"
)

const seedPassword = "parking123"

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				if err := schema.Init(ctx, tx); err != nil {
					return err
				}
				return schema.SeedDev(ctx, tx, seedPassword)
			})
		},
	)
	igts.Require().NoError(err, "failed to initialize test database")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Ctx, igts.Gin, igts.Pool, &config.Config{
		Auth: config.Auth{
			SigningKey: "integration-test-secret",
		},
		Recognizer: config.Recognizer{
			Kind: config.TextualRecognizer,
		},
	})
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) jsonBody(body any) io.Reader {
	if body == nil {
		return nil
	}
	b, err := json.Marshal(body)
	igts.Require().NoError(err, "cannot marshal request body")
	return bytes.NewReader(b)
}

func (igts *IntegrationGinTestSuite) send(
	method, path, token string, body any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		method, "/api/cpark/v1/"+path, igts.jsonBody(body),
	)
	igts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Add("Content-Type", "application/json")
	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}
	igts.Gin.ServeHTTP(w, req)
	return w
}

func (igts *IntegrationGinTestSuite) recv(
	w *httptest.ResponseRecorder, res any,
) {
	b := w.Body.Bytes()
	igts.Require().NoError(json.Unmarshal(b, res), "body is not json")
}

func (igts *IntegrationGinTestSuite) login(email string) string {
	w := igts.send(
		http.MethodPost, "auth/sessions", "", map[string]string{
			"email":    email,
			"password": seedPassword,
		},
	)
	igts.Require().Equal(200, w.Code, "login failed for %s", email)
	s := &authuc.Session{}
	igts.recv(w, s)
	igts.Require().NotEmpty(s.Token, "empty bearer token")
	return s.Token
}

func (igts *IntegrationGinTestSuite) TestRegisterAndLogin() {
	w := igts.send(
		http.MethodPost, "auth/users", "", map[string]string{
			"college_id": "CMU-4001",
			"full_name":  "New Member",
			"email":      "new-member@example.edu",
			"password":   "long-enough-password",
			"role":       "member",
		},
	)
	igts.Equal(201, w.Code)
	u := &model.User{}
	igts.recv(w, u)
	igts.NotZero(u.ID, "registered user has no id")
	igts.Equal("new-member@example.edu", u.Email)
	igts.Equal(model.RoleMember, u.Role)
	igts.False(u.Verified, "fresh accounts may not be verified")

	w = igts.send(
		http.MethodPost, "auth/sessions", "", map[string]string{
			"email":    "new-member@example.edu",
			"password": "long-enough-password",
		},
	)
	igts.Equal(200, w.Code)
	s := &authuc.Session{}
	igts.recv(w, s)
	igts.NotEmpty(s.Token)
	igts.Equal(u.ID, s.User.ID, "session belongs to another user")
	igts.True(s.ExpiresAt.After(time.Now()), "token is born expired")

	w = igts.send(
		http.MethodPost, "auth/sessions", "", map[string]string{
			"email":    "new-member@example.edu",
			"password": "wrong-password",
		},
	)
	igts.Equal(401, w.Code)
	res := &struct {
		Detail string
	}{}
	igts.recv(w, res)
	igts.Equal("invalid email or password", res.Detail)
}

func (igts *IntegrationGinTestSuite) TestAuthnAuthz() {
	w := igts.send(http.MethodGet, "parking/overview", "", nil)
	igts.Equal(401, w.Code, "anonymous requests must be rejected")

	w = igts.send(
		http.MethodGet, "parking/overview", "garbage-token", nil,
	)
	igts.Equal(401, w.Code, "unverifiable tokens must be rejected")

	member := igts.login("member@example.edu")
	w = igts.send(http.MethodGet, "parking/overview", member, nil)
	igts.Equal(403, w.Code, "members may not see the gate dashboard")
	w = igts.send(http.MethodGet, "admin/flags", member, nil)
	igts.Equal(403, w.Code, "members may not review flags")

	guard := igts.login("guard@example.edu")
	w = igts.send(http.MethodGet, "parking/overview", guard, nil)
	igts.Equal(200, w.Code, "guards run the gate dashboard")
	w = igts.send(http.MethodGet, "admin/flags", guard, nil)
	igts.Equal(403, w.Code, "guards may not review flags")

	admin := igts.login("admin@example.edu")
	w = igts.send(http.MethodGet, "admin/flags", admin, nil)
	igts.Equal(200, w.Code, "admins review flags")
}

func (igts *IntegrationGinTestSuite) TestBadRequest() {
	guard := igts.login("guard@example.edu")
	for _, tc := range []struct {
		name string
		body any
	}{
		{
			name: "empty body",
			body: map[string]any{},
		},
		{
			name: "negative ids",
			body: map[string]any{
				"vehicle_id": -1,
				"slot_id":    -1,
			},
		},
	} {
		igts.Run(tc.name, func() {
			w := igts.send(
				http.MethodPost, "parking/events", guard, tc.body,
			)
			igts.Equal(400, w.Code)
			res := map[string][]string{}
			igts.recv(w, &res)
			igts.Contains(res, "VehicleID")
			igts.Contains(res, "SlotID")
		})
	}

	w := igts.send(
		http.MethodPost, "auth/users", "", map[string]string{
			"college_id": "CMU-6001",
			"full_name":  "Wannabe Admin",
			"email":      "wannabe@example.edu",
			"password":   "long-enough-password",
			"role":       "admin",
		},
	)
	igts.Equal(400, w.Code, "admin accounts may not be self-registered")
}

func (igts *IntegrationGinTestSuite) TestGateFlow() {
	guard := igts.login("guard@example.edu")

	w := igts.send(http.MethodGet, "parking/vehicles/ABC123", guard, nil)
	igts.Require().Equal(200, w.Code)
	vo := &model.VehicleOwner{}
	igts.recv(w, vo)
	igts.Equal("ABC123", vo.Plate)
	igts.Equal("Dev Member", vo.FullName)

	w = igts.send(http.MethodGet, "parking/vehicles/ZZZ999", guard, nil)
	igts.Equal(404, w.Code, "unknown plates must report not-found")

	w = igts.send(http.MethodGet, "parking/slots", guard, nil)
	igts.Require().Equal(200, w.Code)
	var slots []model.Slot
	igts.recv(w, &slots)
	igts.Require().NotEmpty(slots, "seeded slots are missing")
	slot := slots[0]

	before := &model.Overview{}
	w = igts.send(http.MethodGet, "parking/overview", guard, nil)
	igts.Require().Equal(200, w.Code)
	igts.recv(w, before)

	w = igts.send(
		http.MethodPost, "parking/events", guard, map[string]any{
			"vehicle_id": vo.VehicleID,
			"slot_id":    slot.ID,
			"plate":      "ABC123",
			"confidence": 0.93,
		},
	)
	igts.Require().Equal(201, w.Code)
	ev := &model.ParkingEvent{}
	igts.recv(w, ev)
	igts.Equal(model.EventActive, ev.Status)
	igts.Equal(vo.VehicleID, ev.VehicleID)
	igts.Equal(slot.ID, ev.SlotID)
	igts.Require().NotNil(ev.OCRPlate, "recognition provenance is lost")
	igts.Equal("ABC123", *ev.OCRPlate)
	igts.Nil(ev.ExitTime, "active events have no exit time")

	// the slot is taken, so a second allocation must lose
	w = igts.send(
		http.MethodPost, "parking/events", guard, map[string]any{
			"vehicle_id": vo.VehicleID,
			"slot_id":    slot.ID,
		},
	)
	igts.Equal(409, w.Code, "a taken slot must refuse allocations")

	after := &model.Overview{}
	w = igts.send(http.MethodGet, "parking/overview", guard, nil)
	igts.Require().Equal(200, w.Code)
	igts.recv(w, after)
	igts.Equal(before.ActiveInside+1, after.ActiveInside)
	igts.Equal(before.FreeSlots-1, after.FreeSlots)
	igts.Equal(before.TodayEntries+1, after.TodayEntries)

	w = igts.send(http.MethodGet, "parking/events", guard, nil)
	igts.Require().Equal(200, w.Code)
	var evs []model.ActiveEvent
	igts.recv(w, &evs)
	found := false
	for _, ae := range evs {
		if ae.EventID == ev.ID {
			found = true
			igts.Equal("ABC123", ae.Plate)
			igts.Equal("Dev Member", ae.OwnerName)
			igts.Equal(slot.Code, ae.SlotCode)
			igts.GreaterOrEqual(ae.Duration, time.Duration(0))
		}
	}
	igts.True(found, "allocated event is not listed as active")

	// the member sees the vehicle as parked meanwhile
	member := igts.login("member@example.edu")
	w = igts.send(http.MethodGet, "members/snapshot", member, nil)
	igts.Require().Equal(200, w.Code)
	snap := &memberuc.Snapshot{}
	igts.recv(w, snap)
	igts.True(snap.Parked, "member snapshot misses the active event")
	igts.Require().NotNil(snap.SlotCode)
	igts.Equal(slot.Code, *snap.SlotCode)

	w = igts.send(
		http.MethodPost, "parking/exits", guard, map[string]string{
			"plate": "ABC123",
		},
	)
	igts.Require().Equal(200, w.Code)
	rel := &struct {
		Released bool
		Event    *model.ParkingEvent
	}{}
	igts.recv(w, rel)
	igts.True(rel.Released)
	igts.Require().NotNil(rel.Event)
	igts.Equal(ev.ID, rel.Event.ID)
	igts.Equal(model.EventExited, rel.Event.Status)
	igts.NotNil(rel.Event.ExitTime)

	// a double-processed exit is reported, not failed
	w = igts.send(
		http.MethodPost, "parking/exits", guard, map[string]string{
			"plate": "ABC123",
		},
	)
	igts.Require().Equal(200, w.Code)
	rel = &struct {
		Released bool
		Event    *model.ParkingEvent
	}{}
	igts.recv(w, rel)
	igts.False(rel.Released)
	igts.Nil(rel.Event)

	w = igts.send(http.MethodGet, "parking/slots", guard, nil)
	igts.Require().Equal(200, w.Code)
	slots = nil
	igts.recv(w, &slots)
	found = false
	for _, s := range slots {
		if s.ID == slot.ID {
			found = true
		}
	}
	igts.True(found, "released slot did not return to the free list")
}

func (igts *IntegrationGinTestSuite) TestFlags() {
	guard := igts.login("guard@example.edu")
	admin := igts.login("admin@example.edu")

	w := igts.send(
		http.MethodPost, "parking/flags", guard, map[string]string{
			"reason": "no free slot for an arriving vehicle",
		},
	)
	igts.Require().Equal(201, w.Code)
	f := &model.Flag{}
	igts.recv(w, f)
	igts.NotZero(f.ID)
	igts.Equal(model.FlagOpen, f.Status)
	igts.Nil(f.VehicleID)

	w = igts.send(http.MethodGet, "admin/flags", admin, nil)
	igts.Require().Equal(200, w.Code)
	var fds []model.FlagDetails
	igts.recv(w, &fds)
	found := false
	for _, fd := range fds {
		if fd.ID == f.ID {
			found = true
			igts.Equal("Dev Guard", fd.RaisedBy)
			igts.Equal(
				"no free slot for an arriving vehicle", fd.Reason,
			)
		}
	}
	igts.True(found, "raised flag is not listed for review")

	w = igts.send(http.MethodGet, "admin/overview", admin, nil)
	igts.Require().Equal(200, w.Code)
	cnt := &struct {
		Users, Guards, Vehicles, OpenFlags int
	}{}
	igts.recv(w, cnt)
	igts.GreaterOrEqual(cnt.Users, 3, "seeded accounts are missing")
	igts.GreaterOrEqual(cnt.Guards, 1)
	igts.GreaterOrEqual(cnt.Vehicles, 1)
	igts.GreaterOrEqual(cnt.OpenFlags, 1, "raised flag is not counted")

	w = igts.send(
		http.MethodPatch,
		"admin/flags/"+strconv.FormatInt(f.ID, 10),
		admin,
		map[string]string{
			"resolution_note": "guided to the overflow lot",
		},
	)
	igts.Equal(204, w.Code)

	// closing is strictly one-way; a closed flag is gone for review
	w = igts.send(
		http.MethodPatch,
		"admin/flags/"+strconv.FormatInt(f.ID, 10),
		admin,
		map[string]string{},
	)
	igts.Equal(404, w.Code)
}

func (igts *IntegrationGinTestSuite) TestMemberVehicles() {
	member := igts.login("member@example.edu")

	w := igts.send(
		http.MethodPost, "members/vehicles", member, map[string]string{
			"plate": "XYZ789",
		},
	)
	igts.Require().Equal(201, w.Code)
	v := &model.Vehicle{}
	igts.recv(w, v)
	igts.NotZero(v.ID)
	igts.Equal("XYZ789", v.Plate)
	igts.True(v.Active)

	w = igts.send(http.MethodGet, "members/snapshot", member, nil)
	igts.Require().Equal(200, w.Code)
	snap := &memberuc.Snapshot{}
	igts.recv(w, snap)
	igts.Contains(snap.Plates, "XYZ789")

	w = igts.send(
		http.MethodDelete,
		"members/vehicles/"+strconv.FormatInt(v.ID, 10),
		member, nil,
	)
	igts.Equal(204, w.Code)

	w = igts.send(
		http.MethodDelete,
		"members/vehicles/"+strconv.FormatInt(v.ID, 10),
		member, nil,
	)
	igts.Equal(404, w.Code, "deactivation may not be repeated")
}

func (igts *IntegrationGinTestSuite) TestVerificationFlow() {
	member := igts.login("member@example.edu")
	admin := igts.login("admin@example.edu")

	w := igts.send(
		http.MethodPost, "members/verification/images", member,
		map[string]string{
			"profile_image_url": "https://cdn.example.edu/p/1.jpg",
			"id_image_url":      "https://cdn.example.edu/i/1.jpg",
		},
	)
	igts.Require().Equal(204, w.Code)

	w = igts.send(http.MethodGet, "members/profile", member, nil)
	igts.Require().Equal(200, w.Code)
	pr := &memberuc.Profile{}
	igts.recv(w, pr)
	igts.Require().NotNil(pr.Verification)
	igts.Equal(model.VerificationPending, pr.Verification.Status)
	igts.False(pr.CanEditProfile, "pending review must lock the profile")

	// ... and the lock is enforced, not only reported
	w = igts.send(
		http.MethodPut, "members/profile", member, map[string]string{
			"full_name":  "Renamed Member",
			"college_id": "CMU-1001",
			"email":      "member@example.edu",
		},
	)
	igts.Equal(409, w.Code)

	w = igts.send(http.MethodGet, "admin/verifications", admin, nil)
	igts.Require().Equal(200, w.Code)
	var pvs []model.PendingVerification
	igts.recv(w, &pvs)
	var pv *model.PendingVerification
	for i := range pvs {
		if pvs[i].Email == "member@example.edu" {
			pv = &pvs[i]
		}
	}
	igts.Require().NotNil(pv, "submission is not pending review")
	igts.Equal("CMU-1001", pv.CollegeID)

	w = igts.send(
		http.MethodPatch,
		"admin/verifications/"+strconv.FormatInt(pv.VerificationID, 10),
		admin,
		map[string]string{
			"verdict": "approved",
			"notes":   "matches the campus records",
		},
	)
	igts.Equal(204, w.Code)

	w = igts.send(http.MethodGet, "members/profile", member, nil)
	igts.Require().Equal(200, w.Code)
	pr = &memberuc.Profile{}
	igts.recv(w, pr)
	igts.True(pr.User.Verified, "approval must verify the profile")
	igts.True(pr.CanEditProfile, "approval must unlock the profile")
	igts.Require().NotNil(pr.Verification)
	igts.Equal(model.VerificationApproved, pr.Verification.Status)
}
