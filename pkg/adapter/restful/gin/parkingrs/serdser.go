package parkingrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/campus-parking/pkg/core/recognize"
)

type plateURI struct {
	Plate string `uri:"plate" binding:"required"`
}

func (rs *resource) DserPlateURI(c *gin.Context) *plateURI {
	req := &plateURI{}
	if ok := serdser.BindUri(c, req); !ok {
		return nil
	}
	return req
}

type rawAllocateReq struct {
	VehicleID  int64    `json:"vehicle_id" binding:"required,min=1"`
	SlotID     int64    `json:"slot_id" binding:"required,min=1"`
	Plate      string   `json:"plate" binding:"omitempty"`
	Confidence *float64 `json:"confidence" binding:"omitempty,min=0,max=1"`
}

type allocateReq struct {
	VehicleID int64
	SlotID    int64
	// Reading carries the recognition provenance when the guard went
	// through the recognition API first; nil for typed-in plates.
	Reading *recognize.Reading
}

func (rs *resource) DserAllocateReq(c *gin.Context) *allocateReq {
	req := &rawAllocateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	val := &allocateReq{
		VehicleID: req.VehicleID,
		SlotID:    req.SlotID,
	}
	if req.Plate != "" {
		r := &recognize.Reading{Plate: req.Plate}
		if req.Confidence != nil {
			r.Confidence = *req.Confidence
		}
		val.Reading = r
	}
	return val
}

type releaseReq struct {
	Plate string `json:"plate" binding:"required"`
}

func (rs *resource) DserReleaseReq(c *gin.Context) *releaseReq {
	req := &releaseReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

type raiseFlagReq struct {
	Reason    string `json:"reason" binding:"required"`
	VehicleID *int64 `json:"vehicle_id" binding:"omitempty,min=1"`
}

func (rs *resource) DserRaiseFlagReq(c *gin.Context) *raiseFlagReq {
	req := &raiseFlagReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}
