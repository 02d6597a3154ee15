package membersrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/serdser"
)

type updateProfileReq struct {
	FullName  string `json:"full_name" binding:"required"`
	CollegeID string `json:"college_id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

func (rs *resource) DserUpdateProfileReq(c *gin.Context) *updateProfileReq {
	req := &updateProfileReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

type registerVehicleReq struct {
	Plate string `json:"plate" binding:"required,alphanum,uppercase"`
}

func (rs *resource) DserRegisterVehicleReq(c *gin.Context) *registerVehicleReq {
	req := &registerVehicleReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

type vehicleURI struct {
	VehicleID int64 `uri:"vid" binding:"required,min=1"`
}

func (rs *resource) DserVehicleURI(c *gin.Context) *vehicleURI {
	req := &vehicleURI{}
	if ok := serdser.BindUri(c, req); !ok {
		return nil
	}
	return req
}

type submitImagesReq struct {
	ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,uri"`
	IDImageURL      *string `json:"id_image_url" binding:"omitempty,uri"`
}

func (rs *resource) DserSubmitImagesReq(c *gin.Context) *submitImagesReq {
	req := &submitImagesReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}
