package authrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/campus-parking/pkg/core/model"
)

type rawRegisterReq struct {
	CollegeID string `json:"college_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=member guard"`
}

type registerReq struct {
	CollegeID string
	FullName  string
	Email     string
	Password  string
	Role      model.Role
}

func (rs *resource) DserRegisterReq(c *gin.Context) *registerReq {
	req := &rawRegisterReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	// the oneof binding guarantees a parsable role
	role, err := model.ParseRole(req.Role)
	if err != nil {
		panic(err)
	}
	return &registerReq{
		CollegeID: req.CollegeID,
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
	}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (rs *resource) DserLoginReq(c *gin.Context) *loginReq {
	req := &loginReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}
