package adminrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/campus-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/campus-parking/pkg/core/model"
)

type rawReviewReq struct {
	Verdict string  `json:"verdict" binding:"required,oneof=approved rejected"`
	Notes   *string `json:"notes" binding:"omitempty"`
}

type verificationURI struct {
	VerificationID int64 `uri:"vid" binding:"required,min=1"`
}

type reviewReq struct {
	VerificationID int64
	Verdict        model.VerificationStatus
	Notes          *string
}

func (rs *resource) DserReviewReq(c *gin.Context) *reviewReq {
	uri := &verificationURI{}
	if ok := serdser.BindUri(c, uri); !ok {
		return nil
	}
	req := &rawReviewReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	// the oneof binding guarantees a parsable verdict
	verdict, err := model.ParseVerificationStatus(req.Verdict)
	if err != nil {
		panic(err)
	}
	return &reviewReq{
		VerificationID: uri.VerificationID,
		Verdict:        verdict,
		Notes:          req.Notes,
	}
}

type rawCloseFlagReq struct {
	Note *string `json:"resolution_note" binding:"omitempty"`
}

type flagURI struct {
	FlagID int64 `uri:"fid" binding:"required,min=1"`
}

type closeFlagReq struct {
	FlagID int64
	Note   *string
}

func (rs *resource) DserCloseFlagReq(c *gin.Context) *closeFlagReq {
	uri := &flagURI{}
	if ok := serdser.BindUri(c, uri); !ok {
		return nil
	}
	req := &rawCloseFlagReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &closeFlagReq{FlagID: uri.FlagID, Note: req.Note}
}
