package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openclass/courseware-backend/internal/model"
	"github.com/openclass/courseware-backend/internal/response"
	"github.com/openclass/courseware-backend/internal/service"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// GetAll godoc
// GET /api/v1/groups
func (h *GroupHandler) GetAll(c *gin.Context) {
	groups, err := h.groupService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if groups == nil {
		groups = []model.Group{}
	}

	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}
