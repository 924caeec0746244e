package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shadamnittt/FeelGo/internal/models/request_models"
	"github.com/shadamnittt/FeelGo/internal/services"
	"github.com/shadamnittt/FeelGo/pkg/utils"
)

// EventsController is the thin HTTP surface the messaging gateway posts
// inbound conversational events to. It does no dialogue logic itself.
type EventsController struct {
	dialog services.DialogServiceInterface
}

func NewEventsController(dialog services.DialogServiceInterface) *EventsController {
	return &EventsController{dialog: dialog}
}

func (e *EventsController) Start(c *gin.Context) {
	var event request_models.StartEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid start event payload")
		return
	}

	prompt, err := e.dialog.HandleStart(c.Request.Context(), event)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prompt, "Event handled")
}

func (e *EventsController) Text(c *gin.Context) {
	var event request_models.TextEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid text event payload")
		return
	}

	prompt, err := e.dialog.HandleText(c.Request.Context(), event)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prompt, "Event handled")
}

func (e *EventsController) Location(c *gin.Context) {
	var event request_models.LocationEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid location event payload")
		return
	}

	prompt, err := e.dialog.HandleLocation(c.Request.Context(), event)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prompt, "Event handled")
}

func (e *EventsController) Menu(c *gin.Context) {
	var event request_models.MenuEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid menu event payload")
		return
	}

	prompt, err := e.dialog.HandleMenu(c.Request.Context(), event)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prompt, "Event handled")
}

func (e *EventsController) Cancel(c *gin.Context) {
	var event request_models.CancelEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid cancel event payload")
		return
	}

	prompt, err := e.dialog.HandleCancel(c.Request.Context(), event)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prompt, "Event handled")
}
