package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shadamnittt/FeelGo/internal/services"
	"github.com/shadamnittt/FeelGo/pkg/utils"
)

type FavoritesController struct {
	favorites services.FavoritesServiceInterface
}

func NewFavoritesController(favorites services.FavoritesServiceInterface) *FavoritesController {
	return &FavoritesController{favorites: favorites}
}

func (f *FavoritesController) ListByChatID(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid chat id")
		return
	}

	places, err := f.favorites.List(c.Request.Context(), chatID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Favorites fetched successfully")
}
