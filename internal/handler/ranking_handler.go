package handler

import (
	"net/http"

	"fieldreport/internal/middleware"
	"fieldreport/internal/model"
	"fieldreport/internal/service"
	"fieldreport/pkg/response"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	rankingService service.RankingService
}

func NewRankingHandler(rankingService service.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func (h *RankingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/ranking", middleware.RequireRole(model.AllRoles...), h.GetLeaderboard)
}

// GetLeaderboard returns the AO leaderboard over approved reports.
// scope=area ranks within the caller's area; the default is the global board.
// An explicit area_code overrides both.
func (h *RankingHandler) GetLeaderboard(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	areaCode := c.Query("area_code")
	if areaCode == "" && c.Query("scope") == "area" {
		areaCode = actor.AreaCode
	}

	entries, err := h.rankingService.Leaderboard(c.Request.Context(), areaCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
