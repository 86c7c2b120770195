package rest

import (
	"net/http"

	"campuseats-be/internal/canteen"
	"campuseats-be/internal/menu"

	"github.com/gin-gonic/gin"
)

// CanteenHandler serves the public catalog views: open canteens and
// their available menus. No authentication required.
type CanteenHandler struct {
	canteens canteen.Service
	menus    menu.Service
}

func NewCanteenHandler(canteens canteen.Service, menus menu.Service) *CanteenHandler {
	return &CanteenHandler{canteens: canteens, menus: menus}
}

func (h *CanteenHandler) List(c *gin.Context) {
	canteens, err := h.canteens.ListOpen(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, canteens)
}

func (h *CanteenHandler) Get(c *gin.Context) {
	ct, err := h.canteens.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *CanteenHandler) Menu(c *gin.Context) {
	items, err := h.menus.AvailableMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
