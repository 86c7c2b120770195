package rest

import (
	"net/http"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/canteen"
	"campuseats-be/internal/menu"
	"campuseats-be/internal/middleware"
	"campuseats-be/internal/order"

	"github.com/gin-gonic/gin"
)

// ManagerHandler serves the vendor dashboard: the canteen's settings,
// its menu, the incoming order queue and the status transitions.
type ManagerHandler struct {
	canteens canteen.Service
	menus    menu.Service
	orders   order.Service
}

func NewManagerHandler(canteens canteen.Service, menus menu.Service, orders order.Service) *ManagerHandler {
	return &ManagerHandler{canteens: canteens, menus: menus, orders: orders}
}

var errNoCanteenBinding = apperr.Forbidden("manager account has no canteen")

func (h *ManagerHandler) Canteen(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	ct, err := h.canteens.GetByID(c.Request.Context(), canteenID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

type updateCanteenRequest struct {
	UpiID  *string `json:"upiId"`
	IsOpen *bool   `json:"isOpen"`
}

func (h *ManagerHandler) UpdateCanteen(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	var req updateCanteenRequest
	if !bindJSON(c, &req) {
		return
	}

	ct, err := h.canteens.UpdateSettings(c.Request.Context(), canteenID, canteen.UpdateSettingsParams{
		UpiID:  req.UpiID,
		IsOpen: req.IsOpen,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *ManagerHandler) Menu(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	items, err := h.menus.ManagerMenu(c.Request.Context(), canteenID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type menuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (h *ManagerHandler) CreateMenuItem(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	var req menuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name == "" {
		writeError(c, apperr.Validation("item name is required"))
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item, err := h.menus.Create(c.Request.Context(), menu.CreateParams{
		CanteenID:   canteenID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	IsAvailable *bool    `json:"isAvailable"`
}

func (h *ManagerHandler) UpdateMenuItem(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	var req updateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menus.Update(c.Request.Context(), canteenID, c.Param("id"), menu.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ManagerHandler) DeleteMenuItem(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	if err := h.menus.Delete(c.Request.Context(), canteenID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}

func (h *ManagerHandler) Orders(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	orders, err := h.orders.CanteenOrders(c.Request.Context(), canteenID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *ManagerHandler) OrderDetail(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	o, err := h.orders.CanteenOrderDetail(c.Request.Context(), c.Param("id"), canteenID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ManagerHandler) UpdateOrderStatus(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	var req updateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), canteenID, order.Status(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *ManagerHandler) Stats(c *gin.Context) {
	canteenID, ok := middleware.ManagerCanteenID(c)
	if !ok {
		writeError(c, errNoCanteenBinding)
		return
	}

	stats, err := h.orders.ManagerStats(c.Request.Context(), canteenID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
