package rest

import (
	"net/http"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/canteen"
	"campuseats-be/internal/order"
	"campuseats-be/internal/user"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the back-office: canteen onboarding, manager
// account provisioning and the platform-wide dashboard.
type AdminHandler struct {
	canteens canteen.Service
	users    user.Service
	orders   order.Service
}

func NewAdminHandler(canteens canteen.Service, users user.Service, orders order.Service) *AdminHandler {
	return &AdminHandler{canteens: canteens, users: users, orders: orders}
}

type createCanteenRequest struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	ImageURL string  `json:"imageUrl"`
	UpiID    *string `json:"upiId"`
}

func (h *AdminHandler) CreateCanteen(c *gin.Context) {
	var req createCanteenRequest
	if !bindJSON(c, &req) {
		return
	}

	ct, err := h.canteens.Create(c.Request.Context(), canteen.CreateParams{
		Name:     req.Name,
		Location: req.Location,
		ImageURL: req.ImageURL,
		UpiID:    req.UpiID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

type createManagerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CanteenID string `json:"canteenId"`
}

func (h *AdminHandler) CreateManager(c *gin.Context) {
	var req createManagerRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.CanteenID == "" {
		writeError(c, apperr.Validation("name, email, password and canteenId are required"))
		return
	}

	// the binding must point at a real canteen
	if _, err := h.canteens.GetByID(c.Request.Context(), req.CanteenID); err != nil {
		writeError(c, err)
		return
	}

	u, err := h.users.CreateManager(c.Request.Context(), req.Name, req.Email, req.Password, req.CanteenID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type adminStatsResponse struct {
	CanteenCount int64   `json:"canteenCount"`
	StudentCount int64   `json:"studentCount"`
	OrderCount   int64   `json:"orderCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	canteenCount, err := h.canteens.Count(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	studentCount, err := h.users.CountStudents(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := h.orders.GlobalStats(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, adminStatsResponse{
		CanteenCount: canteenCount,
		StudentCount: studentCount,
		OrderCount:   stats.OrderCount,
		TotalRevenue: stats.TotalRevenue,
	})
}
