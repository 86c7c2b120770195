package rest

import (
	"fmt"
	"net/http"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/middleware"
	"campuseats-be/internal/order"
	"campuseats-be/internal/payment"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves the student side of ordering: checkout, order
// history and the status page the app polls.
type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		writeError(c, apperr.Unauthenticated("authorization token required"))
		return
	}

	var input order.CreateInput
	if !bindJSON(c, &input) {
		return
	}

	o, err := h.orders.Create(c.Request.Context(), claims.UserID, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) History(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		writeError(c, apperr.Unauthenticated("authorization token required"))
		return
	}

	orders, err := h.orders.History(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

type orderDetailResponse struct {
	*order.Order
	UpiLink             string   `json:"upiLink,omitempty"`
	PaymentInstructions []string `json:"paymentInstructions,omitempty"`
}

func (h *OrderHandler) Detail(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		writeError(c, apperr.Unauthenticated("authorization token required"))
		return
	}

	o, err := h.orders.Detail(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detailWithPayment(o))
}

// detailWithPayment decorates the order with the UPI deep link and the
// human payment steps. The link only makes sense for an unsettled upi
// order whose canteen has a VPA configured.
func detailWithPayment(o *order.Order) orderDetailResponse {
	resp := orderDetailResponse{Order: o}

	amount := fmt.Sprintf("₹%.2f", o.TotalAmount)
	resp.PaymentInstructions = payment.InjectVariables(
		payment.GetInstructions(string(o.PaymentMethod)),
		payment.InstructionVars{"amount": amount},
	)

	if o.PaymentMethod == order.PaymentUPI && o.CanteenUpi != "" && o.PaymentStatus != order.PaymentCompleted {
		resp.UpiLink = payment.DeepLink(o.CanteenUpi, o.CanteenName, o.TotalAmount, o.ID)
	}

	return resp
}
