package order

import (
	"context"
	"time"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/logger"
	"campuseats-be/internal/menu"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateItemInput struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type CreateInput struct {
	CanteenID     string            `json:"canteenId"`
	Items         []CreateItemInput `json:"orderItems"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
}

type Service interface {
	Create(ctx context.Context, studentID string, input CreateInput) (*Order, error)
	History(ctx context.Context, studentID string) ([]*Order, error)
	Detail(ctx context.Context, orderID, studentID string) (*Order, error)

	CanteenOrders(ctx context.Context, canteenID string) ([]*Order, error)
	CanteenOrderDetail(ctx context.Context, orderID, canteenID string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID, canteenID string, requested Status) (*Order, error)

	ManagerStats(ctx context.Context, canteenID string) (*CanteenStats, error)
	GlobalStats(ctx context.Context) (*CanteenStats, error)
}

type service struct {
	repo     Repository
	menuRepo menu.Repository
}

func NewService(repo Repository, menuRepo menu.Repository) Service {
	return &service{repo: repo, menuRepo: menuRepo}
}

// Create runs the whole checkout pipeline: validate the request, resolve
// every item against the catalog in one batch, snapshot names and prices,
// and persist order + history + lines atomically. Prices are read exactly
// once here; the order is immune to catalog edits from this point on.
func (s *service) Create(ctx context.Context, studentID string, input CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("student_id", studentID),
		zap.String("canteen_id", input.CanteenID),
		zap.Int("item_count", len(input.Items)),
	)

	if len(input.Items) == 0 {
		return nil, ErrNoOrderItems
	}
	if input.PaymentMethod != PaymentUPI && input.PaymentMethod != PaymentCash {
		return nil, ErrInvalidPaymentMethod
	}

	ids := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		ids = append(ids, item.MenuItemID)
	}

	menuItems, err := s.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to resolve menu items", zap.Error(err))
		return nil, err
	}

	byID := make(map[string]*menu.MenuItem, len(menuItems))
	for _, m := range menuItems {
		byID[m.ID] = m
	}

	var totalAmount float64
	items := make([]OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		dbItem, ok := byID[item.MenuItemID]
		if !ok {
			// one unresolvable id rejects the entire order
			return nil, apperr.Validationf("menu item with id %s not found", item.MenuItemID)
		}

		totalAmount += dbItem.Price * float64(item.Quantity)
		items = append(items, OrderItem{
			MenuItemID: dbItem.ID,
			Name:       dbItem.Name,
			Price:      dbItem.Price,
			Quantity:   item.Quantity,
		})
	}

	paymentStatus := PaymentPending
	if input.PaymentMethod == PaymentCash {
		// cash is settled at pickup; never gated on confirmation
		paymentStatus = PaymentCompleted
	}

	now := time.Now()
	o := &Order{
		ID:            uuid.NewString(),
		StudentID:     studentID,
		CanteenID:     input.CanteenID,
		TotalAmount:   totalAmount,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: paymentStatus,
		Status:        StatusPending,
		StatusHistory: []StatusEntry{{Status: StatusPending, Timestamp: now}},
		CreatedAt:     now,
	}

	if err := s.repo.CreateOrderTx(ctx, o, items); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Float64("total_amount", o.TotalAmount),
		zap.String("payment_method", string(o.PaymentMethod)),
	)

	return o, nil
}

func (s *service) History(ctx context.Context, studentID string) ([]*Order, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *service) Detail(ctx context.Context, orderID, studentID string) (*Order, error) {
	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.StudentID != studentID {
		return nil, ErrNotOrderOwner
	}

	return o, nil
}

func (s *service) CanteenOrders(ctx context.Context, canteenID string) ([]*Order, error) {
	return s.repo.ListByCanteen(ctx, canteenID)
}

func (s *service) CanteenOrderDetail(ctx context.Context, orderID, canteenID string) (*Order, error) {
	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.CanteenID != canteenID {
		return nil, ErrNotCanteenOrder
	}

	return o, nil
}

// UpdateStatus is the single state-machine entry point. The acting
// canteen must own the order; the requested status must be a legal
// successor of the current one; the write is a CAS on the prior status
// so two racing updates cannot both land.
func (s *service) UpdateStatus(ctx context.Context, orderID, canteenID string, requested Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", orderID),
		zap.String("requested", string(requested)),
	)

	if !requested.Requestable() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.CanteenID != canteenID {
		return nil, ErrNotCanteenOrder
	}

	if !o.Status.CanTransitionTo(requested) {
		return nil, apperr.Validationf("cannot move order from %s to %s", o.Status, requested)
	}

	// completing the order is the payment confirmation for upi; for cash
	// it is already completed and the write is idempotent
	completePayment := requested == StatusCompleted

	if err := s.repo.UpdateStatusTx(ctx, orderID, o.Status, requested, completePayment); err != nil {
		return nil, err
	}

	log.Info("order status updated",
		zap.String("from", string(o.Status)),
		zap.String("to", string(requested)),
	)

	return s.repo.GetDetail(ctx, orderID)
}

func (s *service) ManagerStats(ctx context.Context, canteenID string) (*CanteenStats, error) {
	return s.repo.CanteenStats(ctx, canteenID)
}

func (s *service) GlobalStats(ctx context.Context) (*CanteenStats, error) {
	return s.repo.GlobalStats(ctx)
}
