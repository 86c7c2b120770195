package client

import (
	"context"
	"sync"
	"time"

	"campuseats-be/internal/logger"
	"campuseats-be/internal/order"

	"go.uber.org/zap"
)

// DefaultPollInterval matches the refresh cadence of the app screens.
const DefaultPollInterval = 5 * time.Second

// OrderPoller keeps a student's order status screen fresh. It fetches
// once up front, then re-fetches on a fixed interval until the order
// reaches a terminal status or the context is cancelled. Transient
// poll errors are logged and swallowed; the last good snapshot stays
// on screen.
type OrderPoller struct {
	client   *Client
	orderID  string
	interval time.Duration
	onUpdate func(*OrderDetail)
}

func NewOrderPoller(c *Client, orderID string, onUpdate func(*OrderDetail)) *OrderPoller {
	return &OrderPoller{
		client:   c,
		orderID:  orderID,
		interval: DefaultPollInterval,
		onUpdate: onUpdate,
	}
}

// WithInterval overrides the poll cadence.
func (p *OrderPoller) WithInterval(d time.Duration) *OrderPoller {
	p.interval = d
	return p
}

// Run blocks until the order is terminal or ctx is done. The initial
// fetch failing is an error; later fetches run sequentially so a slow
// response skips ticks instead of piling up.
func (p *OrderPoller) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(zap.String("order_id", p.orderID))

	detail, err := p.client.Order(ctx, p.orderID)
	if err != nil {
		return err
	}
	p.onUpdate(detail)
	if detail.Status.Terminal() {
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			detail, err := p.client.Order(ctx, p.orderID)
			if err != nil {
				log.Warn("order poll failed", zap.Error(err))
				continue
			}

			p.onUpdate(detail)
			if detail.Status.Terminal() {
				log.Info("order reached terminal status",
					zap.String("status", string(detail.Status)))
				return nil
			}
		}
	}
}

// CanteenPoller keeps a vendor's order queue fresh. Alongside the list
// it tracks one selected order; when the selected order's status in the
// list differs from the held copy, the full detail is re-fetched before
// the callback fires so the vendor always sees consistent history and
// lines.
type CanteenPoller struct {
	client     *Client
	interval   time.Duration
	onOrders   func([]*order.Order)
	onSelected func(*OrderDetail)

	mu       sync.Mutex
	selected *OrderDetail
}

func NewCanteenPoller(c *Client, onOrders func([]*order.Order), onSelected func(*OrderDetail)) *CanteenPoller {
	return &CanteenPoller{
		client:     c,
		interval:   DefaultPollInterval,
		onOrders:   onOrders,
		onSelected: onSelected,
	}
}

func (p *CanteenPoller) WithInterval(d time.Duration) *CanteenPoller {
	p.interval = d
	return p
}

// Select marks an order as the one open in the detail pane and fetches
// its current detail immediately.
func (p *CanteenPoller) Select(ctx context.Context, orderID string) (*OrderDetail, error) {
	detail, err := p.client.ManagerOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.selected = detail
	p.mu.Unlock()

	return detail, nil
}

// Deselect closes the detail pane.
func (p *CanteenPoller) Deselect() {
	p.mu.Lock()
	p.selected = nil
	p.mu.Unlock()
}

// Run blocks until ctx is done, polling the order list each interval.
func (p *CanteenPoller) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	if err := p.poll(ctx, log); err != nil {
		return err
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.poll(ctx, log); err != nil {
				log.Warn("canteen poll failed", zap.Error(err))
			}
		}
	}
}

func (p *CanteenPoller) poll(ctx context.Context, log *zap.Logger) error {
	orders, err := p.client.ManagerOrders(ctx)
	if err != nil {
		return err
	}
	p.onOrders(orders)

	p.mu.Lock()
	selected := p.selected
	p.mu.Unlock()
	if selected == nil {
		return nil
	}

	for _, o := range orders {
		if o.ID != selected.ID || o.Status == selected.Status {
			continue
		}

		detail, err := p.client.ManagerOrder(ctx, selected.ID)
		if err != nil {
			return err
		}

		p.mu.Lock()
		// only replace if nothing was deselected/reselected meanwhile
		if p.selected != nil && p.selected.ID == detail.ID {
			p.selected = detail
		}
		p.mu.Unlock()

		p.onSelected(detail)
		break
	}

	return nil
}
