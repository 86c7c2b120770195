package client

import (
	"encoding/json"
	"errors"
	"sync"

	"campuseats-be/internal/order"
)

const (
	cartKey        = "campuseats-cart"
	cartCanteenKey = "campuseats-cart-canteen"
)

// ErrCanteenMismatch is returned when an item from a different canteen
// is added to a non-empty cart. The caller decides whether to clear the
// cart and retry; the SDK never discards the current cart on its own.
var ErrCanteenMismatch = errors.New("client: cart holds items from another canteen")

type CartItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Cart is the locally persisted, single-canteen shopping cart. Every
// mutation is written through to the store before it returns.
type Cart struct {
	mu        sync.Mutex
	store     Store
	canteenID string
	items     []CartItem
}

// NewCart restores the persisted cart, or starts empty when nothing
// was saved yet.
func NewCart(store Store) (*Cart, error) {
	c := &Cart{store: store}

	data, err := store.Load(cartKey)
	switch {
	case errors.Is(err, ErrNotExist):
		return c, nil
	case err != nil:
		return nil, err
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		return nil, err
	}

	data, err = store.Load(cartCanteenKey)
	if err != nil && !errors.Is(err, ErrNotExist) {
		return nil, err
	}
	if err == nil {
		c.canteenID = string(data)
	}

	return c, nil
}

// AddItem puts an item in the cart. An empty cart adopts the item's
// canteen; adding the same item again bumps its quantity instead of
// duplicating the line.
func (c *Cart) AddItem(canteenID string, item CartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) > 0 && c.canteenID != canteenID {
		return ErrCanteenMismatch
	}

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	c.canteenID = canteenID
	found := false
	for i := range c.items {
		if c.items[i].MenuItemID == item.MenuItemID {
			c.items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, item)
	}

	return c.persist()
}

// RemoveItem drops a line entirely. Removing the last line also clears
// the canteen binding so the next add starts fresh.
func (c *Cart) RemoveItem(menuItemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}

	if len(c.items) == 0 {
		c.canteenID = ""
	}

	return c.persist()
}

// UpdateQuantity sets a line's quantity, clamped to at least 1. Use
// RemoveItem to drop a line.
func (c *Cart) UpdateQuantity(menuItemID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items[i].Quantity = quantity
			break
		}
	}

	return c.persist()
}

func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.canteenID = ""
	return c.persist()
}

func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) CanteenID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canteenID
}

// Total is always derived from the lines, never stored.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CheckoutInput converts the cart into the order creation payload.
func (c *Cart) CheckoutInput(method order.PaymentMethod) order.CreateInput {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]order.CreateItemInput, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, order.CreateItemInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	return order.CreateInput{
		CanteenID:     c.canteenID,
		Items:         items,
		PaymentMethod: method,
	}
}

// persist is called with the mutex held.
func (c *Cart) persist() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	if err := c.store.Save(cartKey, data); err != nil {
		return err
	}

	if c.canteenID == "" {
		return c.store.Delete(cartCanteenKey)
	}
	return c.store.Save(cartCanteenKey, []byte(c.canteenID))
}
