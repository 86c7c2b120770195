package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/canteen"
	"campuseats-be/internal/menu"
	"campuseats-be/internal/order"
	"campuseats-be/internal/user"
)

// OrderDetail is the order status view: the order plus the payment
// helpers the server attaches for unsettled upi orders.
type OrderDetail struct {
	order.Order
	UpiLink             string   `json:"upiLink,omitempty"`
	PaymentInstructions []string `json:"paymentInstructions,omitempty"`
}

// Client is the typed API client. It reads the bearer token from the
// session on every call and clears it when the server rejects it.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string, store Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: NewSession(store),
	}
}

func (c *Client) Session() *Session { return c.session }

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	authed := false
	if creds, err := c.session.Current(); err == nil && creds != nil {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
		authed = true
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && authed {
		// the stored token is no longer good; drop it
		_ = c.session.Clear()
		return ErrSessionExpired
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Message == "" {
			eb.Message = http.StatusText(resp.StatusCode)
		}
		return apiError(resp.StatusCode, eb.Message)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// apiError rebuilds an apperr value from the response so callers can
// branch on kinds with errors.Is/As, same as on the server side.
func apiError(status int, message string) error {
	switch status {
	case http.StatusBadRequest:
		return apperr.Validation(message)
	case http.StatusUnauthorized:
		return apperr.Unauthenticated(message)
	case http.StatusForbidden:
		return apperr.Forbidden(message)
	case http.StatusNotFound:
		return apperr.NotFound(message)
	case http.StatusConflict:
		return apperr.Conflict(message)
	default:
		return &apperr.Error{Kind: apperr.KindInternal, Message: message}
	}
}

// ---- auth ----

type authPayload struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/auth/register", authPayload{Name: name, Email: email, Password: password}, &creds)
	if err != nil {
		return nil, err
	}
	if err := c.session.Save(&creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/auth/login", authPayload{Email: email, Password: password}, &creds)
	if err != nil {
		return nil, err
	}
	if err := c.session.Save(&creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) Me(ctx context.Context) (*user.User, error) {
	var u user.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ---- public catalog ----

func (c *Client) Canteens(ctx context.Context) ([]*canteen.Canteen, error) {
	var out []*canteen.Canteen
	return out, c.do(ctx, http.MethodGet, "/api/canteens", nil, &out)
}

func (c *Client) Canteen(ctx context.Context, id string) (*canteen.Canteen, error) {
	var out canteen.Canteen
	if err := c.do(ctx, http.MethodGet, "/api/canteens/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Menu(ctx context.Context, canteenID string) ([]*menu.MenuItem, error) {
	var out []*menu.MenuItem
	return out, c.do(ctx, http.MethodGet, "/api/canteens/"+canteenID+"/menu", nil, &out)
}

// ---- student orders ----

func (c *Client) CreateOrder(ctx context.Context, input order.CreateInput) (*order.Order, error) {
	var out order.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context) ([]*order.Order, error) {
	var out []*order.Order
	return out, c.do(ctx, http.MethodGet, "/api/orders", nil, &out)
}

func (c *Client) Order(ctx context.Context, id string) (*OrderDetail, error) {
	var out OrderDetail
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- manager ----

type CanteenSettings struct {
	UpiID  *string `json:"upiId,omitempty"`
	IsOpen *bool   `json:"isOpen,omitempty"`
}

func (c *Client) ManagerCanteen(ctx context.Context) (*canteen.Canteen, error) {
	var out canteen.Canteen
	if err := c.do(ctx, http.MethodGet, "/api/manager/canteen", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateManagerCanteen(ctx context.Context, settings CanteenSettings) (*canteen.Canteen, error) {
	var out canteen.Canteen
	if err := c.do(ctx, http.MethodPut, "/api/manager/canteen", settings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type MenuItemParams struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

func (c *Client) ManagerMenu(ctx context.Context) ([]*menu.MenuItem, error) {
	var out []*menu.MenuItem
	return out, c.do(ctx, http.MethodGet, "/api/manager/menu", nil, &out)
}

func (c *Client) CreateMenuItem(ctx context.Context, params MenuItemParams) (*menu.MenuItem, error) {
	var out menu.MenuItem
	if err := c.do(ctx, http.MethodPost, "/api/manager/menu", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, params MenuItemParams) (*menu.MenuItem, error) {
	var out menu.MenuItem
	if err := c.do(ctx, http.MethodPut, "/api/manager/menu/"+id, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/manager/menu/"+id, nil, nil)
}

func (c *Client) ManagerOrders(ctx context.Context) ([]*order.Order, error) {
	var out []*order.Order
	return out, c.do(ctx, http.MethodGet, "/api/manager/orders", nil, &out)
}

func (c *Client) ManagerOrder(ctx context.Context, id string) (*OrderDetail, error) {
	var out OrderDetail
	if err := c.do(ctx, http.MethodGet, "/api/manager/orders/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	var out order.Order
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPatch, "/api/manager/orders/"+id+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ManagerStats(ctx context.Context) (*order.CanteenStats, error) {
	var out order.CanteenStats
	if err := c.do(ctx, http.MethodGet, "/api/manager/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- admin ----

type CanteenParams struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	ImageURL string  `json:"imageUrl,omitempty"`
	UpiID    *string `json:"upiId,omitempty"`
}

func (c *Client) CreateCanteen(ctx context.Context, params CanteenParams) (*canteen.Canteen, error) {
	var out canteen.Canteen
	if err := c.do(ctx, http.MethodPost, "/api/admin/canteens", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ManagerParams struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CanteenID string `json:"canteenId"`
}

func (c *Client) CreateManager(ctx context.Context, params ManagerParams) (*user.User, error) {
	var out user.User
	if err := c.do(ctx, http.MethodPost, "/api/admin/users/manager", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type AdminStats struct {
	CanteenCount int64   `json:"canteenCount"`
	StudentCount int64   `json:"studentCount"`
	OrderCount   int64   `json:"orderCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
