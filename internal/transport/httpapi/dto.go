package httpapi

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/aggregate"
)

// customerRequest — тело запроса создания/обновления клиента.
type customerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// validate накапливает ошибки по полям, не останавливаясь на первой.
func (r customerRequest) validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name: must not be empty")
	}
	if r.Email == "" {
		errs = append(errs, "email: must not be empty")
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, "email: must be a valid email address")
	}
	return errs
}

func (r customerRequest) toInput() aggregate.CustomerInput {
	return aggregate.CustomerInput{
		Name:    r.Name,
		Email:   r.Email,
		Address: r.Address,
	}
}

// customerResponse — представление клиента в ответах API.
type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

func toCustomerResponses(customers []domain.Customer) []customerResponse {
	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out
}

// orderItemRequest — позиция в запросах создания заказа и мутаций позиций.
type orderItemRequest struct {
	ProductName string          `json:"productName"`
	Quantity    int32           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (r orderItemRequest) validate(prefix string) []string {
	var errs []string
	if r.ProductName == "" {
		errs = append(errs, prefix+"productName: must not be empty")
	}
	if r.Quantity < 1 {
		errs = append(errs, prefix+"quantity: must be at least 1")
	}
	if !r.Price.IsPositive() {
		errs = append(errs, prefix+"price: must be greater than zero")
	}
	return errs
}

func (r orderItemRequest) toInput() aggregate.OrderItemInput {
	return aggregate.OrderItemInput{
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

// createOrderRequest — тело запроса создания заказа.
type createOrderRequest struct {
	CustomerID string             `json:"customerId"`
	Status     string             `json:"status"`
	Items      []orderItemRequest `json:"items"`
}

func (r createOrderRequest) validate() []string {
	var errs []string
	if r.CustomerID == "" {
		errs = append(errs, "customerId: must not be empty")
	}
	if !domain.ValidStatus(domain.OrderStatus(r.Status)) {
		errs = append(errs, "status: must be a known order status")
	}
	if len(r.Items) == 0 {
		errs = append(errs, "items: order must contain at least one item")
	}
	for i, item := range r.Items {
		errs = append(errs, item.validate(fmt.Sprintf("items[%d].", i))...)
	}
	return errs
}

func (r createOrderRequest) toInput() aggregate.CreateOrderInput {
	items := make([]aggregate.OrderItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.toInput())
	}
	return aggregate.CreateOrderInput{
		CustomerID: r.CustomerID,
		Status:     domain.OrderStatus(r.Status),
		Items:      items,
	}
}

// updateOrderRequest — тело запроса обновления заказа: прямой override
// суммы и статуса.
type updateOrderRequest struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
}

func (r updateOrderRequest) validate() []string {
	var errs []string
	if !domain.ValidStatus(domain.OrderStatus(r.Status)) {
		errs = append(errs, "status: must be a known order status")
	}
	if r.TotalAmount.IsNegative() {
		errs = append(errs, "totalAmount: must not be negative")
	}
	return errs
}

func (r updateOrderRequest) toInput() aggregate.UpdateOrderInput {
	return aggregate.UpdateOrderInput{
		TotalAmount: r.TotalAmount,
		Status:      domain.OrderStatus(r.Status),
	}
}

// orderResponse — представление заказа в ответах API.
type orderResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customerId"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

// customerSummaryResponse и orderItemSummaryResponse — вложенные срезы
// составного представления заказа.
type customerSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderItemSummaryResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int32           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// orderDetailsResponse — составное представление заказа: заказ, клиент
// и позиции.
type orderDetailsResponse struct {
	ID          string                     `json:"id"`
	OrderDate   time.Time                  `json:"orderDate"`
	TotalAmount decimal.Decimal            `json:"totalAmount"`
	Status      string                     `json:"status"`
	Customer    customerSummaryResponse    `json:"customer"`
	Items       []orderItemSummaryResponse `json:"items"`
}

func toOrderDetailsResponse(d domain.OrderDetails) orderDetailsResponse {
	items := make([]orderItemSummaryResponse, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, orderItemSummaryResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return orderDetailsResponse{
		ID:          d.Order.ID,
		OrderDate:   d.Order.OrderDate,
		TotalAmount: d.Order.TotalAmount,
		Status:      string(d.Order.Status),
		Customer: customerSummaryResponse{
			ID:    d.Customer.ID,
			Name:  d.Customer.Name,
			Email: d.Customer.Email,
		},
		Items: items,
	}
}

// orderItemResponse — представление позиции в ответах API.
type orderItemResponse struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	ProductName string          `json:"productName"`
	Quantity    int32           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func toOrderItemResponse(item domain.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:          item.ID,
		OrderID:     item.OrderID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Price:       item.Price,
	}
}

func toOrderItemResponses(items []domain.OrderItem) []orderItemResponse {
	out := make([]orderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toOrderItemResponse(item))
	}
	return out
}
