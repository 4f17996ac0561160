package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cart-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// CartService is what the handler needs from the cart layer.
// Consumers define this interface, not the service implementation
type CartService interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID string, productID, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID string, productID int) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) (*domain.Cart, error)
}

type CartHandler struct {
	service CartService
	timeout time.Duration
}

func NewCartHandler(service CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		service: service,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Cart    []domain.CartItem `json:"cart"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")

	cart, err := h.service.GetCart(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CartResponse{
		Success: true,
		Cart:    cart.Items,
	})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	cart, err := h.service.AddItem(ctx, userID, domain.CartItem{
		ProductID: req.ID,
		Name:      req.Name,
		Size:      req.Size,
		Color:     req.Color,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Image:     req.Image,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CartResponse{
		Success: true,
		Message: "item added to cart",
		Cart:    cart.Items,
	})
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	productID := parseItemID(r)

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	cart, err := h.service.UpdateQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CartResponse{
		Success: true,
		Message: "quantity updated",
		Cart:    cart.Items,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	productID := parseItemID(r)

	cart, err := h.service.RemoveItem(ctx, userID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CartResponse{
		Success: true,
		Message: "item removed from cart",
		Cart:    cart.Items,
	})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")

	cart, err := h.service.ClearCart(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CartResponse{
		Success: true,
		Message: "cart cleared",
		Cart:    cart.Items,
	})
}

// parseItemID reads the itemId path parameter. A non-numeric id parses to
// zero, which matches no item, same as an absent one.
func parseItemID(r *http.Request) int {
	id, _ := strconv.Atoi(chi.URLParam(r, "itemId"))
	return id
}
