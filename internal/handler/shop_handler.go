package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// ShopHandler serves the shop product and order endpoints
type ShopHandler struct {
	shopService service.ShopService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shopService service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// CreateProduct adds a product to the shop. Admin only.
func (h *ShopHandler) CreateProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	product, err := h.shopService.CreateProduct(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, product)
}

// GetProduct returns a single product
func (h *ShopHandler) GetProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}

	product, err := h.shopService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, product)
}

// ListProducts returns a page of products. Non-admin callers only see
// active products.
func (h *ShopHandler) ListProducts(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	list, err := h.shopService.ListProducts(c.Request.Context(), optionalActor(c), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateProduct applies a partial update to a product. Admin only.
func (h *ShopHandler) UpdateProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	product, err := h.shopService.UpdateProduct(c.Request.Context(), actor, productID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, product)
}

// DeleteProduct removes a product from the shop. Admin only.
func (h *ShopHandler) DeleteProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.shopService.DeleteProduct(c.Request.Context(), actor, productID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// PlaceOrder creates an order, reserving stock for every line
func (h *ShopHandler) PlaceOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	order, err := h.shopService.PlaceOrder(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, order)
}

// GetOrder returns a single order. Buyers see their own orders, admins see all.
func (h *ShopHandler) GetOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}

	order, err := h.shopService.GetOrder(c.Request.Context(), actor, orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, order)
}

// ListMyOrders returns the caller's orders, newest first
func (h *ShopHandler) ListMyOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	list, err := h.shopService.ListMyOrders(c.Request.Context(), actor, &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateOrderStatus moves an order through its lifecycle. Admin only.
func (h *ShopHandler) UpdateOrderStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	order, err := h.shopService.UpdateOrderStatus(c.Request.Context(), actor, orderID, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, order)
}
