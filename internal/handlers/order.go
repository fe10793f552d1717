package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"

	"digitalstore_back_end/internal/events"
	"digitalstore_back_end/internal/middleware"
	"digitalstore_back_end/internal/models"
	"digitalstore_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderHandler struct {
	orders    store.OrderStore
	publisher *events.Publisher
}

func NewOrderHandler(orders store.OrderStore, publisher *events.Publisher) *OrderHandler {
	return &OrderHandler{orders: orders, publisher: publisher}
}

type createOrderRequest struct {
	Items        []models.OrderItem `json:"items" binding:"required"`
	Total        float64            `json:"total"`
	CustomerName string             `json:"customerName" binding:"required"`
	User         string             `json:"user"`
}

// Create places an order in Pending. The total is recomputed from the
// line items so a tampered client cannot set its own price.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Items and customerName are required"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order has no items"})
		return
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Item %d has a non-positive quantity", i)})
			return
		}
		if item.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Item %d has a negative price", i)})
			return
		}
	}

	total := models.ItemsTotal(req.Items)
	if math.Abs(total-req.Total) > 0.009 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order total does not match item prices"})
		return
	}

	order := &models.Order{
		CustomerName: req.CustomerName,
		Items:        req.Items,
		Total:        total,
		Status:       models.StatusPending,
	}
	if req.User != "" {
		uid, err := primitive.ObjectIDFromHex(req.User)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}
		order.User = &uid
	}

	if err := h.orders.Create(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	h.publisher.Publish(events.OrderCreated, order)
	log.Printf("🛒 Order %s created for %q (%.2f)", order.ID.Hex(), order.CustomerName, order.Total)
	c.JSON(http.StatusCreated, order)
}

// List returns every order, newest first. Admin only.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// MyOrders returns only the authenticated user's orders.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
		return
	}

	orders, err := h.orders.FindByUser(c.Request.Context(), user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus transitions an order along the fulfilment pipeline.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order status"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	order, err := h.orders.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Invalid status transition: %s → %s", order.Status, req.Status),
		})
		return
	}

	updated, err := h.orders.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	h.publisher.Publish(events.OrderStatusChanged, updated)
	log.Printf("📦 Order %s: %s → %s", id, order.Status, updated.Status)
	c.JSON(http.StatusOK, updated)
}
