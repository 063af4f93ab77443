package api

import (
	"errors"
	"net/http"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/category"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/order"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/product"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/settings"

	"github.com/gin-gonic/gin"
)

// ---------- orders ----------

func (h *Handler) AdminListOrders(c *gin.Context) {
	opts := order.OrderQueryOptions{}

	if raw := c.Query("status"); raw != "" {
		status := order.Status(raw)
		opts.Status = &status
	}
	if search := c.Query("search"); search != "" {
		opts.Search = &search
	}
	if limit, ok := queryInt32(c, "limit"); ok {
		opts.Limit = &limit
	}
	if page, ok := queryInt32(c, "page"); ok {
		opts.Page = &page
	}

	orders, err := h.orders.GetOrders(c.Request.Context(), opts)
	if errors.Is(err, order.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) AdminGetOrder(c *gin.Context) {
	o, err := h.orders.GetOrderDetail(c.Request.Context(), c.Param("id"))
	if errors.Is(err, order.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	switch {
	case errors.Is(err, order.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
		return
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// ---------- products ----------

type createProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       int64   `json:"price" binding:"required"`
	Image       *string `json:"image"`
	CategoryID  *string `json:"category_id"`
	IsHot       bool    `json:"is_hot"`
	IsNew       bool    `json:"is_new"`
	IsFeatured  bool    `json:"is_featured"`
	Discount    int32   `json:"discount"`
}

func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.products.Create(c.Request.Context(), product.NewProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		IsHot:       req.IsHot,
		IsNew:       req.IsNew,
		IsFeatured:  req.IsFeatured,
		Discount:    req.Discount,
	})
	if isProductInputError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": p})
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Image       *string `json:"image"`
	CategoryID  *string `json:"category_id"`
	IsHot       *bool   `json:"is_hot"`
	IsNew       *bool   `json:"is_new"`
	IsFeatured  *bool   `json:"is_featured"`
	Discount    *int32  `json:"discount"`
}

func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), c.Param("id"), product.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		IsHot:       req.IsHot,
		IsNew:       req.IsNew,
		IsFeatured:  req.IsFeatured,
		Discount:    req.Discount,
	})
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	case errors.Is(err, product.ErrNoFieldsToUpdate) || isProductInputError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	err := h.products.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, product.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func isProductInputError(err error) bool {
	return errors.Is(err, product.ErrEmptyName) ||
		errors.Is(err, product.ErrInvalidPrice) ||
		errors.Is(err, product.ErrInvalidDiscount)
}

// ---------- categories ----------

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) AdminCreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cat, err := h.categories.AddCategory(c.Request.Context(), req.Name)
	if errors.Is(err, category.ErrEmptyName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

func (h *Handler) AdminUpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cat, err := h.categories.UpdateCategory(c.Request.Context(), c.Param("id"), req.Name)
	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	case errors.Is(err, category.ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": cat})
}

func (h *Handler) AdminDeleteCategory(c *gin.Context) {
	err := h.categories.DeleteCategory(c.Request.Context(), c.Param("id"))
	if errors.Is(err, category.ErrCategoryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ---------- settings ----------

type updateSettingsRequest struct {
	CafeName         *string `json:"cafe_name"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	WorkingHours     *string `json:"working_hours"`
	Description      *string `json:"description"`
	IsDeliveryActive *bool   `json:"is_delivery_active"`
	MinOrderAmount   *int64  `json:"min_order_amount"`
	DeliveryFee      *int64  `json:"delivery_fee"`
}

func (h *Handler) AdminUpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s, err := h.settings.UpdateSettings(c.Request.Context(), settings.UpdateSettingsInput{
		CafeName:         req.CafeName,
		Phone:            req.Phone,
		Address:          req.Address,
		WorkingHours:     req.WorkingHours,
		Description:      req.Description,
		IsDeliveryActive: req.IsDeliveryActive,
		MinOrderAmount:   req.MinOrderAmount,
		DeliveryFee:      req.DeliveryFee,
	})
	switch {
	case errors.Is(err, settings.ErrNegativeAmount) || errors.Is(err, settings.ErrNoFieldsToUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": s})
}
