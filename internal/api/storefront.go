package api

import (
	"errors"
	"net/http"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/cart"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/checkout"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/product"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCategories(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := h.categories.GetCategories(ctx, nil, nil, nil)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	opts := product.ProductQueryOptions{}
	if slug := c.Query("category"); slug != "" {
		opts.CategorySlug = &slug
	}
	if limit, ok := queryInt32(c, "limit"); ok {
		opts.Limit = &limit
	}
	if page, ok := queryInt32(c, "page"); ok {
		opts.Page = &page
	}

	products, err := h.products.GetList(ctx, opts)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) GetFeaturedProduct(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.products.GetFeatured(ctx)
	if errors.Is(err, product.ErrNoFeaturedItem) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no featured product"})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":         p,
		"effective_price": p.EffectivePrice(),
		"display_price":   utils.FormatPrice(p.EffectivePrice()),
	})
}

func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.settings.GetSettings(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": s})
}

// ---------- cart ----------

func cartView(userCart *cart.Cart) gin.H {
	return gin.H{
		"items":      userCart.Lines(),
		"total":      userCart.Total(),
		"item_count": userCart.ItemCount(),
	}
}

func (h *Handler) GetCart(c *gin.Context) {
	_, userCart := h.session(c)
	c.JSON(http.StatusOK, cartView(userCart))
}

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), req.ProductID)
	if errors.Is(err, product.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	_, userCart := h.session(c)
	userCart.Add(cart.ItemFromProduct(p))

	c.JSON(http.StatusOK, cartView(userCart))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	_, userCart := h.session(c)
	userCart.UpdateQuantity(c.Param("productID"), req.Quantity)

	c.JSON(http.StatusOK, cartView(userCart))
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	_, userCart := h.session(c)
	userCart.Remove(c.Param("productID"))

	c.JSON(http.StatusOK, cartView(userCart))
}

func (h *Handler) ClearCart(c *gin.Context) {
	_, userCart := h.session(c)
	userCart.Clear()

	c.JSON(http.StatusOK, cartView(userCart))
}

// ---------- checkout ----------

type checkoutFormRequest struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

func (h *Handler) SetCheckoutForm(c *gin.Context) {
	var req checkoutFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	fl := h.flow(c)
	ok := fl.SetForm(checkout.Form{
		Name:    req.CustomerName,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "submission in progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form":   fl.FormValue(),
		"fields": fl.FieldErrors(),
	})
}

type locationRequest struct {
	Lat float64 `json:"lat" binding:"required"`
	Lon float64 `json:"lon" binding:"required"`
}

func (h *Handler) FillCheckoutLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	fl := h.flow(c)
	addr, applied := fl.FillLocation(c.Request.Context(), req.Lat, req.Lon)

	c.JSON(http.StatusOK, gin.H{
		"address": addr,
		"applied": applied,
	})
}

func (h *Handler) SubmitCheckout(c *gin.Context) {
	fl := h.flow(c)

	orderID, res, err := fl.Submit(c.Request.Context())
	switch {
	case errors.Is(err, checkout.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "submission in progress"})
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "order submission failed, please retry"})
		return
	}

	if !res.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation_failed",
			"fields": res.Fields,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": orderID,
		"state":    fl.State(),
	})
}

func (h *Handler) GetCheckoutStatus(c *gin.Context) {
	fl := h.flow(c)

	c.JSON(http.StatusOK, gin.H{
		"state":    fl.State(),
		"form":     fl.FormValue(),
		"fields":   fl.FieldErrors(),
		"order_id": fl.OrderID(),
	})
}

func (h *Handler) CloseCheckout(c *gin.Context) {
	fl := h.flow(c)

	if !fl.Close() {
		c.JSON(http.StatusConflict, gin.H{
			"closed": false,
			"state":  fl.State(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"closed": true})
}
