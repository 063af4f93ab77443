package api

import (
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/cart"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/category"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/checkout"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/geocode"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/middleware"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/order"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/product"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/settings"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the storefront session token. A token is issued on
// the first cart or checkout touch and echoed back on every response.
const SessionHeader = "X-Session-ID"

type Handler struct {
	products   product.Service
	categories category.Service
	orders     order.Service
	settings   settings.Service
	carts      *cart.Store
	flows      *checkout.Registry
}

func NewHandler(
	products product.Service,
	categories category.Service,
	orders order.Service,
	settingsSvc settings.Service,
	carts *cart.Store,
	geocoder geocode.Reverser,
) *Handler {
	flows := checkout.NewRegistry(&orderSubmitter{orders: orders}, geocoder)
	carts.OnEvict(flows.Drop)

	return &Handler{
		products:   products,
		categories: categories,
		orders:     orders,
		settings:   settingsSvc,
		carts:      carts,
		flows:      flows,
	}
}

// Router assembles the storefront and admin route trees.
func Router(h *Handler, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.RateLimit())

	api := r.Group("/api")
	{
		api.GET("/categories", h.GetCategories)
		api.GET("/products", h.GetProducts)
		api.GET("/products/featured", h.GetFeaturedProduct)
		api.GET("/settings", h.GetSettings)

		api.GET("/cart", h.GetCart)
		api.POST("/cart", h.AddToCart)
		api.PATCH("/cart/:productID", h.UpdateCartQuantity)
		api.DELETE("/cart/:productID", h.RemoveFromCart)
		api.DELETE("/cart", h.ClearCart)

		api.PUT("/checkout/form", h.SetCheckoutForm)
		api.POST("/checkout/location", h.FillCheckoutLocation)
		api.POST("/checkout", h.SubmitCheckout)
		api.GET("/checkout/status", h.GetCheckoutStatus)
		api.POST("/checkout/close", h.CloseCheckout)
	}

	admin := r.Group("/api/admin", middleware.Auth(jwtSecret), middleware.RequireAdmin())
	{
		admin.GET("/orders", h.AdminListOrders)
		admin.GET("/orders/:id", h.AdminGetOrder)
		admin.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)

		admin.POST("/products", h.AdminCreateProduct)
		admin.PATCH("/products/:id", h.AdminUpdateProduct)
		admin.DELETE("/products/:id", h.AdminDeleteProduct)

		admin.POST("/categories", h.AdminCreateCategory)
		admin.PATCH("/categories/:id", h.AdminUpdateCategory)
		admin.DELETE("/categories/:id", h.AdminDeleteCategory)

		admin.PATCH("/settings", h.AdminUpdateSettings)
	}

	return r
}

// session resolves the caller's cart session, issuing a new token when the
// request carries none, and echoes the token on the response.
func (h *Handler) session(c *gin.Context) (string, *cart.Cart) {
	id := c.GetHeader(SessionHeader)
	var userCart *cart.Cart

	if id == "" {
		id, userCart = h.carts.NewSession()
	} else {
		userCart = h.carts.Get(id)
	}

	c.Header(SessionHeader, id)
	return id, userCart
}

// flow returns the checkout flow bound to the caller's session.
func (h *Handler) flow(c *gin.Context) *checkout.Flow {
	id, userCart := h.session(c)
	return h.flows.Get(id, userCart)
}
