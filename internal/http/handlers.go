package httpapi

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"heladeria/internal/aigen"
	"heladeria/internal/domain"
	"heladeria/internal/metrics"
	"heladeria/internal/repository"
	"heladeria/internal/service"
	"heladeria/internal/storage"
)

type Server struct {
	engine   *gin.Engine
	products *service.ProductService
	orders   *service.OrderService
	ai       *aigen.Generator
	images   storage.ObjectStore
}

func NewServer(products *service.ProductService, orders *service.OrderService, ai *aigen.Generator, images storage.ObjectStore) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), corsMiddleware(), metrics.Middleware())
	s := &Server{engine: r, products: products, orders: orders, ai: ai, images: images}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	products := s.engine.Group("/products")
	products.GET("", s.listProducts)
	products.POST("", s.createProduct)
	products.GET(":id", s.getProduct)
	products.PUT(":id", s.updateProduct)
	products.DELETE(":id", s.deleteProduct)

	orders := s.engine.Group("/orders")
	orders.GET("", s.listOrders)
	orders.POST("", s.createOrder)
	orders.PATCH(":id/status", s.updateOrderStatus)

	s.engine.POST("/ai/generate", s.generateContent)
	s.engine.POST("/upload-image", s.uploadImage)
}

// corsMiddleware выставляет разрешающие CORS-заголовки на каждый ответ
// и закрывает preflight-запросы
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token")
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{})
			return
		}
		c.Next()
	}
}

// Product handlers

type createProductReq struct {
	Name             string          `json:"name"`
	Category         domain.Category `json:"category"`
	Price            float64         `json:"price"`
	Description      string          `json:"description"`
	Image            string          `json:"image"`
	ImageURL         string          `json:"imageUrl"`
	IsOnPromotion    bool            `json:"isOnPromotion"`
	PromotionalPrice *float64        `json:"promotionalPrice"`
}

// @Summary List active products
// @Tags products
// @Produce json
// @Param category query string false "Category filter (helado|postre)"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.products.List(c, domain.Category(c.Query("category")))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body createProductReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Create(c, service.ProductInput{
		Name:             req.Name,
		Category:         req.Category,
		Price:            req.Price,
		Description:      req.Description,
		Image:            req.Image,
		ImageURL:         req.ImageURL,
		IsOnPromotion:    req.IsOnPromotion,
		PromotionalPrice: req.PromotionalPrice,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type updateProductReq struct {
	Name             *string          `json:"name"`
	Category         *domain.Category `json:"category"`
	Price            *float64         `json:"price"`
	Description      *string          `json:"description"`
	Image            *string          `json:"image"`
	ImageURL         *string          `json:"imageUrl"`
	IsOnPromotion    *bool            `json:"isOnPromotion"`
	PromotionalPrice *float64         `json:"promotionalPrice"`
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body updateProductReq true "Partial update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Update(c, c.Param("id"), service.ProductUpdate{
		Name:             req.Name,
		Category:         req.Category,
		Price:            req.Price,
		Description:      req.Description,
		Image:            req.Image,
		ImageURL:         req.ImageURL,
		IsOnPromotion:    req.IsOnPromotion,
		PromotionalPrice: req.PromotionalPrice,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Soft-delete product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// Order handlers

type orderItemReq struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
	Category domain.Category `json:"category"`
}

type createOrderReq struct {
	CustomerName    string                 `json:"customerName"`
	CustomerEmail   string                 `json:"customerEmail"`
	CustomerPhone   string                 `json:"customerPhone"`
	DeliveryAddress domain.DeliveryAddress `json:"deliveryAddress"`
	Items           []orderItemReq         `json:"items"`
}

// @Summary List orders, newest first
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.List(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.OrderItemInput{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
			Category: it.Category,
		})
	}
	o, err := s.orders.Create(c, service.OrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		} else {
			metrics.OrdersTotal.WithLabelValues("failed").Inc()
		}
		s.respondError(c, err)
		return
	}
	metrics.OrdersTotal.WithLabelValues("created").Inc()
	metrics.OrderAmount.Observe(o.TotalAmount)
	c.JSON(http.StatusCreated, o)
}

type updateOrderStatusReq struct {
	Status domain.OrderStatus `json:"status"`
}

// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body updateOrderStatusReq true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [patch]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.UpdateStatus(c, c.Param("id"), req.Status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// AI handlers

type generateReq struct {
	ProductName string          `json:"productName"`
	Category    domain.Category `json:"category"`
}

// @Summary Generate product description and image
// @Tags ai
// @Accept json
// @Produce json
// @Param input body generateReq true "Product name and category"
// @Success 200 {object} aigen.Result
// @Failure 400 {object} map[string]string
// @Router /ai/generate [post]
func (s *Server) generateContent(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ProductName == "" || req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: productName, category"})
		return
	}
	res, err := s.ai.Generate(c, req.ProductName, req.Category)
	if err != nil {
		log.WithError(err).WithField("product", req.ProductName).Error("content generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content"})
		return
	}
	c.JSON(http.StatusOK, res)
}

type uploadImageReq struct {
	Image       string `json:"image"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// @Summary Upload a base64 image
// @Tags ai
// @Accept json
// @Produce json
// @Param input body uploadImageReq true "Base64 payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /upload-image [post]
func (s *Server) uploadImage(c *gin.Context) {
	var req uploadImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: image (base64)"})
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 image"})
		return
	}

	ext := "jpg"
	if idx := strings.LastIndex(req.FileName, "."); idx >= 0 && idx < len(req.FileName)-1 {
		ext = req.FileName[idx+1:]
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := "products/" + uuid.NewString() + "." + ext
	url, err := s.images.Put(c, key, data, contentType)
	if err != nil {
		log.WithError(err).WithField("key", key).Error("image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// respondError переводит ошибку сервисного слоя в HTTP-ответ.
// Детали ошибок зависимостей остаются в логах, клиент видит общий текст.
func (s *Server) respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
