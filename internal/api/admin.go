package api

import (
	"net/http"

	"bookstore-service/internal/models"
	"bookstore-service/internal/service"

	"github.com/gin-gonic/gin"
)

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url"`
	Author      string `json:"author"`
	CategoryID  int64  `json:"category_id"`
}

// adminListProducts serves the full catalog
func (h *Handler) adminListProducts(c *gin.Context) {
	products, err := h.catalog.ListAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// adminAddProduct creates a product
func (h *Handler) adminAddProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Author:      req.Author,
		CategoryID:  req.CategoryID,
	}
	if err := h.catalog.CreateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product added", "product": product})
}

// adminEditProduct updates a product
func (h *Handler) adminEditProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Author:      req.Author,
		CategoryID:  req.CategoryID,
	}
	if err := h.catalog.UpdateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated", "product": product})
}

// adminDeleteProduct removes a product
func (h *Handler) adminDeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// adminListCategories serves all categories
func (h *Handler) adminListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// adminListUsers serves all accounts except the seed admin
func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context(), h.adminUsername)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type adminUserRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Address         string `json:"address"`
	IsAdmin         bool   `json:"is_admin"`
	Balance         int64  `json:"balance"`
}

// adminAddUser creates an account from the back-office
func (h *Handler) adminAddUser(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accounts.AdminCreateUser(c.Request.Context(),
		req.Username, req.Email, req.Password, req.ConfirmPassword,
		req.Address, req.IsAdmin, req.Balance)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user added", "user": user})
}

// adminEditUser updates an account
func (h *Handler) adminEditUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accounts.AdminUpdateUser(c.Request.Context(), id, service.AdminUpdateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Address:  req.Address,
		IsAdmin:  req.IsAdmin,
		Balance:  req.Balance,
		Password: req.Password,
		Confirm:  req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated", "user": user})
}

// adminDeleteUser removes an account with its carts and feedback
func (h *Handler) adminDeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.accounts.AdminDeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// adminListOrders serves all orders
func (h *Handler) adminListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// adminApproveOrder approves a pending order
func (h *Handler) adminApproveOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := h.orders.ApproveOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order approved", "order": order})
}

// adminRejectOrder rejects a pending order and refunds its owner
func (h *Handler) adminRejectOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := h.orders.RejectOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order rejected and refunded", "order": order})
}

// adminListFeedback serves all feedback entries
func (h *Handler) adminListFeedback(c *gin.Context) {
	feedbacks, err := h.feedback.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
}

type respondRequest struct {
	Response string `json:"response"`
}

// adminRespondFeedback stores the admin response on a feedback entry
func (h *Handler) adminRespondFeedback(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.feedback.Respond(c.Request.Context(), id, req.Response); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "response saved"})
}

// adminDeleteFeedback removes any feedback entry
func (h *Handler) adminDeleteFeedback(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.feedback.AdminDelete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feedback deleted"})
}
