package api

import (
	"net/http"
	"strconv"

	"bookstore-service/internal/auth"

	"github.com/gin-gonic/gin"
)

// index serves one catalog page with optional category filter
func (h *Handler) index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	categoryID, _ := strconv.ParseInt(c.DefaultQuery("category", "0"), 10, 64)

	catalogPage, err := h.catalog.ListPage(c.Request.Context(), page, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogPage)
}

// productDetail serves one product
func (h *Handler) productDetail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// search matches products by name substring
func (h *Handler) search(c *gin.Context) {
	products, err := h.catalog.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": c.Query("query"), "products": products})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register creates a new account
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "user": user})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login verifies credentials and sets the session cookie. The
// response names the landing page: the back-office for admins, the
// catalog otherwise.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(auth.SessionCookie, result.Token, 0, "/", "", false, true)

	landing := "/index"
	if result.IsAdmin {
		landing = "/admin/products"
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   result.Token,
		"user":    result.User,
		"landing": landing,
	})
}

// logout clears the session
func (h *Handler) logout(c *gin.Context) {
	if token := auth.TokenFromRequest(c); token != "" {
		if err := h.accounts.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// profile serves the authenticated user with their orders
func (h *Handler) profile(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	orders, err := h.orders.ListUserOrders(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "orders": orders})
}

// viewCart serves the user's cart lines with a subtotal
func (h *Handler) viewCart(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	view, err := h.carts.ViewCart(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// addToCart stages one more unit of a product
func (h *Handler) addToCart(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	item, err := h.carts.AddToCart(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "added to cart", "item": item})
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// updateCart sets the quantity of a cart line
func (h *Handler) updateCart(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.carts.UpdateItem(c.Request.Context(), user.ID, id, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

// removeFromCart deletes a cart line
func (h *Handler) removeFromCart(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed from cart"})
}

// buyProduct settles a purchase of one product
func (h *Handler) buyProduct(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, item, err := h.orders.PlaceOrder(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "order placed",
		"order":   order,
		"item":    item,
	})
}

type feedbackRequest struct {
	Content string `json:"content"`
}

// submitFeedback records a feedback entry
func (h *Handler) submitFeedback(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	feedback, err := h.feedback.Submit(c.Request.Context(), user.ID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "feedback submitted", "feedback": feedback})
}

// listFeedback serves the user's own feedback entries
func (h *Handler) listFeedback(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	feedbacks, err := h.feedback.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
}

// deleteFeedback removes one of the user's own feedback entries
func (h *Handler) deleteFeedback(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.feedback.DeleteOwn(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feedback deleted"})
}
