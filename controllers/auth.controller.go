package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"storefront-backend/auth"
	"storefront-backend/guard"
	"storefront-backend/models"
)

// Login menangani proses login admin.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	var req models.LoginRequest
	if !bindValid(c, &req) {
		return
	}

	authStore, persister := ctrl.authStore(c)
	user, err := authStore.Login(ctx, req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		switch auth.Code(err) {
		case auth.CodeTooManyRequests:
			status = http.StatusTooManyRequests
		case "":
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": authStore.Err()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user, "token": persister.Token()})
}

// Logout menangani proses logout dan menghapus cookie sesi.
func (ctrl *Controller) Logout(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	authStore, _ := ctrl.authStore(c)
	authStore.Rehydrate()
	if err := authStore.Logout(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": authStore.Err()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Session mengembalikan snapshot auth yang tersimpan.
func (ctrl *Controller) Session(c *gin.Context) {
	authStore, _ := ctrl.authStore(c)
	authStore.Rehydrate()

	user, ok := authStore.User()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil, "is_authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "is_authenticated": authStore.IsAuthenticated()})
}

// Register menangani registrasi akun baru.
func (ctrl *Controller) Register(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	var req models.RegisterRequest
	if !bindValid(c, &req) {
		return
	}

	account, err := ctrl.Auth.Register(ctx, req)
	if err != nil {
		message := "Failed to create account"
		if errors.Is(err, models.ErrDuplicateEmail) {
			message = "Email already exists"
		}
		respondError(c, err, message, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "account": account})
}

// GetAccounts menangani pengambilan semua akun.
func (ctrl *Controller) GetAccounts(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	accountList, err := ctrl.Accounts.List(ctx)
	if err != nil {
		respondError(c, err, "Failed to fetch accounts", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accountList})
}

// DeleteAccount menangani penghapusan akun. Akun sendiri tidak bisa dihapus.
func (ctrl *Controller) DeleteAccount(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	id, ok := objectID(c, "Invalid account ID")
	if !ok {
		return
	}
	if user, ok := guard.CurrentUser(c); ok && user.ID == id.Hex() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	if err := ctrl.Accounts.Delete(ctx, id); err != nil {
		respondError(c, err, "Failed to delete account", "Account not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
