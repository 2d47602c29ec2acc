package main

import (
	"net/http"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/handler"
	"github.com/Adebayoisreal122/Banking-Backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	auth        *handler.AuthHandler
	account     *handler.AccountHandler
	transaction *handler.TransactionHandler
	loan        *handler.LoanHandler
	bill        *handler.BillHandler
}

// rateLimits holds the optional limiter middleware; nil entries are skipped.
type rateLimits struct {
	general gin.HandlerFunc
	auth    gin.HandlerFunc
}

func registerRoutes(h handlers, auth gin.HandlerFunc, limits rateLimits) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
	})

	api := router.Group("/api")
	if limits.general != nil {
		api.Use(limits.general)
	}

	authLimited := []gin.HandlerFunc{}
	if limits.auth != nil {
		authLimited = append(authLimited, limits.auth)
	}

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", append(authLimited, h.auth.Signup)...)
		authRoutes.POST("/signin", append(authLimited, h.auth.Signin)...)
		authRoutes.POST("/refresh", h.auth.RefreshToken)
		authRoutes.GET("/profile", auth, h.auth.GetProfile)
		authRoutes.PATCH("/profile", auth, h.auth.UpdateProfile)
		authRoutes.PATCH("/change-password", auth, h.auth.ChangePassword)
	}

	accounts := api.Group("/accounts", auth)
	{
		accounts.GET("/dashboard", h.account.Dashboard)
		accounts.POST("", h.account.CreateAccount)
		accounts.GET("", h.account.ListAccounts)
		accounts.GET("/:id", h.account.GetAccount)
		accounts.PATCH("/:id", h.account.UpdateAccount)
		accounts.DELETE("/:id", h.account.CloseAccount)
	}

	transactions := api.Group("/transactions", auth)
	{
		transactions.POST("/deposit", h.transaction.Deposit)
		transactions.POST("/withdraw", h.transaction.Withdraw)
		transactions.POST("/transfer", h.transaction.Transfer)
		transactions.GET("", h.transaction.ListTransactions)
	}

	loans := api.Group("/loans", auth)
	{
		loans.POST("/apply", h.loan.ApplyLoan)
		loans.POST("/repay", h.loan.RepayLoan)
		loans.GET("", h.loan.ListLoans)
		loans.GET("/:id", h.loan.GetLoan)
	}

	bills := api.Group("/bills", auth)
	{
		bills.POST("/pay", h.bill.PayBill)
		bills.GET("", h.bill.ListBillPayments)
	}

	router.NoRoute(func(c *gin.Context) {
		middleware.RespondWithError(c, http.StatusNotFound, "Route not found")
	})

	return router
}
