package main

import (
	"net/http"

	"bank-ledger.backend/internal/interfaces/http/handlers"
	"bank-ledger.backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	meHandler          *handlers.MeHandler
	customerHandler    *handlers.CustomerHandler
	accountHandler     *handlers.AccountHandler
	transactionHandler *handlers.TransactionHandler
	loanHandler        *handlers.LoanHandler
	authMiddleware     gin.HandlerFunc
	idempotency        gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerOpsRoutes(r *gin.Engine, health *handlers.HealthHandler) {
	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	v1.Use(d.authMiddleware)
	{
		v1.GET("/me", d.meHandler.Me)

		customers := v1.Group("/customers")
		{
			customers.POST("", d.customerHandler.CreateCustomer)
			customers.GET("", d.customerHandler.ListCustomers)
			customers.GET("/:id", d.customerHandler.GetCustomer)
			customers.PATCH("/:id", d.customerHandler.UpdateCustomer)
		}

		accounts := v1.Group("/accounts")
		{
			accounts.POST("", d.accountHandler.CreateAccount)
			accounts.GET("", d.accountHandler.ListAccounts)
			accounts.GET("/:id", d.accountHandler.GetAccount)
			accounts.PATCH("/:id/status", d.accountHandler.UpdateAccountStatus)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.POST("", d.idempotency, d.transactionHandler.CreateTransaction)
			transactions.GET("", d.transactionHandler.ListTransactions)
		}

		loans := v1.Group("/loans")
		{
			loans.POST("", d.loanHandler.CreateLoan)
			loans.GET("", d.loanHandler.ListLoans)
			loans.GET("/quote", d.loanHandler.QuoteLoan)
			loans.GET("/:id", d.loanHandler.GetLoan)
			loans.PATCH("/:id/status", d.loanHandler.UpdateLoanStatus)
			loans.GET("/:id/payments", d.loanHandler.ListLoanPayments)
			loans.POST("/:id/payments", d.idempotency, d.loanHandler.CreateLoanPayment)
		}
	}
}

