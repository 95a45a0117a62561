package routers

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/banking/transaction-service/internal/di"
	http2 "github.com/banking/transaction-service/internal/infrastructure/api/http"
)

func NewRouter(container *di.Container) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Set up v1 routes with a path prefix
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			th := container.TransactionHandler
			r.Post("/", th.CreateTransaction)
			r.Get("/", th.GetAllTransactions)
			r.Get("/paged", th.GetTransactionsPaginated)
			r.Get(fmt.Sprintf("/{%s}", http2.TransactionIDParam), th.GetTransactionByID)
			r.Put(fmt.Sprintf("/{%s}", http2.TransactionIDParam), th.UpdateTransaction)
			r.Delete(fmt.Sprintf("/{%s}", http2.TransactionIDParam), th.DeleteTransaction)
		})
	})

	return router
}
