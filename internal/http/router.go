package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Al-Ghoul/KarasChan/internal/cart"
	"github.com/Al-Ghoul/KarasChan/internal/catalog"
	"github.com/Al-Ghoul/KarasChan/internal/checkout"
	"github.com/Al-Ghoul/KarasChan/internal/order"
	"github.com/Al-Ghoul/KarasChan/internal/user"
)

type Deps struct {
	Users     user.Repository
	Carts     cart.Repository
	Products  catalog.Repository
	Orders    order.Repository
	Checkout  *checkout.Service
	JWTSecret string
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", health)

	authH := NewAuthHandler(deps.Users, deps.JWTSecret)
	cartH := NewCartHandler(deps.Carts, deps.Products)
	orderH := NewOrderHandler(deps.Checkout, deps.Orders)
	catalogH := NewCatalogHandler(deps.Products)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authH.Signup)
			r.Post("/login", authH.Login)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogH.ListProducts)
			r.Get("/{productID}", catalogH.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(deps.JWTSecret))

			r.Route("/carts", func(r chi.Router) {
				r.Post("/", cartH.CreateCart)
				r.Get("/", cartH.GetCart)
				r.Get("/items", cartH.ListItems)
				r.Post("/items", cartH.AddItem)
				r.Delete("/items/{itemID}", cartH.DeleteItem)
				r.Patch("/items/{itemID}", cartH.UpdateItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderH.CreateOrder)
				r.Get("/", orderH.ListOrders)
				r.Get("/{orderID}/items", orderH.ListOrderItems)
			})
		})
	})

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "karaschan",
	})
}
