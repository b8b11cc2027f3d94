package router

import (
	"net/http"

	"feastly/internal/auth"
	"feastly/internal/handler"
	"feastly/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Discovery endpoints are public; everything that mutates state or touches
// account data requires a bearer token.
func New(
	restaurantHandler *handler.RestaurantHandler,
	userHandler *handler.UserHandler,
	purchaseHandler *handler.PurchaseHandler,
	issuer *auth.TokenIssuer,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	authed := middleware.JWTAuth(issuer, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public discovery endpoints
	mux.HandleFunc("GET /api/restaurants", restaurantHandler.List)
	mux.HandleFunc("GET /api/restaurants/search", restaurantHandler.Search)
	mux.HandleFunc("GET /api/restaurants/{id}", restaurantHandler.GetByID)

	// Public account endpoints
	mux.HandleFunc("POST /api/users/register", userHandler.Register)
	mux.HandleFunc("POST /api/users/login", userHandler.Login)
	mux.HandleFunc("POST /api/users/password", userHandler.ChangePassword)
	mux.HandleFunc("DELETE /api/users", userHandler.DeleteAccount)

	// Restaurant management, owner only past the service layer
	mux.Handle("POST /api/restaurants", authed(http.HandlerFunc(restaurantHandler.Create)))
	mux.Handle("PUT /api/restaurants/{id}", authed(http.HandlerFunc(restaurantHandler.Update)))
	mux.Handle("DELETE /api/restaurants/{id}", authed(http.HandlerFunc(restaurantHandler.Delete)))
	mux.Handle("POST /api/restaurants/{id}/menus", authed(http.HandlerFunc(restaurantHandler.AddDish)))
	mux.Handle("PUT /api/restaurants/{id}/menus/{menuID}", authed(http.HandlerFunc(restaurantHandler.UpdateDish)))
	mux.Handle("DELETE /api/restaurants/{id}/menus/{menuID}", authed(http.HandlerFunc(restaurantHandler.DeleteDish)))

	// Account and purchase endpoints for the authenticated caller
	mux.Handle("GET /api/users/me", authed(http.HandlerFunc(userHandler.Me)))
	mux.Handle("POST /api/users/topup", authed(http.HandlerFunc(userHandler.TopUp)))
	mux.Handle("POST /api/purchases", authed(http.HandlerFunc(purchaseHandler.Create)))
	mux.Handle("GET /api/purchases", authed(http.HandlerFunc(purchaseHandler.History)))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
