// Package server wires the ledgers, services and handlers into the root
// http.Handler.
package server

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/handlers"
	"github.com/fernandosattini/iphoneapp/internal/httpx"
	"github.com/fernandosattini/iphoneapp/internal/ledger"
	"github.com/fernandosattini/iphoneapp/internal/logger"
	"github.com/fernandosattini/iphoneapp/internal/services"
)

// New constructs the root handler with all routes and middlewares applied.
func New(conn *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	cash := ledger.NewCashLedger(conn)
	accounts := ledger.NewAccountLedger(conn)
	inventorySvc := services.NewInventoryService(conn)
	clientSvc := services.NewClientService(conn)
	providerSvc := services.NewProviderService(conn)
	saleSvc := services.NewSaleService(conn, cash, accounts, inventorySvc)
	orderSvc := services.NewOrderService(conn)

	// The sales service owns sale status; the account ledger tells it when a
	// client's debt is fully retired.
	accounts.SetSaleSettled(saleSvc.MarkCredited)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := conn.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ch := handlers.NewClientHandler(clientSvc)
	mux.Handle("/clients", listCreate(ch.List, ch.Create))
	mux.HandleFunc("/clients/delete", postOnly(ch.Delete))

	ph := handlers.NewProviderHandler(providerSvc)
	mux.Handle("/providers", listCreate(ph.List, ph.Create))
	mux.HandleFunc("/providers/delete", postOnly(ph.Delete))

	ih := handlers.NewInventoryHandler(inventorySvc)
	mux.Handle("/inventory", listCreate(ih.List, ih.Create))
	mux.HandleFunc("/inventory/update", postOnly(ih.Update))
	mux.HandleFunc("/inventory/delete", postOnly(ih.Delete))
	mux.HandleFunc("/inventory/sold", postOnly(ih.MarkSold))

	sh := handlers.NewSaleHandler(saleSvc)
	mux.Handle("/sales", listCreate(sh.List, sh.Create))
	mux.HandleFunc("/sales/status", postOnly(sh.UpdateStatus))
	mux.HandleFunc("/sales/delete", postOnly(sh.Delete))

	ah := handlers.NewAccountHandler(accounts)
	mux.HandleFunc("/accounts/clients", getOnly(ah.ClientAccounts))
	mux.HandleFunc("/accounts/providers", getOnly(ah.ProviderAccounts))
	mux.HandleFunc("/accounts/payments", postOnly(ah.RecordPayment))
	mux.HandleFunc("/accounts/provider-payments", postOnly(ah.RecordProviderPayment))
	mux.HandleFunc("/accounts/purchases", postOnly(ah.RecordPurchase))
	mux.HandleFunc("/accounts/debts", postOnly(ah.RecordDebt))
	mux.HandleFunc("/accounts/transactions/delete", postOnly(ah.DeleteTransaction))

	kh := handlers.NewCashHandler(cash)
	mux.Handle("/cash", listCreate(kh.List, kh.Create))
	mux.HandleFunc("/cash/delete", postOnly(kh.Delete))
	mux.HandleFunc("/cash/balance", getOnly(kh.Balance))
	mux.HandleFunc("/cash/operational-expenses", getOnly(kh.OperationalExpenses))

	oh := handlers.NewOrderHandler(orderSvc)
	mux.Handle("/orders", listCreate(oh.List, oh.Create))
	mux.HandleFunc("/orders/receive", postOnly(oh.Receive))
	mux.HandleFunc("/orders/delete", postOnly(oh.Delete))

	return withRecover(withLogging(mux))
}

func listCreate(list, create http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
}

func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Any("panic", rec).Str("path", r.URL.Path).Msg("panic recovered")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
