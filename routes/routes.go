package routes

import (
	"net/http"

	"shanenterprises/handlers"
	"shanenterprises/middlewares"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func open(h http.HandlerFunc) http.Handler {
	return withCORS(http.HandlerFunc(handlers.RecoverWrapper(h)))
}

func protected(h http.HandlerFunc) http.Handler {
	return withCORS(middlewares.RequireAuth(http.HandlerFunc(handlers.RecoverWrapper(h))))
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	destinationHandler *handlers.DestinationHandler,
	dealerHandler *handlers.DealerHandler,
	rateRangeHandler *handlers.RateRangeHandler,
	entryHandler *handlers.EntryHandler,
	billHandler *handlers.ServiceBillHandler,
	profileHandler *handlers.ProfileHandler,
	pdfHandler *handlers.PDFHandler,
) {
	// Auth routes
	http.Handle("/signup", open(userHandler.Signup))
	http.Handle("/login", open(userHandler.Login))
	http.Handle("/refresh", open(userHandler.Refresh))

	// Destination routes
	http.Handle("/destinations", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			destinationHandler.SaveDestination(w, r)
		case http.MethodGet:
			destinationHandler.GetDestinations(w, r)
		case http.MethodDelete:
			destinationHandler.DeleteDestinations(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Place routes
	http.Handle("/places", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			destinationHandler.SavePlace(w, r)
		case http.MethodGet:
			destinationHandler.GetPlaces(w, r)
		case http.MethodDelete:
			destinationHandler.DeletePlaces(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Dealer routes
	http.Handle("/dealers", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			dealerHandler.SaveDealer(w, r)
		case http.MethodGet:
			dealerHandler.GetDealers(w, r)
		case http.MethodDelete:
			dealerHandler.DeleteDealers(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Rate range routes
	http.Handle("/rate-ranges", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			rateRangeHandler.SaveRateRange(w, r)
		case http.MethodGet:
			rateRangeHandler.GetRateRanges(w, r)
		case http.MethodDelete:
			rateRangeHandler.DeleteRateRanges(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Entry routes
	http.Handle("/entries", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			entryHandler.SaveEntry(w, r)
		case http.MethodGet:
			entryHandler.GetEntries(w, r)
		case http.MethodDelete:
			entryHandler.DeleteEntries(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	http.Handle("/entries/import", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		entryHandler.ImportEntries(w, r)
	}))

	// Get entry by ID
	http.Handle("/entries/", protected(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/entries/"):]
		if id != "" {
			entryHandler.GetEntryByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	// Service bill routes
	http.Handle("/service-bills", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			billHandler.SyncBill(w, r)
		case http.MethodGet:
			billHandler.GetBills(w, r)
		case http.MethodDelete:
			billHandler.DeleteBill(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	http.Handle("/service-bills/preview-fol", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		billHandler.PreviewFOL(w, r)
	}))
	http.Handle("/service-bills/pdf", protected(pdfHandler.ServiceBillPDF))

	// Get service bill by ID
	http.Handle("/service-bills/", protected(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/service-bills/"):]
		if id != "" {
			billHandler.GetBillByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	// Company profile routes
	http.Handle("/company-profile", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			profileHandler.SaveProfile(w, r)
		case http.MethodGet:
			profileHandler.GetProfile(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}
