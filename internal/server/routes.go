package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "petlove/docs"
	"petlove/internal/handlers"
	"petlove/internal/middlewares"
	"petlove/internal/utils"
)

// RegisterRoutes builds the router. Request ids, access logs, recovery and
// CORS wrap the router so they also cover preflights and unmatched paths;
// metrics and rate limiting run per matched route.
func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, "Not Found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Use(middlewares.Instrument)
	r.Use(s.limiter.Middleware)
	r.Use(middlewares.Recover)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.RootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", ch.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.Handle("/docs", http.RedirectHandler("/docs/index.html", http.StatusMovedPermanently)).Methods(http.MethodGet)
	r.PathPrefix("/docs/").Handler(httpSwagger.Handler(httpSwagger.URL("/docs/doc.json"))).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	s.registerUserRoutes(api)
	s.registerPetRoutes(api)
	s.registerOrderRoutes(api)
	s.registerAdoptionRoutes(api)
	s.registerAppointmentRoutes(api)
	s.registerVisitRoutes(api)
	s.registerStatsRoutes(api)

	return s.wrap(r)
}

// wrap applies the outer chain. Recover sits inside Logger so a recovered
// panic is still logged as a 500.
func (s *Server) wrap(h http.Handler) http.Handler {
	h = middlewares.Cors(s.cfg.Origins())(h)
	h = middlewares.Recover(h)
	h = middlewares.Logger(h)
	h = middlewares.RequestID(h)
	return h
}

// collection registers a handler on both "/prefix" and "/prefix/".
func collection(r *mux.Router, prefix string, h http.HandlerFunc, methods ...string) {
	r.HandleFunc(prefix, h).Methods(methods...)
	r.HandleFunc(prefix+"/", h).Methods(methods...)
}

func (s *Server) registerUserRoutes(r *mux.Router) {
	uh := handlers.NewUserHandler(s.userService)
	ph := handlers.NewPasswordHandler(s.passwordResetService)
	auth := middlewares.Authenticate(s.cfg.JWTSecret)

	r.HandleFunc("/users/register", uh.Register).Methods(http.MethodPost)
	r.HandleFunc("/users/login", uh.Login).Methods(http.MethodPost)
	r.HandleFunc("/users/forgot-password", ph.ForgotPassword).Methods(http.MethodPost)
	r.HandleFunc("/users/reset-password", ph.ResetPassword).Methods(http.MethodPost)
	r.Handle("/users/me", auth(http.HandlerFunc(uh.GetMyProfile))).Methods(http.MethodGet)
	r.Handle("/users/me", auth(http.HandlerFunc(uh.UpdateMyProfile))).Methods(http.MethodPut, http.MethodPatch)
	r.Handle("/users/me", auth(http.HandlerFunc(uh.DeleteMyProfile))).Methods(http.MethodDelete)

	collection(r, "/users", uh.ListUsers, http.MethodGet)
	collection(r, "/users", uh.Register, http.MethodPost)
	r.HandleFunc("/users/{id}", uh.GetUser).Methods(http.MethodGet)
	owner := func(h http.HandlerFunc) http.Handler {
		return auth(middlewares.SelfOrAdmin("id")(h))
	}
	r.Handle("/users/{id}", owner(uh.UpdateUser)).Methods(http.MethodPut, http.MethodPatch)
	r.Handle("/users/{id}", owner(uh.DeleteUser)).Methods(http.MethodDelete)
}

func (s *Server) registerPetRoutes(r *mux.Router) {
	ph := handlers.NewPetHandler(s.petService)

	collection(r, "/pets", ph.ListPets, http.MethodGet)
	collection(r, "/pets", ph.CreatePet, http.MethodPost)
	r.HandleFunc("/pets/{id}", ph.GetPet).Methods(http.MethodGet)
	r.HandleFunc("/pets/{id}", ph.UpdatePet).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/pets/{id}", ph.DeletePet).Methods(http.MethodDelete)
}

func (s *Server) registerOrderRoutes(r *mux.Router) {
	oh := handlers.NewOrderHandler(s.orderService)

	collection(r, "/orders", oh.ListOrders, http.MethodGet)
	collection(r, "/orders", oh.CreateOrder, http.MethodPost)
	r.HandleFunc("/orders/{id}/status", oh.UpdateOrderStatus).Methods(http.MethodPatch)
	r.HandleFunc("/orders/{id}", oh.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", oh.UpdateOrder).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/orders/{id}", oh.DeleteOrder).Methods(http.MethodDelete)
}

func (s *Server) registerAdoptionRoutes(r *mux.Router) {
	ah := handlers.NewAdoptionHandler(s.adoptionService)

	collection(r, "/adoptions", ah.ListAdoptions, http.MethodGet)
	collection(r, "/adoptions", ah.CreateAdoption, http.MethodPost)
	r.HandleFunc("/adoptions/{id}/status", ah.UpdateAdoptionStatus).Methods(http.MethodPatch)
	r.HandleFunc("/adoptions/{id}", ah.GetAdoption).Methods(http.MethodGet)
	r.HandleFunc("/adoptions/{id}", ah.UpdateAdoption).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/adoptions/{id}", ah.DeleteAdoption).Methods(http.MethodDelete)
}

func (s *Server) registerAppointmentRoutes(r *mux.Router) {
	aph := handlers.NewAppointmentHandler(s.appointmentService)

	collection(r, "/appointments", aph.ListAppointments, http.MethodGet)
	collection(r, "/appointments", aph.CreateAppointment, http.MethodPost)
	r.HandleFunc("/appointments/{id}/status", aph.UpdateAppointmentStatus).Methods(http.MethodPatch)
	r.HandleFunc("/appointments/{id}", aph.GetAppointment).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{id}", aph.UpdateAppointment).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/appointments/{id}", aph.DeleteAppointment).Methods(http.MethodDelete)
}

func (s *Server) registerVisitRoutes(r *mux.Router) {
	vh := handlers.NewVisitHandler(s.visitService)

	collection(r, "/visits", vh.ListVisits, http.MethodGet)
	collection(r, "/visits", vh.CreateVisit, http.MethodPost)
	r.HandleFunc("/visits/{id}", vh.GetVisit).Methods(http.MethodGet)
	r.HandleFunc("/visits/{id}", vh.UpdateVisit).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/visits/{id}", vh.DeleteVisit).Methods(http.MethodDelete)
}

func (s *Server) registerStatsRoutes(r *mux.Router) {
	sh := handlers.NewStatsHandler(s.statsService)
	auth := middlewares.Authenticate(s.cfg.JWTSecret)

	r.Handle("/stats", auth(http.HandlerFunc(sh.GetSummary))).Methods(http.MethodGet)
}
