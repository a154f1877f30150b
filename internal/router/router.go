package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"pet-care-api/internal/adapters/storage/memory"
	"pet-care-api/internal/adapters/storage/postgres"
	"pet-care-api/internal/domain/admins"
	"pet-care-api/internal/domain/appointments"
	"pet-care-api/internal/domain/auth"
	"pet-care-api/internal/domain/pets"
	"pet-care-api/internal/domain/reports"
	"pet-care-api/internal/domain/users"
	"pet-care-api/internal/domain/vaccinations"
	"pet-care-api/internal/middleware"
	"pet-care-api/internal/platform/web"
	authport "pet-care-api/internal/ports/auth"
)

// Stores agrupa los repositorios de todos los dominios. Memoria o Postgres,
// el router no distingue.
type Stores struct {
	Users        users.Repository
	Admins       admins.Repository
	Pets         pets.Repository
	Appointments appointments.Repository
	Vaccinations vaccinations.Repository
	Reports      reports.Repository
}

// MemoryStores arma el juego completo de repos en memoria.
func MemoryStores() *Stores {
	usersRepo := memory.NewUserRepo()
	petsRepo := memory.NewPetRepo(usersRepo)
	apptsRepo := memory.NewAppointmentRepo(petsRepo, usersRepo)

	return &Stores{
		Users:        usersRepo,
		Admins:       memory.NewAdminRepo(),
		Pets:         petsRepo,
		Appointments: apptsRepo,
		Vaccinations: memory.NewVaccinationRepo(petsRepo, usersRepo),
		Reports:      memory.NewReportsRepo(usersRepo, petsRepo, apptsRepo),
	}
}

// PostgresStores arma el juego completo de repos sobre un pool ya abierto.
func PostgresStores(db *sql.DB) *Stores {
	return &Stores{
		Users:        postgres.NewUserRepo(db),
		Admins:       postgres.NewAdminRepo(db),
		Pets:         postgres.NewPetRepo(db),
		Appointments: postgres.NewAppointmentRepo(db),
		Vaccinations: postgres.NewVaccinationRepo(db),
		Reports:      postgres.NewReportsRepo(db),
	}
}

type Options struct {
	Stores   *Stores
	Issuer   authport.TokenIssuer
	Verifier authport.TokenVerifier

	TokenTTL   time.Duration // <=0 usa el default del servicio
	BcryptCost int

	Log *logrus.Entry
}

// New arma el router completo: middleware global, /health y las rutas
// de cada dominio bajo /api.
func New(opts Options) http.Handler {
	st := opts.Stores

	usersSvc := users.NewService(st.Users)
	petsSvc := pets.NewService(st.Pets)
	apptsSvc := appointments.NewService(st.Appointments)
	vaccsSvc := vaccinations.NewService(st.Vaccinations)
	reportsSvc := reports.NewService(st.Reports, st.Users, st.Pets, st.Appointments)
	authSvc := auth.NewService(auth.Options{
		Users:      st.Users,
		Admins:     st.Admins,
		Tokens:     opts.Issuer,
		TokenTTL:   opts.TokenTTL,
		BcryptCost: opts.BcryptCost,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Log != nil {
		r.Use(middleware.RequestLogger(opts.Log))
	}
	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		web.OK(w, http.StatusOK, web.Envelope{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		auth.RegisterRoutes(api, authSvc)
		users.RegisterRoutes(api, usersSvc)
		pets.RegisterRoutes(api, petsSvc)
		appointments.RegisterRoutes(api, apptsSvc)
		vaccinations.RegisterRoutes(api, vaccsSvc, petsSvc)
		reports.RegisterRoutes(api, reportsSvc)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		web.Fail(w, http.StatusNotFound, "Route not found")
	})

	return r
}
