package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	mem "know-your-doses/internal/adapters/storage/memory"
	pg "know-your-doses/internal/adapters/storage/postgres"
	"know-your-doses/internal/domain/doses"
	"know-your-doses/internal/domain/persons"
	"know-your-doses/internal/domain/prescriptions"
	"know-your-doses/internal/platform/clock"
	"know-your-doses/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "know-your-doses/docs"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, intenta DB_DSN y cae a
	// in-memory (modo dev).
	DB *sql.DB

	// Opcional: reloj inyectado (los tests pasan uno fijo). Si es nil se
	// usa el reloj de CLOCK_OFFSET_DAYS.
	Now func() time.Time

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	now := opts.Now
	if now == nil {
		now = clock.NewFromEnv().Now
	}

	var (
		personsRepo persons.Repository
		prescRepo   prescriptions.Repository
		dosesRepo   doses.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", logger.Fields{"err": err.Error()})
			}
		}
	}

	if db != nil {
		personsRepo = pg.NewPersonsRepo(db)
		prescRepo = pg.NewPrescriptionsRepo(db)
		dosesRepo = pg.NewDosesRepo(db)
		log.Info("storage: postgres", nil)
	} else {
		personsRepo = mem.NewPersonsRepo()
		prescRepo = mem.NewPrescriptionsRepo()
		dosesRepo = mem.NewDosesRepo()
		log.Info("storage: memory", nil)
	}

	// Services por módulo, todos con el mismo reloj
	personsSvc := persons.NewService(personsRepo, now)
	prescSvc := prescriptions.NewService(prescRepo, now)
	dosesSvc := doses.NewService(dosesRepo, prescRepo, now)

	// Rutas por módulo
	persons.RegisterRoutes(r, personsSvc)
	prescriptions.RegisterRoutes(r, prescSvc, personsSvc)
	doses.RegisterRoutes(r, dosesSvc, personsSvc, prescSvc)

	return r
}
