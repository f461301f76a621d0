package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	mem "equimanage-server/internal/adapters/storage/memory"
	pg "equimanage-server/internal/adapters/storage/postgres"
	"equimanage-server/internal/domain/appointments"
	"equimanage-server/internal/domain/compliance"
	"equimanage-server/internal/domain/horses"
	"equimanage-server/internal/domain/notifications"
	"equimanage-server/internal/domain/profiles"
	"equimanage-server/internal/middleware"
	"equimanage-server/internal/platform/logger"
	"equimanage-server/internal/ports/auth"
	"equimanage-server/internal/ports/email"
	"equimanage-server/internal/ports/registry"

	_ "equimanage-server/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Directory    auth.Directory    // resolución de correos para el cron; puede ser nil
	Sender       email.Sender      // puede ser nil (los envíos se loguean y se saltan)
	Fetcher      registry.Fetcher  // prefill desde registros externos; puede ser nil

	// Secreto compartido del scheduler. Vacío = cron cerrado.
	CronSecret string

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		horseRepo       horses.Repository
		profileRepo     profiles.Repository
		notifRepo       notifications.Repository
		appointmentRepo appointments.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("db open failed, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		horseRepo = pg.NewHorsesRepo(db)
		profileRepo = pg.NewProfilesRepo(db)
		notifRepo = pg.NewNotificationsRepo(db)
		appointmentRepo = pg.NewAppointmentsRepo(db)
	} else {
		horseRepo = mem.NewHorseRepo()
		profileRepo = mem.NewProfileRepo()
		notifRepo = mem.NewNotificationRepo()
		appointmentRepo = mem.NewAppointmentRepo()
	}

	// Services por módulo
	horsesSvc := horses.NewService(horseRepo)
	profilesSvc := profiles.NewService(profileRepo)
	notifSvc := notifications.NewService(notifRepo, horsesSvc, profilesSvc, opts.Directory, opts.Sender, log)
	appointmentsSvc := appointments.NewService(appointmentRepo)

	// Rutas por módulo
	horses.RegisterRoutes(r, horsesSvc, opts.Fetcher)
	compliance.RegisterRoutes(r, horsesSvc, time.Now)
	profiles.RegisterRoutes(r, profilesSvc)
	appointments.RegisterRoutes(r, appointmentsSvc)
	notifications.RegisterRoutes(r, notifSvc, middleware.CronSecret(opts.CronSecret))

	return r
}
