package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/profbkmurage/physiocare/internal/api"
	"github.com/profbkmurage/physiocare/internal/appointment"
	"github.com/profbkmurage/physiocare/internal/blog"
	"github.com/profbkmurage/physiocare/internal/clinic"
	"github.com/profbkmurage/physiocare/internal/config"
	"github.com/profbkmurage/physiocare/internal/db"
	"github.com/profbkmurage/physiocare/internal/identity"
	"github.com/profbkmurage/physiocare/internal/mail"
	redisclient "github.com/profbkmurage/physiocare/internal/redis"
	"github.com/profbkmurage/physiocare/internal/testimonial"
)

const version = "0.1.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.HTTPPort)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	bus := redisclient.NewRedisBus(rdb)

	var mailer mail.Sender = mail.Discard{}
	if cfg.MailtrapAPIURL != "" && cfg.MailtrapAPIKey != "" {
		mailer = mail.NewMailtrapSender(cfg.MailtrapAPIURL, cfg.MailtrapAPIKey, cfg.MailFrom)
		log.Println("outbound mail enabled")
	} else {
		log.Println("outbound mail disabled, credential reset mails are dropped")
	}

	identitySvc := identity.NewService(identity.NewPgRepository(pgPool), mailer, cfg)
	appointmentSvc := appointment.NewService(appointment.NewPgRepository(pgPool), bus, cfg)
	testimonialSvc := testimonial.NewService(testimonial.NewPgRepository(pgPool))
	blogSvc := blog.NewService(blog.NewPgRepository(pgPool))
	clinicSvc := clinic.NewService(clinic.NewPgRepository(pgPool))

	authLimiter := api.NewRateLimiter(cfg.AuthRPS, cfg.AuthBurst)
	defer authLimiter.Stop()

	router := api.NewRouter(api.RouterConfig{
		Identity:     identitySvc,
		Appointments: appointmentSvc,
		Testimonials: testimonialSvc,
		Blogs:        blogSvc,
		Clinic:       clinicSvc,
		Bus:          bus,
		PgPool:       pgPool,
		Redis:        rdb,
		JWTSecret:    cfg.JWTSecret,
		AuthLimiter:  authLimiter,
		Env:          cfg.Env,
		Version:      version,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE watch streams hold the connection open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
