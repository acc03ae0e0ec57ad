package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skyreserva/internal/apiclient"
	"skyreserva/internal/auth"
	"skyreserva/internal/cache"
	intconfig "skyreserva/internal/config"
	router "skyreserva/internal/http"
	"skyreserva/internal/http/handlers"
	"skyreserva/internal/repositories"
	"skyreserva/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env.DBDSN)
	if err != nil {
		log.Fatalf("Error al conectar la base de sesiones: %v", err)
	}
	defer intconfig.CloseDB()

	sessionRepo := repositories.SessionRepository{DB: db}
	if err := sessionRepo.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Error al preparar la tabla de sesiones: %v", err)
	}

	var catalogue cache.Cache = cache.NewMemory()
	if env.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		rc, err := cache.DialRedis(ctx, env.RedisAddr)
		cancel()
		if err != nil {
			log.Printf("warning: redis %s no disponible, usando caché en memoria: %v", env.RedisAddr, err)
		} else {
			defer rc.Close()
			catalogue = rc
		}
	}

	client := apiclient.New(env.APIURL, env.APITimeout)
	orders := services.OrderService{API: client}
	cards := services.CardService{API: client}
	hs := &handlers.Handlers{
		DB: db,
		Sessions: services.SessionService{
			API:        client,
			Store:      sessionRepo,
			Issuer:     auth.NewIssuer(env.JWTSecret, env.AccessTTL),
			SessionTTL: env.SessionTTL,
		},
		Flights:  services.FlightService{API: client, Cache: catalogue, TTL: env.SearchCacheTTL},
		Bookings: services.BookingService{API: client, Flights: client, Forms: services.NewFormRegistry()},
		Orders:   orders,
		Cards:    cards,
		Payments: services.PaymentService{API: client, Orders: orders, Cards: cards, Pending: services.NewPendingPayments(env.FormTTL)},
		Docs:     services.DocsService{API: client},
	}

	r := router.NewRouter(env, hs)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.APITimeout + 20*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go janitor(janitorCtx, hs, env.FormTTL)

	go func() {
		log.Printf("Servidor en http://localhost%s (API remota %s)", env.AppAddr, env.APIURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error al iniciar el servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Apagando el servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error al apagar el servidor: %v", err)
	}

	log.Println("Servidor detenido.")
}

// janitor closes idle booking forms and stale payment steps every minute, and
// drops dead sessions every hour.
func janitor(ctx context.Context, hs *handlers.Handlers, formTTL time.Duration) {
	forms := time.NewTicker(time.Minute)
	defer forms.Stop()
	sessions := time.NewTicker(time.Hour)
	defer sessions.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-forms.C:
			if n := hs.Bookings.Forms.Prune(formTTL); n > 0 {
				log.Printf("[JANITOR] closed %d idle booking forms", n)
			}
			if n := hs.Payments.Pending.Prune(); n > 0 {
				log.Printf("[JANITOR] dropped %d stale payments", n)
			}
		case <-sessions.C:
			n, err := hs.Sessions.PruneSessions(ctx)
			if err != nil {
				log.Printf("[JANITOR] session cleanup failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[JANITOR] removed %d sessions", n)
			}
		}
	}
}
