package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"kaamsaathi-backend/handlers"
	"kaamsaathi-backend/pkg/cache"
	"kaamsaathi-backend/pkg/config"
	"kaamsaathi-backend/pkg/database"
	"kaamsaathi-backend/pkg/logger"
	"kaamsaathi-backend/pkg/mailer"
	"kaamsaathi-backend/pkg/notification"
	"kaamsaathi-backend/pkg/ratelimit"
	"kaamsaathi-backend/pkg/seed"
	"kaamsaathi-backend/pkg/translator"
	"kaamsaathi-backend/pkg/websocket"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// @title           KaamSaathi API
// @version         1.0
// @description     Backend API for the KaamSaathi local-services marketplace. Customers book electricians, builders, plumbers, carpenters and whitewashers; partners manage their worker profiles and bookings.

// @contact.name   API Support
// @contact.email  support@kaamsaathi.in

// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token: "Bearer {token}"

// userMeHandler routes /api/users/me by method
func userMeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetProfile(db)(w, r)
		case http.MethodPut, http.MethodPatch:
			handlers.UpdateProfile(db)(w, r)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte(`{"success":false,"message":"Method not allowed"}`))
		}
	}
}

// bookingsHandler routes /api/bookings by method
func bookingsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetBookings(db)(w, r)
		case http.MethodPost:
			handlers.RequireRole("customer", handlers.CreateBooking(db))(w, r)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte(`{"success":false,"message":"Method not allowed"}`))
		}
	}
}

func main() {
	rollbackSteps := flag.Int("rollback", 0, "roll back N migrations and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		fmt.Println("✅ .env file loaded")
	}

	cfg := config.LoadConfig()

	if err := logger.InitLogger(cfg.Environment); err != nil {
		log.Fatal("❌ Logger init error: ", err)
	}
	defer logger.Sync()

	handlers.SetJWTSecret(cfg.JWTSecret)
	handlers.SetAppURL(cfg.AppURL)
	websocket.SetJWTSecret(cfg.JWTSecret)

	// 1. Database
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("❌ Database connection error: ", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("❌ Database ping error: ", err)
	}
	fmt.Printf("✅ Database connected! (%s@%s:%s/%s)\n", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)

	if *rollbackSteps > 0 {
		if err := database.RollbackMigration(db, "migrations", *rollbackSteps); err != nil {
			log.Fatal("❌ Rollback error: ", err)
		}
		return
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatal("❌ Migration error: ", err)
	}

	seed.SeedWorkers(db)

	// 2. Redis (optional) - worker listing cache + reset-request rate limits
	if cfg.HasRedisConfig() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		handlers.SetWorkerCache(cache.NewRedisCache(redisClient, "kaamsaathi"))
		handlers.SetResetLimiter(ratelimit.NewRedisLimiter(redisClient, 3, time.Hour))
		fmt.Printf("✅ Redis connected! (%s)\n", cfg.RedisAddr)
	} else {
		fmt.Println("⚠️  Redis not configured, using in-memory cache and limits")
	}

	// 3. Email - real SMTP relay in production, console simulation otherwise
	if cfg.HasSMTPConfig() {
		handlers.SetMailer(mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom))
		fmt.Printf("✅ SMTP mailer ready! (%s)\n", cfg.SMTPHost)
	} else {
		handlers.SetMailer(mailer.NewConsoleMailer())
		fmt.Println("⚠️  SMTP not configured, reset emails are logged to console")
	}

	// 4. Push notifications (optional)
	if cfg.OneSignalAppID != "" && cfg.OneSignalAPIKey != "" {
		handlers.SetPushService(notification.NewOneSignalService(cfg.OneSignalAppID, cfg.OneSignalAPIKey))
		fmt.Println("✅ OneSignal push service ready!")
	}

	// 5. Hindi translator (optional)
	if t := translator.NewDeepSeekTranslator(cfg.TranslatorAPIKey); t != nil {
		handlers.SetTranslator(t)
		fmt.Println("✅ Hindi translator ready!")
	}

	// 6. WebSocket hub
	websocket.InitGlobalHub()

	// 7. Routes
	// Authentication
	http.HandleFunc("/api/auth/signup", handlers.CORSMiddleware(handlers.Signup(db)))
	http.HandleFunc("/api/auth/login", handlers.CORSMiddleware(handlers.Login(db)))
	http.HandleFunc("/api/auth/forgot-password", handlers.CORSMiddleware(handlers.ForgotPassword(db)))
	http.HandleFunc("/api/auth/reset-password", handlers.CORSMiddleware(handlers.ResetPassword(db)))

	// Profile (JWT protected)
	http.HandleFunc("/api/users/me", handlers.CORSMiddleware(handlers.JWTMiddleware(userMeHandler(db))))

	// Public catalog
	http.HandleFunc("/api/categories", handlers.CORSMiddleware(handlers.GetCategories()))
	http.HandleFunc("/api/i18n", handlers.CORSMiddleware(handlers.GetTranslations()))
	http.HandleFunc("/api/workers", handlers.CORSMiddleware(handlers.GetWorkers(db)))
	http.HandleFunc("/api/workers/", handlers.CORSMiddleware(handlers.GetWorkerByID(db))) // /api/workers/{id}

	// Bookings (JWT protected)
	http.HandleFunc("/api/bookings", handlers.CORSMiddleware(handlers.JWTMiddleware(bookingsHandler(db))))
	http.HandleFunc("/api/bookings/", handlers.CORSMiddleware(handlers.JWTMiddleware(handlers.UpdateBookingStatus(db)))) // /api/bookings/{id}/status

	// Partner worker profile (JWT + partner role)
	http.HandleFunc("/api/partner/settings", handlers.CORSMiddleware(handlers.JWTMiddleware(handlers.RequireRole("partner", handlers.GetWorkerSettings(db)))))
	http.HandleFunc("/api/partner/quick-response", handlers.CORSMiddleware(handlers.JWTMiddleware(handlers.RequireRole("partner", handlers.ToggleQuickResponse(db)))))
	http.HandleFunc("/api/partner/availability", handlers.CORSMiddleware(handlers.JWTMiddleware(handlers.RequireRole("partner", handlers.ToggleAvailability(db)))))
	http.HandleFunc("/api/partner/profile", handlers.CORSMiddleware(handlers.JWTMiddleware(handlers.RequireRole("partner", handlers.UpdateWorkerProfile(db)))))

	// Realtime booking feed for partners
	http.HandleFunc("/ws/bookings", websocket.HandleWebSocket(db))

	// Health check
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// 8. Serve
	fmt.Printf("🚀 Server running on http://localhost:%s\n", cfg.ServerPort)
	fmt.Printf("📡 WebSocket: ws://localhost:%s/ws/bookings\n", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, nil); err != nil {
		log.Fatal("❌ Server error: ", err)
	}
}
