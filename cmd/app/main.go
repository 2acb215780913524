package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/JananiSriSK/varu-knit-store/internal/address"
	"github.com/JananiSriSK/varu-knit-store/internal/cache"
	"github.com/JananiSriSK/varu-knit-store/internal/cart"
	"github.com/JananiSriSK/varu-knit-store/internal/chatbot"
	"github.com/JananiSriSK/varu-knit-store/internal/config"
	"github.com/JananiSriSK/varu-knit-store/internal/content"
	"github.com/JananiSriSK/varu-knit-store/internal/notify"
	"github.com/JananiSriSK/varu-knit-store/internal/order"
	"github.com/JananiSriSK/varu-knit-store/internal/otp"
	"github.com/JananiSriSK/varu-knit-store/internal/product"
	"github.com/JananiSriSK/varu-knit-store/internal/recommend"
	"github.com/JananiSriSK/varu-knit-store/internal/search"
	"github.com/JananiSriSK/varu-knit-store/internal/user"
	"github.com/JananiSriSK/varu-knit-store/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := mustOpenDB(cfg.DatabaseURL, logger)
	defer db.Close()
	if err := ensureSchema(db); err != nil {
		logger.Fatal("schema setup failed", zap.Error(err))
	}

	// response cache is optional: without REDIS_ADDR every request hits the DB
	var responseCache *cache.Cache
	if cfg.RedisAddr != "" {
		responseCache, err = cache.New(cfg.RedisAddr, cfg.CacheTTL, logger)
		if err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		defer responseCache.Close()
	}

	var emailSender notify.EmailSender = notify.NewLogEmailSender(logger)
	if cfg.SMTPHost != "" {
		emailSender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}
	dispatcher, err := notify.NewDispatcher(cfg.NotifyWorkers, emailSender, notify.NewLogSMSSender(logger), logger)
	if err != nil {
		logger.Fatal("dispatcher setup failed", zap.Error(err))
	}
	defer dispatcher.Close()

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret, cfg.JWTTTL)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService, userService, responseCache)

	searchHandler := search.NewHandler(search.NewService(productService))

	notifyRepo := notify.NewPostgresRepository(db)
	notifyHandler := notify.NewHandler(notifyRepo)
	orderEvents := notify.NewOrderEvents(notifyRepo, dispatcher, userService, cfg.AdminEmail, logger)

	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db), productService, orderEvents, logger))

	recommendHandler := recommend.NewHandler(recommend.NewService(recommend.NewPostgresRepository(db), productRepo, logger))

	cartHandler := cart.NewHandler(cart.NewService(cart.NewPostgresRepository(db), productService))
	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlist.NewPostgresRepository(db), productService))
	addressHandler := address.NewHandler(address.NewPostgresRepository(db))

	otpService := otp.NewService(otp.NewPostgresRepository(db), userService, notify.NewOTPDelivery(dispatcher))
	otpHandler := otp.NewHandler(otpService, cfg.JWTSecret, cfg.JWTTTL)

	chatbotHandler := chatbot.NewHandler(chatbot.NewService(chatbot.NewPostgresRepository(db)))
	contentHandler := content.NewHandler(content.NewPostgresRepository(db), responseCache)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger(logger))

	// only anonymous catalog reads are cached; user-specific GETs never match
	app.Use(responseCache.Middleware(
		"/api/v1/products",
		"/api/v1/product/",
		"/api/v1/search",
		"/api/v1/content/",
	))

	// public routes go before the JWT middleware
	userHandler.RegisterPublicRoutes(app)
	otpHandler.RegisterPublicRoutes(app)
	searchHandler.RegisterPublicRoutes(app)
	recommendHandler.RegisterPublicRoutes(app)
	chatbotHandler.RegisterPublicRoutes(app)
	contentHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	recommendHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	notifyHandler.RegisterProtectedRoutes(app)
	chatbotHandler.RegisterProtectedRoutes(app)
	contentHandler.RegisterProtectedRoutes(app)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func mustOpenDB(url string, logger *zap.Logger) *sql.DB {
	if url == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		logger.Fatal("database open failed", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		logger.Fatal("database ping failed", zap.Error(err))
	}
	return db
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)),
		)
		return err
	}
}
