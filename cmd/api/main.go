package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/YasinKhilji/ims-project/internal/config"
	"github.com/YasinKhilji/ims-project/internal/handler"
	"github.com/YasinKhilji/ims-project/internal/middleware"
	"github.com/YasinKhilji/ims-project/internal/model"
	"github.com/YasinKhilji/ims-project/internal/repository"
	"github.com/YasinKhilji/ims-project/internal/service"
	"github.com/YasinKhilji/ims-project/internal/ws"
	"github.com/YasinKhilji/ims-project/pkg/database"
	"github.com/YasinKhilji/ims-project/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zlog.Sync()

	// 2. Setup database
	db := database.Connect(cfg.Database)
	db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Product{},
		&model.Order{},
		&model.Transaction{},
		&model.Notification{},
		&model.AuditLog{},
	)

	// 3. Seed default admin
	seedAdmin(db, zlog)

	// 4. Websocket hub for live notification push
	wsHub := ws.NewHub(zlog)
	go wsHub.Run()

	// 5. Dependency injection
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	notifRepo := repository.NewNotificationRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	notifService := service.NewNotificationService(db, notifRepo, wsHub, zlog)
	orderService := service.NewOrderService(db, orderRepo, txRepo, notifService, auditRepo, zlog)
	authService := service.NewAuthService(db, userRepo, notifService, auditRepo, tokens, zlog)
	invService := service.NewInventoryService(db, productRepo, txRepo, supplierRepo, auditRepo, zlog)
	supplierService := service.NewSupplierService(supplierRepo, productRepo, zlog)
	userService := service.NewUserService(userRepo, auditRepo, zlog)
	reportService := service.NewReportService(db, txRepo, productRepo, orderRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService)
	notifHandler := handler.NewNotificationHandler(notifService)
	productHandler := handler.NewProductHandler(invService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService, auditRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(tokens, userRepo))

	protected.Post("/auth/logout", authHandler.Logout)

	// Dashboard & reports
	protected.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), reportHandler.GetStockMovement)
	protected.Get("/reports/suppliers",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), reportHandler.GetSupplierReport)
	protected.Get("/reports/sales",
		middleware.RequireRole(model.RoleAdmin), reportHandler.GetSalesReport)
	protected.Get("/audit-log",
		middleware.RequireRole(model.RoleAdmin), reportHandler.GetAuditLog)

	// Products
	protected.Get("/products", productHandler.GetAll)
	protected.Get("/products/low-stock",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), productHandler.LowStock)
	protected.Get("/products/:id", productHandler.Get)
	protected.Post("/products",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), productHandler.Create)
	protected.Put("/products/:id",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), productHandler.Update)
	protected.Delete("/products/:id",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), productHandler.Delete)

	// Stock ledger
	protected.Get("/transactions",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), productHandler.GetTransactions)
	protected.Get("/transactions/:id",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), productHandler.GetTransaction)
	protected.Post("/transactions",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), productHandler.UpdateStock)

	// Orders
	protected.Get("/orders", orderHandler.GetAll)
	protected.Get("/orders/:id", orderHandler.Get)
	protected.Post("/orders",
		middleware.RequireRole(model.RoleSales, model.RoleAdmin), orderHandler.Create)
	protected.Post("/orders/:id/process",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), orderHandler.Process)

	// Suppliers
	protected.Get("/suppliers",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), supplierHandler.GetAll)
	protected.Get("/suppliers/:id",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), supplierHandler.Get)
	protected.Post("/suppliers",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), supplierHandler.Create)
	protected.Put("/suppliers/:id",
		middleware.RequireRole(model.RoleAdmin, model.RoleInventoryManager), supplierHandler.Update)
	protected.Delete("/suppliers/:id",
		middleware.RequireRole(model.RoleAdmin), supplierHandler.Delete)

	// Notifications
	protected.Get("/notifications", notifHandler.List)
	protected.Get("/notifications/unread-count", notifHandler.UnreadCount)
	protected.Post("/notifications/:id/read", notifHandler.MarkRead)

	// User management (Admin only)
	users := protected.Group("/users", middleware.RequireRole(model.RoleAdmin))
	users.Get("/", userHandler.GetAll)
	users.Get("/pending", userHandler.GetPending)
	users.Get("/:id", userHandler.Get)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/approve", authHandler.Approve)

	// Websocket route: token is passed as a query param since browsers
	// cannot set headers on websocket upgrade requests
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		claims, err := tokens.Validate(c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("ws_user_id", claims.UserID)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		client := &ws.Client{Conn: c, UserID: c.Locals("ws_user_id").(uuid.UUID)}
		wsHub.Register <- client
		defer func() { wsHub.Unregister <- client }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if no admin exists yet
func seedAdmin(db *gorm.DB, zlog *zap.Logger) {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		zlog.Warn("failed to check for admin user", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@example.com",
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		zlog.Warn("failed to hash admin password", zap.Error(err))
		return
	}
	if err := db.Create(admin).Error; err != nil {
		zlog.Warn("failed to create admin user", zap.Error(err))
		return
	}

	zlog.Info("default admin user created", zap.String("username", admin.Username))
}
