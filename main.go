package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rahnacm97/Talentra/internal/client"
	"github.com/rahnacm97/Talentra/internal/config"
	"github.com/rahnacm97/Talentra/internal/db"
	"github.com/rahnacm97/Talentra/internal/handler"
	"github.com/rahnacm97/Talentra/internal/logger"
	"github.com/rahnacm97/Talentra/internal/model"
	"github.com/rahnacm97/Talentra/internal/notify"
	"github.com/rahnacm97/Talentra/internal/service"
)

func main() {
	// best-effort: if no .env exists, continue with real env
	_ = godotenv.Load()

	lg, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	database := db.NewPostgres(pool)
	if err := database.EnsureSchema(ctx); err != nil {
		sugar.Fatalf("ensure schema: %v", err)
	}

	otpTTL, err := time.ParseDuration(cfg.Otp.TTL)
	if err != nil {
		sugar.Fatalf("parse OTP_TTL: %v", err)
	}

	mailer, err := client.NewEmailClient(cfg.SMTP)
	if err != nil {
		sugar.Fatalf("email client: %v", err)
	}

	oauth, err := client.NewGoogleOAuthClient(ctx, cfg.Google)
	if err != nil {
		sugar.Fatalf("google oauth client: %v", err)
	}

	tokens, err := service.NewTokenService(database, cfg.JWT, sugar)
	if err != nil {
		sugar.Fatalf("token service: %v", err)
	}

	hub := notify.NewHub(sugar)
	users := service.NewUserAuthService(database, database, database, sugar)
	otp := service.NewOtpService(database, users, mailer, tokens, otpTTL, sugar)
	auth := service.NewAuthService(users, tokens, sugar)
	passwords := service.NewPasswordService(users, otp, sugar)
	google := service.NewGoogleAuthService(oauth, users, tokens, sugar)
	employers := service.NewEmployerService(database, hub, mailer, sugar)
	candidates := service.NewCandidateService(database, hub, sugar)

	authHandler := handler.NewAuthHandler(auth)
	otpHandler := handler.NewOtpHandler(otp)
	passwordHandler := handler.NewPasswordHandler(passwords)
	googleHandler := handler.NewGoogleHandler(google)
	adminHandler := handler.NewAdminHandler(employers, candidates)
	employerHandler := handler.NewEmployerHandler(employers)

	allowedOrigins := strings.Split(cfg.CORS.AllowedOrigins, ",")
	wsHandler := handler.NewWsHandler(hub, tokens, allowedOrigins, sugar)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(allowedOrigins))

	router.GET("/health", handler.Health)
	router.GET("/ws", wsHandler.Serve)

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/signup", otpHandler.Signup)
		authGroup.POST("/verify-otp", otpHandler.VerifyOtp)
		authGroup.POST("/resend-otp", otpHandler.ResendOtp)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/refresh-token", authHandler.Refresh)
		authGroup.POST("/forgot-password", passwordHandler.ForgotPassword)
		authGroup.POST("/reset-password", passwordHandler.ResetPassword)
		authGroup.POST("/google", googleHandler.SignIn)
		authGroup.GET("/me", handler.AuthMiddleware(tokens), authHandler.Me)
	}

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(handler.AuthMiddleware(tokens), handler.RequireRole(model.RoleAdmin))
	{
		adminGroup.PATCH("/employers/:id/verify", adminHandler.VerifyEmployer)
		adminGroup.PATCH("/employers/:id/reject", adminHandler.RejectEmployer)
		adminGroup.PATCH("/employers/:id/block", adminHandler.BlockEmployer)
		adminGroup.PATCH("/candidates/:id/block", adminHandler.BlockCandidate)
	}

	employerGroup := router.Group("/api/employers")
	employerGroup.Use(handler.AuthMiddleware(tokens), handler.RequireRole(model.RoleEmployer))
	{
		employerGroup.GET("/profile", employerHandler.GetProfile)
		employerGroup.PUT("/profile", employerHandler.UpdateProfile)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		sugar.Infow("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}
}
