package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/quanghtran/myapp-backend/internal/config"
	"github.com/quanghtran/myapp-backend/internal/domain"
	"github.com/quanghtran/myapp-backend/internal/logging"
	"github.com/quanghtran/myapp-backend/internal/repository/postgres"
	"github.com/quanghtran/myapp-backend/internal/service"
	httptransport "github.com/quanghtran/myapp-backend/internal/transport/http"
	"github.com/quanghtran/myapp-backend/internal/transport/mail"
	"github.com/quanghtran/myapp-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		mirror, err := logging.NewTCPMirror(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash mirror disabled: %v", err)
		} else {
			defer mirror.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, mirror))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	roleRepo := postgres.NewRoleRepo(db)
	for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
		if _, err := roleRepo.EnsureRole(ctx, name); err != nil {
			log.Fatalf("seed role %s: %v", name, err)
		}
	}

	accountRepo := postgres.NewAccountRepo(db)
	resetRepo := postgres.NewResetTokenRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)

	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionTTL)

	authService := service.NewAuthService(accountRepo, roleRepo, resetRepo, mailer, jwtManager, cfg.PasswordResetTTL)
	customerService := service.NewCustomerService(customerRepo)

	e := httptransport.NewRouter(cfg.AllowOrigins)
	httptransport.NewAuthHandler(authService).Register(e)
	httptransport.NewCustomerHandler(customerService).Register(e, authService)
	httptransport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
