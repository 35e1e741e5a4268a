package main

import (
	"fmt"
	"net/http"

	"github.com/crewdesk/membership-backend-go/internal/config"
	appHTTP "github.com/crewdesk/membership-backend-go/internal/handler/http"
	"github.com/crewdesk/membership-backend-go/internal/pkg/database"
	"github.com/crewdesk/membership-backend-go/internal/pkg/jwt"
	"github.com/crewdesk/membership-backend-go/internal/repository/postgresql"
	credentialService "github.com/crewdesk/membership-backend-go/internal/service/credential"
	linkageService "github.com/crewdesk/membership-backend-go/internal/service/linkage"
	membershipService "github.com/crewdesk/membership-backend-go/internal/service/membership"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	membershipRepo := postgresql.NewMembershipRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	inviteRepo := postgresql.NewInviteRepository(db)
	identityStore := postgresql.NewIdentityStore(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	memberService := membershipService.NewMembershipService(txManager, membershipRepo, employeeRepo, inviteRepo, identityStore)
	employeeService := linkageService.NewLinkageService(txManager, employeeRepo, membershipRepo)
	credentialGates := credentialService.NewManager(identityStore, identityStore)

	membershipHandler := appHTTP.NewMembershipHandler(memberService)
	inviteHandler := appHTTP.NewInviteHandler(memberService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeService)
	accountHandler := appHTTP.NewAccountHandler(credentialGates)
	menuHandler := appHTTP.NewMenuHandler()

	router := appHTTP.NewRouter(
		JWTService,
		membershipHandler,
		inviteHandler,
		employeeHandler,
		accountHandler,
		menuHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
