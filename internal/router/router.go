package router

import (
	"time"

	"elysee/internal/config"
	"elysee/internal/handler"
	"elysee/internal/importer"
	"elysee/internal/infra"
	"elysee/internal/middleware"
	"elysee/internal/model"
	"elysee/internal/repository"
	"elysee/internal/service"
	"elysee/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Services groups the service layer so the worker pool and the HTTP
// layer share the same instances.
type Services struct {
	Auth        service.AuthService
	Clients     service.ClientService
	Compte      service.CompteService
	Echeances   service.EcheanceService
	Banque      service.BanqueService
	Dashboard   service.DashboardService
	Recettes    service.RecettesService
	Planning    service.PlanningService
	Documents   service.DocumentService
	Parametres  service.ParametresService
	Maintenance service.MaintenanceService
}

// NewServices wires repositories into services. queue may be nil when Redis
// is not available.
func NewServices(cfg *config.Config, db *gorm.DB, queue service.FactureQueue) *Services {
	// ── Repositories ─────────────────────────────────────────────────────────
	utilisateurRepo := repository.NewUtilisateurRepository(db)
	clientRepo := repository.NewClientRepository(db)
	debitRepo := repository.NewDebitRepository(db)
	reglementRepo := repository.NewReglementRepository(db)
	depotRepo := repository.NewDepotRepository(db)
	echeanceRepo := repository.NewEcheanceRepository(db)
	evenementRepo := repository.NewEvenementRepository(db)
	parametresRepo := repository.NewParametresRepository(db)
	importRepo := repository.NewImportRepository(db)
	contratRepo := repository.NewContratRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	return &Services{
		Auth:        service.NewAuthService(utilisateurRepo, cfg),
		Clients:     service.NewClientService(clientRepo, debitRepo, reglementRepo),
		Compte:      service.NewCompteService(clientRepo, debitRepo, reglementRepo, echeanceRepo, decimal.NewFromFloat(cfg.TauxTVA)),
		Echeances:   service.NewEcheanceService(clientRepo, echeanceRepo),
		Banque:      service.NewBanqueService(reglementRepo, depotRepo, debitRepo),
		Dashboard:   service.NewDashboardService(clientRepo, debitRepo, reglementRepo, depotRepo, cfg.AlertDays),
		Recettes:    service.NewRecettesService(reglementRepo),
		Planning:    service.NewPlanningService(evenementRepo, clientRepo, debitRepo, reglementRepo),
		Documents:   service.NewDocumentService(clientRepo, debitRepo, reglementRepo, parametresRepo, contratRepo, queue),
		Parametres:  service.NewParametresService(parametresRepo),
		Maintenance: service.NewMaintenanceService(debitRepo, importRepo, importer.OptionsDepuis(cfg)),
	}
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer) *gin.Engine {
	var queue service.FactureQueue
	if rdb != nil {
		queue = worker.NewDispatcher(worker.NewRedisPusher(rdb))
	}
	return NewWithServices(cfg, NewServices(cfg, db, queue), handler.Health(db, rdb, mailer))
}

// NewWithServices builds the engine around an existing service set.
func NewWithServices(cfg *config.Config, svcs *Services, health gin.HandlerFunc) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitAPI, time.Minute))

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	utilisateursH := handler.NewUtilisateursHandler(svcs.Auth)
	clientsH := handler.NewClientsHandler(svcs.Clients)
	compteH := handler.NewCompteHandler(svcs.Compte, svcs.Echeances)
	banqueH := handler.NewBanqueHandler(svcs.Banque)
	dashboardH := handler.NewDashboardHandler(svcs.Dashboard, svcs.Recettes)
	planningH := handler.NewPlanningHandler(svcs.Planning)
	documentsH := handler.NewDocumentsHandler(svcs.Documents, svcs.Parametres)
	maintenanceH := handler.NewMaintenanceHandler(svcs.Maintenance)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/v1/auth", middleware.LoginRateLimiter(cfg.RateLimitLogin))
	{
		auth.POST("/login", authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	tous := middleware.RequireRole(model.RoleAdmin, model.RoleCollaborateur, model.RoleSecretaire)
	gestion := middleware.RequireRole(model.RoleAdmin, model.RoleCollaborateur)
	admin := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		clients := v1.Group("/clients", tous)
		{
			clients.GET("", clientsH.Lister)
			clients.POST("", clientsH.Creer)
			clients.GET("/:id", clientsH.Obtenir)
			clients.PUT("/:id", clientsH.Modifier)
			clients.POST("/:id/archiver", clientsH.Archiver)
			clients.POST("/:id/desarchiver", clientsH.Desarchiver)
			clients.DELETE("/:id", admin, clientsH.Supprimer)

			clients.GET("/:id/compte", compteH.Compte)
			clients.POST("/:id/debits", compteH.AjouterDebit)
			clients.POST("/:id/reglements", compteH.AjouterReglement)
			clients.GET("/:id/echeances", compteH.ListerEcheances)
			clients.POST("/:id/echeances", compteH.AjouterEcheance)

			clients.GET("/:id/facture", documentsH.Facture)
			clients.GET("/:id/devis", documentsH.Devis)
			clients.GET("/:id/contrat", documentsH.Contrat)
			clients.POST("/:id/facture/envoyer", documentsH.EnvoyerFacture)
		}

		v1.DELETE("/debits/:id", gestion, compteH.SupprimerDebit)
		v1.DELETE("/reglements/:id", gestion, compteH.SupprimerReglement)
		v1.PATCH("/echeances/:id/payee", tous, compteH.BasculerEcheance)
		v1.DELETE("/echeances/:id", tous, compteH.SupprimerEcheance)

		v1.GET("/dashboard", gestion, dashboardH.Dashboard)
		v1.GET("/dashboard/stats", gestion, dashboardH.StatsAnnuelles)
		v1.GET("/recettes", gestion, dashboardH.Recettes)

		planning := v1.Group("/planning", tous)
		{
			planning.GET("", planningH.Lister)
			planning.POST("", planningH.Creer)
			planning.PUT("/:id", planningH.Modifier)
			planning.DELETE("/:id", planningH.Supprimer)
		}

		banque := v1.Group("/banque", admin)
		{
			banque.GET("", banqueH.Recap)
			banque.POST("/cheques/depot", banqueH.DeposerCheques)
			banque.POST("/depots", banqueH.DeposerEspeces)
			banque.DELETE("/depots/:id", banqueH.SupprimerDepot)
			banque.GET("/rapport", banqueH.RapportComptable)
		}

		v1.GET("/parametres", tous, documentsH.Parametres)
		v1.PUT("/parametres", admin, documentsH.ModifierParametres)

		utilisateurs := v1.Group("/utilisateurs", admin)
		{
			utilisateurs.POST("", utilisateursH.Creer)
			utilisateurs.GET("", utilisateursH.Lister)
			utilisateurs.PUT("/:id", utilisateursH.Modifier)
			utilisateurs.DELETE("/:id", utilisateursH.Desactiver)
		}

		maintenance := v1.Group("/maintenance", admin)
		{
			maintenance.GET("/doublons", maintenanceH.AnalyserDoublons)
			maintenance.POST("/doublons", maintenanceH.NettoyerDoublons)
			maintenance.POST("/import", middleware.ImportRateLimiter(cfg.RateLimitImport), maintenanceH.Importer)
		}
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
