package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"quarters/internal/application/workorder/usecases"
	"quarters/internal/domain/shared/events"
	"quarters/internal/infrastructure/auth"
	"quarters/internal/infrastructure/config"
	"quarters/internal/infrastructure/repository"
	"quarters/internal/infrastructure/storage"
	workorderhandlers "quarters/internal/interfaces/http/handlers/workorder"
	"quarters/internal/interfaces/http/middleware"
	"quarters/internal/interfaces/http/routes"
	"quarters/internal/shared/db"
	"quarters/internal/shared/logger"
	"quarters/internal/shared/services/markdown"
	"quarters/internal/shared/utils"
)

// Router owns the gin engine and the wiring of use cases into handlers.
type Router struct {
	engine           *gin.Engine
	cfg              *config.Config
	workOrderHandler *workorderhandlers.WorkOrderHandler
	authMiddleware   *middleware.AuthMiddleware
	storage          *storage.LocalStorage
	logger           logger.Interface
}

func NewRouter(
	database *gorm.DB,
	dispatcher events.EventPublisher,
	cfg *config.Config,
	log logger.Interface,
) (*Router, error) {
	fileStorage, err := storage.NewLocalStorage(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	workOrderRepo := repository.NewWorkOrderRepository(database)
	photoRepo := repository.NewPhotoRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	historyRepo := repository.NewHistoryRepository(database)
	txManager := db.NewTransactionManager(database)
	markdownSvc := markdown.NewService()

	handler := workorderhandlers.NewWorkOrderHandler(
		usecases.NewCreateWorkOrderUseCase(workOrderRepo, txManager, dispatcher, log),
		usecases.NewGetWorkOrderUseCase(workOrderRepo, photoRepo, fileStorage, log),
		usecases.NewListWorkOrdersUseCase(workOrderRepo, log),
		usecases.NewUpdateWorkOrderUseCase(workOrderRepo, historyRepo, txManager, log),
		usecases.NewTriageWorkOrderUseCase(workOrderRepo, historyRepo, txManager, dispatcher, log),
		usecases.NewApproveQuoteUseCase(workOrderRepo, historyRepo, txManager, dispatcher, log),
		usecases.NewRejectQuoteUseCase(workOrderRepo, historyRepo, txManager, dispatcher, log),
		usecases.NewRejectWorkOrderUseCase(workOrderRepo, historyRepo, txManager, dispatcher, log),
		usecases.NewStartWorkUseCase(workOrderRepo, historyRepo, txManager, dispatcher, log),
		usecases.NewCompleteWorkUseCase(workOrderRepo, historyRepo, photoRepo, fileStorage, txManager, dispatcher, log),
		usecases.NewSignOffWorkOrderUseCase(workOrderRepo, historyRepo, txManager, dispatcher, log),
		usecases.NewAttachPhotoUseCase(workOrderRepo, photoRepo, fileStorage, log),
		usecases.NewDetachPhotoUseCase(workOrderRepo, photoRepo, fileStorage, log),
		usecases.NewAddCommentUseCase(workOrderRepo, commentRepo, markdownSvc, log),
		usecases.NewListCommentsUseCase(workOrderRepo, commentRepo, markdownSvc, log),
		usecases.NewListHistoryUseCase(workOrderRepo, historyRepo, log),
	)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	return &Router{
		engine:           gin.New(),
		cfg:              cfg,
		workOrderHandler: handler,
		authMiddleware:   middleware.NewAuthMiddleware(jwtService, log),
		storage:          fileStorage,
		logger:           log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/healthz", r.healthCheck)

	// Stored photos are served straight off disk under the public base URL.
	r.engine.Static(r.cfg.Storage.PublicBaseURL, r.storage.BasePath())

	routes.SetupWorkOrderRoutes(r.engine, &routes.WorkOrderRouteConfig{
		WorkOrderHandler: r.workOrderHandler,
		AuthMiddleware:   r.authMiddleware,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func (r *Router) healthCheck(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
}
