package bootstrap

import (
	"context"
	"log"

	"walkaudit-be/internal/config"
	"walkaudit-be/internal/controller"
	"walkaudit-be/internal/pkg/logger"
	"walkaudit-be/internal/pkg/mailer"
	"walkaudit-be/internal/repository/unitofwork"
	"walkaudit-be/internal/service"
	"walkaudit-be/internal/websocket"
	"walkaudit-be/pkg/geocode"

	pkgNats "walkaudit-be/pkg/nats"

	fiberws "github.com/gofiber/websocket/v2"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const enrichmentTopic = "report-enrichment"

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	ReportController       controller.IReportController
	CityController         controller.ICityController
	CompanyController      controller.ICompanyController
	AdminController        controller.IAdminController
	NotificationController controller.INotificationController
	GeocodeController      controller.IGeocodeController
	ExportController       controller.IExportController

	// Background services (run by main)
	ConsumerService service.IConsumerService

	// Websocket handlers (routes registered by the server)
	ChatWSHandler   func(*fiberws.Conn)
	NotifyWSHandler func(*fiberws.Conn)
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// In-process event bus for the enrichment pipeline
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis, used to relay websocket frames between instances
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Websocket layer. The origin id lets each instance skip its own
	// relayed frames.
	wsLogger := logger.NewIsolatedLogger("logs/chat.log")
	origin := uuid.NewString()
	registry := websocket.NewRegistry()
	notifier := websocket.NewNotifier(rdb, origin, wsLogger)

	geocoder := geocode.NewClient(cfg.Keys.YahooGeocoder)

	// Services
	publisherService := service.NewPublisherService(enrichmentTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, enrichmentTopic, uowFactory, geocoder)

	chatService := service.NewChatService(uowFactory, natsPub)
	dispatcher := websocket.NewDispatcher(registry, chatService, chatService, rdb, wsLogger)
	chatService.AttachDispatcher(dispatcher)

	authService := service.NewAuthService(uowFactory, natsPub, cfg.Admin)
	reportService := service.NewReportService(uowFactory, publisherService, natsPub)
	assignmentService := service.NewAssignmentService(uowFactory, emailService, natsPub, sysLogger)
	organizationService := service.NewOrganizationService(uowFactory)
	userService := service.NewUserService(uowFactory)
	taxonomyService := service.NewTaxonomyService(uowFactory)
	feedbackService := service.NewFeedbackService(uowFactory)
	adminService := service.NewAdminService(uowFactory)
	exportService := service.NewExportService(uowFactory)

	notificationService := service.NewNotificationService(uowFactory, natsSub, notifier, wsLogger)
	if natsSub != nil {
		go notificationService.Start()
	}

	// Cross-instance relays
	go dispatcher.RunRelay(context.Background())
	go notifier.RunRelay(context.Background())

	return &Container{
		AuthController:   controller.NewAuthController(authService),
		ReportController: controller.NewReportController(reportService, chatService, cfg.App.UploadDir),
		CityController: controller.NewCityController(
			taxonomyService,
			organizationService,
			reportService,
			assignmentService,
			chatService,
		),
		CompanyController: controller.NewCompanyController(
			organizationService,
			reportService,
			assignmentService,
			chatService,
			userService,
		),
		AdminController:        controller.NewAdminController(adminService, userService, feedbackService),
		NotificationController: controller.NewNotificationController(notificationService, feedbackService),
		GeocodeController:      controller.NewGeocodeController(geocoder),
		ExportController:       controller.NewExportController(exportService),

		ConsumerService: consumerService,

		ChatWSHandler:   websocket.ServeChat(chatService, dispatcher, registry, wsLogger),
		NotifyWSHandler: notifier.ServeNotifications(),
	}
}
