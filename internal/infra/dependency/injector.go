// Package dependency provides dependency injection for the application.
package dependency

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/engage-crm/backend/config"
	"github.com/engage-crm/backend/internal/application/adapter"
	"github.com/engage-crm/backend/internal/application/usecase/goaltracker"
	"github.com/engage-crm/backend/internal/application/usecase/reminder"
	"github.com/engage-crm/backend/internal/infra/redisconn"
	"github.com/engage-crm/backend/internal/infra/scheduler"
	"github.com/engage-crm/backend/internal/infra/server/router"
	"github.com/engage-crm/backend/internal/integration/email"
	"github.com/engage-crm/backend/internal/integration/email/templates"
	"github.com/engage-crm/backend/internal/integration/entrypoint/controller"
	"github.com/engage-crm/backend/internal/integration/notification"
	"github.com/engage-crm/backend/internal/integration/persistence"
	"github.com/engage-crm/backend/internal/integration/queue"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *goredis.Client
	Router      *router.Router
	TaskQueue   adapter.TaskQueue
	Consumer    *queue.Consumer
	Scheduler   *scheduler.Scheduler
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *goredis.Client) (*Injector, error) {
	// Create repositories
	activityRepo := persistence.NewActivityRepository(db)
	reminderRepo := persistence.NewReminderRepository(db)
	goalRepo := persistence.NewGoalTrackerRepository(db)
	userRepo := persistence.NewUserRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create integration services
	emailService := email.NewService(emailQueueRepo)
	dispatcher := notification.NewDispatcher(notificationRepo, redisClient)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create use cases
	policy := reminder.Policy{DefaultLeadTime: cfg.Reminder.DefaultLeadTime}
	reconcileUseCase := reminder.NewReconcileRemindersUseCase(activityRepo, reminderRepo, policy, cfg.Reminder.SafetyMargin)
	sweepUseCase := reminder.NewSweepRemindersUseCase(reminderRepo, userRepo, dispatcher, emailService, cfg.Reminder.SweepWindow)
	scheduleChangeUseCase := goaltracker.NewScheduleChangeUseCase(activityRepo, goalRepo)
	bulkStatusChangeUseCase := goaltracker.NewBulkStatusChangeUseCase(activityRepo, goalRepo)
	activityDeleteUseCase := goaltracker.NewActivityDeleteUseCase(goalRepo)

	// Create queue producer and consumer
	taskQueue := queue.NewRedisQueue(redisClient, cfg.Queue.Key)
	consumer := queue.NewConsumer(
		redisClient,
		cfg.Queue.Key,
		cfg.Queue.BlockTimeout,
		reconcileUseCase,
		scheduleChangeUseCase,
		bulkStatusChangeUseCase,
		activityDeleteUseCase,
	)

	// Create sweep scheduler
	sweepScheduler := scheduler.New(sweepUseCase, cfg.Reminder.SweepSchedule)

	// Create ops router
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			return redisconn.HealthCheck(redisClient)
		},
	)
	r := router.NewRouter(healthController)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Router:      r,
		TaskQueue:   taskQueue,
		Consumer:    consumer,
		Scheduler:   sweepScheduler,
		EmailWorker: emailWorker,
	}, nil
}
