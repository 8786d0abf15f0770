package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"ai-receptionist/internal/config"
	Irepository "ai-receptionist/internal/domain/interfaces/repository"
	Iservices "ai-receptionist/internal/domain/interfaces/services"
	"ai-receptionist/internal/infra/handlers"
	"ai-receptionist/internal/infra/logger"
	"ai-receptionist/internal/infra/provider"
	"ai-receptionist/internal/infra/repository"
	"ai-receptionist/internal/infra/routes"
	"ai-receptionist/internal/infra/services"
	"ai-receptionist/internal/middleware"
	client "ai-receptionist/internal/pkg"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	recordStore := newRecordStore(log)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	httpClient := &http.Client{Timeout: 60 * time.Second}

	openAIKey := config.GetEnvOr("OPENAI_API_KEY", "")
	openAIModel := config.GetEnvOr("OPENAI_MODEL", "gpt-3.5-turbo")
	if openAIKey == "" {
		log.Warn("OPENAI_API_KEY not set; model calls will fail and fall back to fixed responses")
	}

	var completionClient Iservices.ICompletionClient = provider.NewOpenAIClient(httpClient, openAIKey, openAIModel, log)

	hub := services.NewDashboardHub(log)
	go hub.Run()

	var escalationSvc Iservices.IEscalationService = services.NewEscalationService(completionClient, log)
	var responderSvc Iservices.IResponderService = services.NewResponderService(completionClient, log)

	manager := services.NewSessionManager()
	humanSupportNumber := config.GetEnvOr("HUMAN_SUPPORT_NUMBER", "+15555555555")

	twilioHandlers := handlers.NewTwilioHandlers(log, manager, escalationSvc, responderSvc, hub, recordStore, humanSupportNumber)
	dashboardHandlers := handlers.NewDashboardHandlers(log, hub, recordStore)

	appRoutes := routes.NewRoutes(router, twilioHandlers, dashboardHandlers)
	appRoutes.Init()

	port := config.GetEnvOr("PORT", "8080")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}

// newRecordStore picks MongoDB when MONGODB_URI is set, otherwise the
// local SQLite file. A configured but unreachable Mongo is fatal; the
// SQLite fallback keeps local setups credential-free.
func newRecordStore(log *logger.Logger) Irepository.RecordStore {
	if uri := config.GetEnvOr("MONGODB_URI", ""); uri != "" {
		mongoClient, err := client.MongoClient(uri)
		if err != nil {
			log.Fatal(fmt.Sprintf("MongoDB configured but unavailable: %v", err))
		}
		return repository.NewMongoRecordStore(mongoClient.Database("Receptionist"))
	}

	path := config.GetEnvOr("CALL_LOG_PATH", "call_logs.db")
	store, err := repository.OpenSQLiteRecordStore(path)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to open call log database %s: %v", path, err))
	}
	return store
}
