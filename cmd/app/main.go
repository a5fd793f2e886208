package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"freight/cmd"
	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres/consignmentrepo"
	"freight/internal/adapters/out/postgres/containerrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/pkg/tokencache"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	tokens := tokencache.NewTokenCache(crmTokenRefresher(configs), 30*time.Second)

	app := cmd.NewCompositionRoot(configs, gormDB, tokens, logger)
	defer func() { _ = app.ClosePublisher() }()

	jobManager := app.CreateJobManager(configs)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderTrackingTopic: goDotEnvVariable("KAFKA_ORDER_TRACKING_TOPIC"),
		KafkaContainerDueTopic:  goDotEnvVariable("KAFKA_CONTAINER_DUE_TOPIC"),

		CRMBaseURL:      goDotEnvVariable("CRM_BASE_URL"),
		CRMClientID:     goDotEnvVariable("CRM_CLIENT_ID"),
		CRMClientSecret: goDotEnvVariable("CRM_CLIENT_SECRET"),

		HireExpirySchedule: goDotEnvVariable("HIRE_EXPIRY_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the repositories map to conflicts.
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.SenderDTO{},
		&orderrepo.ReceiverDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.TransportDTO{},
		&orderrepo.TrackingEventDTO{},
		&containerrepo.ContainerDTO{},
		&containerrepo.StatusEventDTO{},
		&containerrepo.PurchaseDetailDTO{},
		&containerrepo.HireDetailDTO{},
		&consignmentrepo.ConsignmentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

// crmTokenRefresher exchanges client credentials for a short-lived CRM
// access token.
func crmTokenRefresher(configs cmd.Config) tokencache.RefreshFunc {
	client := &http.Client{Timeout: 10 * time.Second}

	return func(ctx context.Context) (string, time.Time, error) {
		payload, err := json.Marshal(map[string]string{
			"client_id":     configs.CRMClientID,
			"client_secret": configs.CRMClientSecret,
		})
		if err != nil {
			return "", time.Time{}, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			configs.CRMBaseURL+"/auth/token", bytes.NewReader(payload))
		if err != nil {
			return "", time.Time{}, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return "", time.Time{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", time.Time{}, fmt.Errorf("crm token endpoint returned status %d", resp.StatusCode)
		}

		var body struct {
			AccessToken string `json:"access_token"`
			ExpiresIn   int    `json:"expires_in"`
		}
		if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", time.Time{}, err
		}

		return body.AccessToken, time.Now().Add(time.Duration(body.ExpiresIn) * time.Second), nil
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderCommandHandler(),
		app.CreateAssignContainersCommandHandler(),
		app.CreateSetReceiverStatusCommandHandler(),
		app.CreateCreateContainerCommandHandler(),
		app.CreateRecordContainerEventCommandHandler(),
		app.CreateOverrideContainerStatusCommandHandler(),
		app.CreateCreateConsignmentCommandHandler(),
		app.CreateAdvanceConsignmentCommandHandler(),
		app.CreateCancelConsignmentCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
		app.CreateGetOrderTrackingQueryHandler(),
		app.CreateGetContainerStatusQueryHandler(),
		app.CreateGetConsignmentQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
