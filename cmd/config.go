package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost               string
	KafkaOrderTrackingTopic string
	KafkaContainerDueTopic  string

	CRMBaseURL      string
	CRMClientID     string
	CRMClientSecret string

	HireExpirySchedule string
}
