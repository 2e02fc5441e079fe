package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StripeAPIKey string

	EasyPostBaseURL string
	EasyPostAPIKey  string

	AddressAIBaseURL string

	KafkaHost           string
	KafkaShipmentsTopic string
}
