package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig
	Chain  ChainConfig
	Rates  RatesConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
}

type ServerConfig struct {
	Port         string
	Origin       string // public origin used in QR verification deep links
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type ChainConfig struct {
	RPCURL          string
	ContractAddress string
	PrivateKey      string // hex-encoded signing key for the gateway wallet
	ChainID         int64
}

type RatesConfig struct {
	// EndpointURL is where conversions fetch the live rate from. Empty means
	// the service's own /api/exchange-rate.
	EndpointURL string
	EthToKes    float64
	KesToEth    float64
}

type RedisConfig struct {
	Addr    string
	Enabled bool
	ScanTTL time.Duration
}

type KafkaConfig struct {
	Brokers  []string
	Enabled  bool
	MockMode bool
	Topics   TopicConfig
}

type TopicConfig struct {
	TicketPurchased string
	TicketUsed      string
	EventLifecycle  string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			Origin:       getEnv("PUBLIC_ORIGIN", "http://localhost:8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Chain: ChainConfig{
			RPCURL:          getEnv("CHAIN_RPC_URL", "http://localhost:8545"),
			ContractAddress: getEnv("CONTRACT_ADDRESS", ""),
			PrivateKey:      getEnv("WALLET_PRIVATE_KEY", ""),
			ChainID:         int64(getEnvInt("CHAIN_ID", 1337)),
		},
		Rates: RatesConfig{
			EndpointURL: getEnv("EXCHANGE_RATE_URL", ""),
			EthToKes:    getEnvFloat("RATE_ETH_TO_KES", 133333),
			KesToEth:    getEnvFloat("RATE_KES_TO_ETH", 0.0000075),
		},
		Redis: RedisConfig{
			Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
			Enabled: getEnvBool("REDIS_ENABLED", false),
			ScanTTL: time.Duration(getEnvInt("SCAN_LOG_TTL_HOURS", 48)) * time.Hour,
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Enabled:  getEnvBool("KAFKA_ENABLED", false),
			MockMode: getEnvBool("KAFKA_MOCK_MODE", false),
			Topics: TopicConfig{
				TicketPurchased: getEnv("KAFKA_TOPIC_PURCHASED", "ticket-purchased"),
				TicketUsed:      getEnv("KAFKA_TOPIC_USED", "ticket-used"),
				EventLifecycle:  getEnv("KAFKA_TOPIC_EVENTS", "event-lifecycle"),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
