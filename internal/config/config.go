package config

import "time"

type Config struct {
	BaseURL  string
	HttpPort int
	Db       struct {
		Dsn         string
		Automigrate bool
		Seed        bool
	}
	Redis struct {
		Addr string
		DB   int
	}
	Notifications struct {
		// Email receives server error reports
		Email string
		// HREmail receives onboarding-complete notices
		HREmail string
	}
	Smtp struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	ExchangeRates struct {
		CacheTTL time.Duration
	}
	DefaultLocale string
	KafkaServers  string
}
