package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	FAQPath string `envconfig:"FAQ_PATH" default:"data/faq.json"`

	// Azure Speech Services (optional; speech endpoints disabled without a key)
	SpeechKey      string `envconfig:"SPEECH_KEY"`
	SpeechRegion   string `envconfig:"SPEECH_REGION" default:"eastus"`
	SpeechVoice    string `envconfig:"SPEECH_VOICE" default:"uk-UA-PolinaNeural"`
	SpeechLanguage string `envconfig:"SPEECH_LANGUAGE" default:"uk-UA"`

	// S3-compatible storage for report archiving (optional)
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"gridvoice-reports"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// Interval between automatic daily-report archives, in hours.
	// Only used when S3 is configured. 0 disables the archiver.
	ReportArchiveHours int `envconfig:"REPORT_ARCHIVE_HOURS" default:"24"`

	// Tariffs in UAH per kWh
	TariffResidentialDay   float64 `envconfig:"TARIFF_RESIDENTIAL_DAY" default:"2.64"`
	TariffResidentialNight float64 `envconfig:"TARIFF_RESIDENTIAL_NIGHT" default:"1.32"`
	TariffCommercial       float64 `envconfig:"TARIFF_COMMERCIAL" default:"4.20"`
	TariffIndustrial       float64 `envconfig:"TARIFF_INDUSTRIAL" default:"3.85"`

	// Company contact details surfaced in canned replies
	SupportPhone   string `envconfig:"SUPPORT_PHONE" default:"0 800 500 425"`
	SupportEmail   string `envconfig:"SUPPORT_EMAIL" default:"support@gridvoice.ua"`
	EmergencyPhone string `envconfig:"EMERGENCY_PHONE" default:"104"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("GRIDVOICE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasSpeech() bool {
	return c.SpeechKey != ""
}
