package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultEnvFile = ".env"

type Config struct {
	Source    *sourceConfig
	Device42  *device42Config
	Migration *migrationConfig
	Journal   *journalConfig
	Log       *logConfig
	Metrics   *metricsConfig
}

type sourceConfig struct {
	Host     string `envconfig:"RT_DB_HOST" default:"" validate:"required"`
	Port     int    `envconfig:"RT_DB_PORT" default:"3306" validate:"min=1,max=65535"`
	Name     string `envconfig:"RT_DB_NAME" default:"racktables" validate:"required"`
	User     string `envconfig:"RT_DB_USER" default:"" validate:"required"`
	Password string `envconfig:"RT_DB_PASS" default:""`
}

type device42Config struct {
	URL         string        `envconfig:"D42_URL" default:""`
	User        string        `envconfig:"D42_USER" default:""`
	Password    string        `envconfig:"D42_PASS" default:""`
	InsecureTLS bool          `envconfig:"D42_INSECURE_TLS" default:"false"`
	Timeout     time.Duration `envconfig:"D42_TIMEOUT" default:"60s"`
}

type migrationConfig struct {
	RowAsRoom          bool   `envconfig:"ROW_AS_ROOM" default:"false" json:"rowAsRoom"`
	ChildAsBuilding    bool   `envconfig:"CHILD_AS_BUILDING" default:"false" json:"childAsBuilding"`
	CreateAvailableIPs bool   `envconfig:"CREATE_AVAILABLE_IPS" default:"false" json:"createAvailableIPs"`
	PDUMount           string `envconfig:"PDU_MOUNT" default:"left" json:"pduMount"`
	PDUOrientation     string `envconfig:"PDU_ORIENTATION" default:"front" json:"pduOrientation"`
	DryRun             bool   `envconfig:"DRY_RUN" default:"false" json:"dryRun"`
}

type journalConfig struct {
	Type string `envconfig:"JOURNAL_TYPE" default:"sqlite" validate:"journal_type"`
	DSN  string `envconfig:"JOURNAL_DSN" default:"rt2d42.db"`
}

type logConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	File  string `envconfig:"LOG_FILE" default:""`
	Debug bool   `envconfig:"DEBUG" default:"false"`
}

type metricsConfig struct {
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL" default:"" validate:"omitempty,url"`
	Job            string `envconfig:"PUSHGATEWAY_JOB" default:"rt2d42"`
}

// New reads the configuration from the environment. envFile is loaded first
// when set; otherwise a .env file in the working directory is loaded when
// present. Variables already set in the environment win over the file.
func New(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultEnvFile); err == nil {
		if err := godotenv.Load(defaultEnvFile); err != nil {
			return nil, err
		}
	}

	cfg := NewDefault()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewDefault returns a configuration holding only default values.
func NewDefault() *Config {
	return &Config{
		Source: &sourceConfig{
			Port: 3306,
			Name: "racktables",
		},
		Device42: &device42Config{
			Timeout: 60 * time.Second,
		},
		Migration: &migrationConfig{
			PDUMount:       "left",
			PDUOrientation: "front",
		},
		Journal: &journalConfig{
			Type: JournalSQLite,
			DSN:  "rt2d42.db",
		},
		Log: &logConfig{
			Level: "info",
		},
		Metrics: &metricsConfig{
			Job: "rt2d42",
		},
	}
}
