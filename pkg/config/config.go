package config

import (
	"encoding/json"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// PayrollConfig holds settings for the external payroll callback.
type PayrollConfig struct {
	CallbackURL   string
	Timeout       time.Duration
	SigningSecret string
	Department    string // Requests from this department trigger the callback
}

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string
	CurrencyCode string // Ledger currency for all postings

	Payroll     PayrollConfig
	PolicyRules []domain.PolicyRule
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CURRENCY_CODE", "PHP")
	viper.SetDefault("PAYROLL_CALLBACK_URL", "")
	viper.SetDefault("PAYROLL_CALLBACK_TIMEOUT", "10s")
	viper.SetDefault("PAYROLL_SIGNING_SECRET", "")
	viper.SetDefault("PAYROLL_DEPARTMENT", "HR Payroll")
	viper.SetDefault("POLICY_RULES", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.CurrencyCode = viper.GetString("CURRENCY_CODE")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.Payroll.CallbackURL = viper.GetString("PAYROLL_CALLBACK_URL")
	if cfg.Payroll.CallbackURL == "" {
		log.Println("Warning: PAYROLL_CALLBACK_URL not set. Payroll callbacks will be skipped.")
	}
	cfg.Payroll.SigningSecret = viper.GetString("PAYROLL_SIGNING_SECRET")
	cfg.Payroll.Department = viper.GetString("PAYROLL_DEPARTMENT")

	timeoutStr := viper.GetString("PAYROLL_CALLBACK_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for PAYROLL_CALLBACK_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
		}
	}
	cfg.Payroll.Timeout = timeout

	// Posting policy rules are configurable as a JSON array; the built-in
	// rules apply when the variable is unset or malformed.
	cfg.PolicyRules = domain.DefaultPolicyRules()
	if rulesJSON := viper.GetString("POLICY_RULES"); rulesJSON != "" {
		var rules []domain.PolicyRule
		if err := json.Unmarshal([]byte(rulesJSON), &rules); err != nil {
			log.Printf("Warning: Invalid value for POLICY_RULES, using built-in rules: %v\n", err)
		} else {
			cfg.PolicyRules = rules
		}
	}

	return cfg, nil
}
