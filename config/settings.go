package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Settings is the process-wide configuration, loaded once in main and
// handed to the services that need it. Tests build their own instance.
type Settings struct {
	MongoURI      string
	MongoDatabase string
	Port          string

	// Billing
	MilkRatePerLiter float64

	// All "today" decisions are made in this zone, never the host's.
	Location     *time.Location
	GenerationAt string // wall-clock HH:MM for both shift jobs

	// Monthly summary mail
	SummaryMailDay int // day of month, 0 disables
	SummaryMailAt  string
	AdminEmail     string
	MailFrom       string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string

	JWTSecret string
}

func LoadSettings() (*Settings, error) {
	s := &Settings{
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDatabase:    envOr("MONGO_DB", "prakrtifarms"),
		Port:             envOr("PORT", "1414"),
		MilkRatePerLiter: 90,
		GenerationAt:     envOr("ORDER_GENERATION_AT", "23:30"),
		SummaryMailDay:   1,
		SummaryMailAt:    envOr("SUMMARY_MAIL_AT", "08:00"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         465,
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
	}

	if v := os.Getenv("MILK_RATE_PER_LTR"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			return nil, fmt.Errorf("invalid MILK_RATE_PER_LTR %q", v)
		}
		s.MilkRatePerLiter = rate
	}
	if v := os.Getenv("SUMMARY_MAIL_DAY"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil || day < 0 || day > 28 {
			return nil, fmt.Errorf("invalid SUMMARY_MAIL_DAY %q", v)
		}
		s.SummaryMailDay = day
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q", v)
		}
		s.SMTPPort = port
	}

	location, err := time.LoadLocation(envOr("TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	s.Location = location

	return s, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
