package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret    string
	JWTExpiresIn string // minutes

	AdminEmail    string
	AdminPassword string
	AdminFullName string

	// Geofence: reference point and allowed radius for teacher check-in.
	CollegeLat      float64
	CollegeLng      float64
	AllowedRadiusKM float64

	// Low-attendance alerting.
	LowAttendanceThreshold float64 // percent
	MinPeriodsForAlert     int     // marked periods required before alerting

	// Mail (SendGrid). Empty API key falls back to console logging.
	SendgridAPIKey  string
	MailFromName    string
	MailFromAddress string
	InstitutionName string

	RateLimitPerMin int
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "attendance_db"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
		JWTExpiresIn: getenv("JWT_EXPIRES_IN", "60"),

		AdminEmail:    getenv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		AdminFullName: getenv("ADMIN_FULL_NAME", "Administrator"),

		CollegeLat:      getenvFloat("COLLEGE_LAT", 17.1000),
		CollegeLng:      getenvFloat("COLLEGE_LNG", 80.6000),
		AllowedRadiusKM: getenvFloat("ALLOWED_RADIUS_KM", 0.5),

		LowAttendanceThreshold: getenvFloat("LOW_ATTENDANCE_THRESHOLD", 75),
		MinPeriodsForAlert:     getenvInt("MIN_PERIODS_FOR_ALERT", 10),

		SendgridAPIKey:  getenv("SENDGRID_API_KEY", ""),
		MailFromName:    getenv("MAIL_FROM_NAME", "Attendance System"),
		MailFromAddress: getenv("MAIL_FROM_ADDRESS", "noreply@example.com"),
		InstitutionName: getenv("INSTITUTION_NAME", "Sree Vahini Institute of Science and Technology"),

		RateLimitPerMin: getenvInt("RATE_LIMIT_PER_MIN", 120),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
