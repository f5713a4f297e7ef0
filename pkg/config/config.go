package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Proveedores de identidad soportados.
const (
	ProviderFirebase = "firebase"
	ProviderPostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	Session      SessionConfig
	Identity     IdentityConfig
	Firebase     FirebaseConfig
	DB           DBConfig
	Notification NotificationConfig
	Seed         SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig firma de la cookie de sesión (JWT HS256).
type SessionConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// IdentityConfig elige el backend de identidad y dónde se guardan los perfiles.
type IdentityConfig struct {
	Provider          string // firebase | postgres
	ProfileCollection string // colección plana: <collection>/<uid>
}

// FirebaseConfig identificadores del proyecto Firebase (los mismos del SDK web).
// AuthURL y FirestoreURL permiten apuntar al emulador.
type FirebaseConfig struct {
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
	MeasurementID     string
	AuthURL           string
	FirestoreURL      string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// NotificationConfig duración fija de los avisos en pantalla.
type NotificationConfig struct {
	TTLSeconds int
}

// TTL devuelve la duración como time.Duration.
func (c NotificationConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SeedConfig archivo YAML con cuentas iniciales.
type SeedConfig struct {
	AccountsPath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SESSION_SECRET, FIREBASE_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "agrilink"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Session: SessionConfig{
			Secret:     getString(v, "SESSION_SECRET", ""),
			Expiration: getInt(v, "SESSION_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "SESSION_ISSUER", "agrilink"),
		},
		Identity: IdentityConfig{
			Provider:          strings.ToLower(getString(v, "IDENTITY_PROVIDER", ProviderFirebase)),
			ProfileCollection: getString(v, "PROFILE_COLLECTION", "users"),
		},
		Firebase: FirebaseConfig{
			APIKey:            getString(v, "FIREBASE_API_KEY", ""),
			AuthDomain:        getString(v, "FIREBASE_AUTH_DOMAIN", ""),
			ProjectID:         getString(v, "FIREBASE_PROJECT_ID", ""),
			StorageBucket:     getString(v, "FIREBASE_STORAGE_BUCKET", ""),
			MessagingSenderID: getString(v, "FIREBASE_MESSAGING_SENDER_ID", ""),
			AppID:             getString(v, "FIREBASE_APP_ID", ""),
			MeasurementID:     getString(v, "FIREBASE_MEASUREMENT_ID", ""),
			AuthURL:           getString(v, "FIREBASE_AUTH_URL", "https://identitytoolkit.googleapis.com/v1"),
			FirestoreURL:      getString(v, "FIRESTORE_URL", "https://firestore.googleapis.com/v1"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "agrilink"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Notification: NotificationConfig{
			TTLSeconds: getInt(v, "NOTIFICATION_TTL_SECONDS", 3),
		},
		Seed: SeedConfig{
			AccountsPath: getString(v, "SEED_ACCOUNTS_PATH", "config/accounts.yaml"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones inválidas antes de arrancar.
func (c *Config) Validate() error {
	switch c.Identity.Provider {
	case ProviderFirebase:
		if c.Firebase.APIKey == "" || c.Firebase.ProjectID == "" {
			return fmt.Errorf("config: FIREBASE_API_KEY y FIREBASE_PROJECT_ID son obligatorios con IDENTITY_PROVIDER=firebase")
		}
	case ProviderPostgres:
	default:
		return fmt.Errorf("config: IDENTITY_PROVIDER desconocido %q", c.Identity.Provider)
	}
	if c.Session.Secret == "" {
		if c.App.Env != "development" {
			return fmt.Errorf("config: SESSION_SECRET es obligatorio fuera de development")
		}
		c.Session.Secret = "dev-secret-change-me"
	}
	if c.Notification.TTLSeconds <= 0 {
		c.Notification.TTLSeconds = 3
	}
	if c.Identity.ProfileCollection == "" {
		c.Identity.ProfileCollection = "users"
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
