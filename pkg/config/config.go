package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la suite (lectura vía Viper desde env y
// opcionalmente archivo). La comparten los dos servicios (inventory y sales).
type Config struct {
	App         AppConfig
	DB          DBConfig
	HTTP        HTTPConfig
	Integration IntegrationConfig
	Reconciler  ReconcilerConfig
	Wishlist    WishlistConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
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

// HTTPConfig puertos de escucha de los dos servicios.
type HTTPConfig struct {
	Host          string
	InventoryPort int
	SalesPort     int
}

// InventoryAddr dirección de escucha del servicio de inventario.
func (c HTTPConfig) InventoryAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.InventoryPort)
}

// SalesAddr dirección de escucha del servicio de ventas.
func (c HTTPConfig) SalesAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.SalesPort)
}

// IntegrationConfig gateway HTTP del servicio de ventas hacia el de inventario.
type IntegrationConfig struct {
	BaseURL        string // ej. http://localhost:8080
	TimeoutSeconds int
}

// Timeout límite por llamada saliente; un timeout cuenta como fallo duro.
func (c IntegrationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ReconcilerConfig reintento fuera de banda de integraciones fallidas.
type ReconcilerConfig struct {
	Enabled         bool
	IntervalSeconds int
	BatchSize       int
}

// Interval periodo entre ciclos de reconciliación.
func (c ReconcilerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// WishlistConfig comportamiento de la conversión wishlist→venta.
// AdjustStockOnConvert decide si la conversión también descuenta stock
// (configurable a propósito: el diseño original no lo hacía).
type WishlistConfig struct {
	AdjustStockOnConvert bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, INVENTORY_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "retail-suite"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "retail_suite"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host:          getString(v, "HTTP_HOST", "0.0.0.0"),
			InventoryPort: getInt(v, "INVENTORY_HTTP_PORT", 8080),
			SalesPort:     getInt(v, "SALES_HTTP_PORT", 8081),
		},
		Integration: IntegrationConfig{
			BaseURL:        getString(v, "INVENTORY_BASE_URL", "http://localhost:8080"),
			TimeoutSeconds: getInt(v, "INVENTORY_TIMEOUT_SECONDS", 5),
		},
		Reconciler: ReconcilerConfig{
			Enabled:         getBool(v, "RECONCILER_ENABLED", true),
			IntervalSeconds: getInt(v, "RECONCILER_INTERVAL_SECONDS", 60),
			BatchSize:       getInt(v, "RECONCILER_BATCH_SIZE", 50),
		},
		Wishlist: WishlistConfig{
			AdjustStockOnConvert: getBool(v, "WISHLIST_ADJUST_STOCK", false),
		},
	}

	return cfg, nil
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
