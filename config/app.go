package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Remote collaborators (opaque HTTP contracts)
	CatalogURL string
	CartURL    string

	// Sign-in entry point for unauthenticated cart writes
	SignInURL string

	// Fixed destination for product inquiries
	WhatsAppPhone string

	// Incremental reveal: initial window size and fixed step
	WindowInit int
	RevealStep int
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:       os.Getenv("APP_NAME"),
			Port:          os.Getenv("PORT"),
			Env:           os.Getenv("APP_ENV"),
			Debug:         os.Getenv("DEBUG") == "true",
			CatalogURL:    GetEnv("CATALOG_URL", "https://react-luma.cnxt.link/api/products"),
			CartURL:       GetEnv("CART_URL", "https://react-luma.cnxt.link/api/cart"),
			SignInURL:     GetEnv("SIGNIN_URL", "/signin"),
			WhatsAppPhone: GetEnv("WHATSAPP_PHONE", "919876543210"),
			WindowInit:    getEnvInt("WINDOW_INIT", 8),
			RevealStep:    getEnvInt("REVEAL_STEP", 8),
		}
	})
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
