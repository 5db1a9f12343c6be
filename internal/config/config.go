// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Chapa                   `yaml:"chapa"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Chapa структура с настройками платёжного шлюза. Секреты читаются только
// из переменных окружения и передаются в конструкторы явно; их отсутствие
// обнаруживается в момент использования и отдаётся клиенту как ошибка
// сервера, а не как ошибка запроса.
type Chapa struct {
	APIURL        string `yaml:"api_url" env-default:"https://api.chapa.co/v1"`
	SecretKey     string `yaml:"-" env:"CHAPA_SECRET_KEY"`
	WebhookSecret string `yaml:"-" env:"CHAPA_WEBHOOK_SECRET"`
	Amount        string `yaml:"amount" env-default:"100"`
	Currency      string `yaml:"currency" env-default:"ETB"`
	CallbackURL   string `yaml:"callback_url"`
	ReturnURL     string `yaml:"return_url"`
	Title         string `yaml:"title" env-default:"UNI-FINDER Subscription"`
	Description   string `yaml:"description" env-default:"1-Month Subscription Renewal"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс,
// если файл отсутствует или не читается.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
