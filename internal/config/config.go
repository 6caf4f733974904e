package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"STOREFRONT_ENV" env-default:"local"` // environment
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
}

// APIConfig настройки клиента REST API магазина
type APIConfig struct {
	BaseURL   string        `yaml:"base_url" env:"STOREFRONT_API_URL" env-default:"http://localhost:3000/api/v1"`
	Timeout   time.Duration `yaml:"timeout" env-default:"30s"`
	RateLimit float64       `yaml:"rate_limit" env-default:"10"` // запросов в секунду, 0 - без ограничения
	Burst     int           `yaml:"burst" env-default:"5"`
}

// StorageConfig - где хранить токен и флаг "запомнить меня"
type StorageConfig struct {
	Driver   string         `yaml:"driver" env:"STOREFRONT_STORAGE" env-default:"file"` // file | postgres
	Path     string         `yaml:"path" env-default:""`
	Profile  string         `yaml:"profile" env:"STOREFRONT_PROFILE" env-default:"default"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig структура по работе с БД (для терминалов с общим хранилищем)
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env-default:"storefront"`
}

// UIConfig тайминги анимаций и задержек интерфейса
type UIConfig struct {
	ToastEnterDelay     time.Duration `yaml:"toast_enter_delay" env-default:"100ms"`
	ToastDuration       time.Duration `yaml:"toast_duration" env-default:"3s"`
	ToastExitDuration   time.Duration `yaml:"toast_exit_duration" env-default:"300ms"`
	ModalOpenDelay      time.Duration `yaml:"modal_open_delay" env-default:"10ms"`
	ModalTransition     time.Duration `yaml:"modal_transition" env-default:"300ms"`
	DepositCloseDelay   time.Duration `yaml:"deposit_close_delay" env-default:"1s"`
	LoginSuccessDelay   time.Duration `yaml:"login_success_delay" env-default:"1500ms"`
	RegisterSwitchDelay time.Duration `yaml:"register_switch_delay" env-default:"1s"`
	PasswordCloseDelay  time.Duration `yaml:"password_close_delay" env-default:"1s"`
	ForgotPasswordDelay time.Duration `yaml:"forgot_password_delay" env-default:"1500ms"`
	ForgotCloseDelay    time.Duration `yaml:"forgot_close_delay" env-default:"1s"`
}

// DSN собирает строку подключения к postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// StoragePath возвращает путь к файлу хранилища, по умолчанию ~/.storefront/storage.json
func (s StorageConfig) StoragePath() string {
	if s.Path != "" {
		return s.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".storefront", "storage.json")
	}
	return filepath.Join(home, ".storefront", "storage.json")
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s", configPath)
	}

	return &cfg
}

// Load читает конфиг из файла, а если путь пустой - только из переменных окружения и значений по умолчанию.
// Используется CLI, где путь приходит из флага cobra, а не из пакета flag.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to read env: %w", op, err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%s: config file %s: %w", op, configPath, err)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: can't read config file %s: %w", op, configPath, err)
	}
	return &cfg, nil
}
