package utils

import (
	"log"
	"os"
)

// LoggerConfig определяет конфигурацию для логгера
type LoggerConfig struct {
	// Выходной поток (os.Stdout, файл и т.д.)
	Output *os.File
	// Включить/выключить цвета для консоли
	EnableColors bool
}

// InitLogger инициализирует и возвращает логгер
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	// Установка вывода по умолчанию
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	prefix := "[ClassHub] "
	if cfg.EnableColors {
		prefix = "\033[36m" + prefix + "\033[0m" // Голубой цвет
	}

	return log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC)
}
