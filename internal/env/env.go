package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	ErrNotFound         = errors.New("environment variable with key not found")
	ErrConversionFailed = errors.New("failed to convert environment variable with key to value")
)

func errNotFound(key string) error {
	return fmt.Errorf("key: %s: %w", key, ErrNotFound)
}

func errConversionFailed(key string, typeName string) error {
	return fmt.Errorf("key: %s type: %s: %w", key, typeName, ErrConversionFailed)
}

func GetStringOrDefault(key string, defaultVal string) string {
	if val, found := os.LookupEnv(key); found {
		return val
	}

	return defaultVal
}

func GetString(key string) (string, error) {
	if val, found := os.LookupEnv(key); found {
		return val, nil
	}

	return "", errNotFound(key)
}

func MustGetString(key string) string {
	val, err := GetString(key)
	if err != nil {
		panic(err)
	}

	return val
}

func GetInt(key string) (int, error) {
	val, found := os.LookupEnv(key)
	if !found {
		return 0, errNotFound(key)
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, errConversionFailed(key, "int")
	}

	return i, nil
}

func MustGetInt(key string) int {
	i, err := GetInt(key)
	if err != nil {
		panic(err)
	}

	return i
}

func GetIntOrDefault(key string, defaultVal int) int {
	if i, err := GetInt(key); err == nil {
		return i
	}

	return defaultVal
}

func GetFloatOrDefault(key string, defaultVal float64) float64 {
	val, found := os.LookupEnv(key)
	if !found {
		return defaultVal
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}

	return f
}

func GetBoolOrDefault(key string, defaultVal bool) bool {
	val, found := os.LookupEnv(key)
	if !found {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}

	return b
}

func GetDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val, found := os.LookupEnv(key)
	if !found {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
