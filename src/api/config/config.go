package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	MySQLDSN  string
	RedisURL  string
	JWTSecret string
	Port      string
	PageSize  int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	ps, _ := strconv.Atoi(getenv("PAGE_SIZE", "20"))
	return Config{
		MySQLDSN:  getenv("MYSQL_DSN", "talentpath:talentpath@tcp(localhost:3306)/talentpath?parseTime=true"),
		RedisURL:  getenv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret: getenv("JWT_SECRET", "dev-secret-change-me"),
		Port:      getenv("PORT", "8080"),
		PageSize:  ps,
	}
}
