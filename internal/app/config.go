package app

import (
	"strings"

	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/utils"
)

type Config struct {
	HTTPAddr    string
	AdminLogins []string
	RedisAddr   string
}

func LoadConfig(log *logger.Logger) Config {
	httpAddr := utils.GetEnv("HTTP_ADDR", ":8080", log)
	adminLogins := utils.GetEnv("ADMIN_LOGINS", "", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)

	var admins []string
	for _, login := range strings.Split(adminLogins, ",") {
		login = strings.TrimSpace(login)
		if login != "" {
			admins = append(admins, login)
		}
	}

	return Config{
		HTTPAddr:    httpAddr,
		AdminLogins: admins,
		RedisAddr:   redisAddr,
	}
}
