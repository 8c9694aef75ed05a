package app

import (
	"gorm.io/gorm"

	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/repos"
	"github.com/openmcp/openmcp-backend/internal/types"
)

type Repos struct {
	Prompts   repos.PrimitiveRepo[types.Prompt, *types.Prompt]
	Resources repos.PrimitiveRepo[types.Resource, *types.Resource]
	Admins    repos.AdminRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Prompts:   repos.NewPromptRepo(db, log),
		Resources: repos.NewResourceRepo(db, log),
		Admins:    repos.NewAdminRepo(db, log),
	}
}
