package app

import (
	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/realtime"
	"github.com/openmcp/openmcp-backend/internal/services"
)

type Services struct {
	Prompts   services.PromptService
	Resources services.ResourceService
}

func wireServices(log *logger.Logger, reposet Repos, notifier realtime.ChangeNotifier) Services {
	log.Info("Wiring services...")
	resourceService := services.NewResourceService(reposet.Resources, reposet.Admins, notifier, log)
	promptService := services.NewPromptService(reposet.Prompts, reposet.Admins, resourceService, log)
	return Services{
		Prompts:   promptService,
		Resources: resourceService,
	}
}
