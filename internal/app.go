package internal

import (
	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// App aggregates the CLI controllers assembled by the DIG container.
type App struct {
	controllers *[]entities.Controller
}

// NewApp creates the App from the aggregated controllers.
func NewApp(controllers *[]entities.Controller) *App {
	return &App{controllers: controllers}
}

// GetControllers returns every registered controller.
func (it *App) GetControllers() []entities.Controller {
	return *it.controllers
}
