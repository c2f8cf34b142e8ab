package controllers

import (
	"go.uber.org/dig"

	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewRunController); err != nil {
		return err
	}
	if err := container.Provide(NewListController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the App.
func NewControllers(
	runController *RunController,
	listController *ListController,
) *[]entities.Controller {
	return &[]entities.Controller{
		runController,
		listController,
	}
}
