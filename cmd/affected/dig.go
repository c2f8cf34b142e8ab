package main

import (
	"go.uber.org/dig"

	"github.com/monorepo-ci/affected/internal"
	"github.com/monorepo-ci/affected/internal/infrastructure/controllers"
)

func injectApp() *internal.App {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get App
	var app *internal.App
	if err := container.Invoke(func(it *internal.App) {
		app = it
	}); err != nil {
		panic(err)
	}

	return app
}

func injectRunController() *controllers.RunController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var runController *controllers.RunController
	if err := container.Invoke(func(rc *controllers.RunController) {
		runController = rc
	}); err != nil {
		panic(err)
	}

	return runController
}
