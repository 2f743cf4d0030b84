// Package logger builds the service's zap logger.
package logger

import (
	"go.uber.org/zap"
)

// New returns a logger appropriate for the environment: human-readable in
// development, JSON in everything else.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
