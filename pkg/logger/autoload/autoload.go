// Package autoload initializes the global logger from LOGGER_* environment
// variables as an import side effect.
package autoload

import (
	configx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/config"
	logx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOGGER")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*cfg)
}
