// Package autoload initializes the global logger from the LOG_* environment
// on import.
package autoload

import (
	configx "github.com/storewise/recommender/pkg/config"
	logx "github.com/storewise/recommender/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
