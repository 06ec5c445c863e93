// Package logger provides component-scoped structured logging for ytresolve,
// backed by zerolog.
//
// Features:
//   - Levels TRACE, DEBUG, INFO, WARN, ERROR
//   - Component-based filtering
//   - Text, JSON and color output
//   - Configuration from YTRESOLVE_LOG_* environment variables
//
// Usage:
//
//	log := logger.WithComponent(logger.ComponentInnerTube)
//	log.Debug("player response received", map[string]interface{}{
//		"status": 200,
//	})
//
//	config := logger.DefaultConfig()
//	config.Level = logger.DEBUG
//	config.Format = logger.FormatJSON
//	logger.SetGlobalLogger(logger.New(config))
//
// Components:
//   - ComponentApp: resolver orchestration
//   - ComponentVideoID: identifier extraction
//   - ComponentInnerTube: watch page scrape and player endpoint
//   - ComponentClient: HTTP retries
//   - ComponentFormat: format parsing and selection
//
// Logs are written to stderr; stdout is reserved for the result.
package logger
