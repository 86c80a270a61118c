// Package app provides application initialization and lifecycle management
// for the heat-reuse calculator service. It handles the orchestration of all
// major components including configuration loading, dataset ingestion,
// service initialization, and graceful shutdown procedures.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging and observability
//	3. Load and clean the lookup tables
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//	7. Set up graceful shutdown handlers
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM signals to ensure active requests
// complete, WebSocket connections close cleanly, and final metrics flush.
//
// All initialization errors are returned to the caller; the app does not
// call os.Exit() directly, allowing main to control the exit process.
package app
