// Package server exposes the action gateway over HTTP (gin) and reports
// process health over the standard gRPC health protocol.
//
// Routes:
//
//	POST /execute       run one action; /api/execute is an alias
//	POST /tools         list the actions available to a credential
//	GET  /heartbeat     liveness, configured chain and build version
//
// Every response carries an X-Request-ID header. An incoming X-Request-ID is
// echoed back, otherwise a new UUID is generated.
package server
