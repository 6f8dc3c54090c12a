// Package api serves scraped seasons over HTTP.
//
// Routes:
//
//	GET /seasons/{year}   season JSON, filtered by ?team=, ?venue=, ?finals_only=, ?no_byes=
//	GET /health           liveness
//	GET /metrics          metrics snapshot
//
// Every response carries an X-Request-ID header. Seasons are scraped on demand;
// nothing is cached between requests.
package api
