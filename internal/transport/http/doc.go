// Package http contains the chi HTTP handlers for the calculation API.
//
// Endpoints:
//
//	POST /api/calculate         JSON body with delimited values and optional limits
//	POST /api/calculate/file    multipart upload (csv/xlsx) with optional column/sheet/limits
//	POST /api/calculate/export  same body as /api/calculate, responds with a BOM CSV attachment
//	GET  /api/health            liveness and version
//
// Soft failures (empty input, undefined Cpk) are HTTP 200 with null
// fields; only malformed requests produce RFC 7807 error responses.
package http
