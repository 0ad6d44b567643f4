// Package common holds helpers shared by the per-service tool packages:
// JSON result encoding, the authorization guidance error, and the
// instrumentation wrapper applied at tool registration.
package common
