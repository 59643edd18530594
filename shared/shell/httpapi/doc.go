// Package httpapi exposes the circulation commands and read views over HTTP with gin.
//
// Every write endpoint binds JSON or form bodies through ShouldBind, so both transports build
// the same command. The caller is identified by the X-Actor-Role and X-Actor-ID headers and
// defaults to the system actor. X-Request-ID, when it holds a UUID, becomes the correlation id
// of every command the request triggers; it is echoed on the response either way.
package httpapi
