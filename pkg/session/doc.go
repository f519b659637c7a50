/*
Package session keeps wizard cursors by session ID so stateless callers
(HTTP, MCP) can step through a wizard one request at a time.

Access to one session is serialised in process, and across replicas when a
ports.DistributedLocker is configured.
*/
package session
