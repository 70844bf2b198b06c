// Package filemanager exposes a client for the files_manager REST API,
// the Express service behind http://localhost:5000 in the original ALX
// project. It covers file creation (base64 payloads under a parent
// container), retrieval, listing, publish/unpublish and the unauthenticated
// status/stats probes. Authentication is an opaque credential forwarded on
// every request via the X-Token header.
package filemanager
