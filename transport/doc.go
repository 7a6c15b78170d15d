// Package transport provides core.Transport implementations: an in-memory
// Pipe for tests and examples, and a websocket line transport for chat
// backends reachable through a gateway socket. The core itself stays
// transport-agnostic; a transport's only contract is ordered delivery of
// outbound commands and, for stream transports, a channel of inbound raw
// lines.
package transport
