// Package live connects a mounted root to a browser over WebSocket.
//
// Each connection gets a Session: decoded event frames land user input on
// the target element and dispatch through the root, then the document's
// mutation journal is drained and flushed back as a patch frame. The
// Server renders the initial page over plain HTTP and upgrades /live to
// the WebSocket wire.
package live
