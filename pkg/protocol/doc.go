// Package protocol implements the compact binary wire format used between
// a Tether server and a connected browser session.
//
// Events (input, change, submit and friends) flow client to server; patches
// (attribute and property writes, text updates, subtree inserts and removals)
// flow server to client. Both directions use length-delimited frames with
// varint-encoded fields, so a typical input event fits in a handful of bytes.
package protocol
