// Package models contains the data records shared by the inbox, API and
// session layers.
package models

// Message is one retrieved inbox entry.
//
// ID is the store-assigned identifier, stable across reads, and is the key
// used to suppress a message after it has been sent or hidden. Timestamp is
// epoch milliseconds. Sent is transient UI state; the persistent record of
// "already handled" lives in the excluded-ID set, not on the message.
type Message struct {
	ID        string
	Sender    string
	Body      string
	Timestamp int64
	Sent      bool
}
