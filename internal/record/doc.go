// Package record defines the user record held by the table and the
// generators that assign record IDs.
//
// IDs are opaque strings created by the client before a record reaches the
// store. They are never reused after deletion.
package record
