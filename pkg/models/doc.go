// Package models defines the wire types shared between the API client,
// the state stores, and the UI layers. Field names and JSON tags follow
// the storefront backend contract; all types are plain data with no
// behavior beyond small derived helpers.
package models
