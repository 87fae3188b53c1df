package client

import "time"

// Configuration holds everything needed to talk to the currency-exchange
// service. It is a plain value: sessions copy it on entry, so concurrent
// callers never race on a shared mutable configuration.
type Configuration struct {
	Host           string
	Username       string
	Password       string
	AccessToken    string
	RequestTimeout time.Duration
}
