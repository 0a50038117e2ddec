package common

import "os"

// UnknownHostFallback names the host in log file names when the hostname is unavailable.
const UnknownHostFallback = "unknown-host"

// osHostname is replaced in tests.
var osHostname = os.Hostname

// GetHostname returns the machine hostname, or UnknownHostFallback on error.
func GetHostname() string {
	hostname, err := osHostname()
	if err != nil || hostname == "" {
		return UnknownHostFallback
	}
	return hostname
}
