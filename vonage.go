// Package vonage holds the message data model for the SMS/voice gateway
// API: building outbound send requests, reading decoded gateway replies
// (including replies split across physical SMS parts), and a deprecated
// positional view kept for callers that have not migrated to the named
// accessors.
package vonage

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

// SetLogger replaces the logger used for decode and lifecycle diagnostics.
// The default is the logrus standard logger.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}
