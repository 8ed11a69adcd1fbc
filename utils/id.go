package utils

import "github.com/google/uuid"

// RunID returns a short random identifier used to tag one provisioning run
// in log output. Eight hex chars is enough to tell runs apart in a log file.
func RunID() string {
	return uuid.NewString()[:8]
}
