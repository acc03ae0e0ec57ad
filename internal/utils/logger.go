package utils

import (
	"log"
	"strings"
)

// LogEvent prints one line per business event: [MODULE] action=... request_id=... msg=...
// Never pass card numbers, verification codes or tokens in message.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
