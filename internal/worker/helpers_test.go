package worker

import "code-auditor/internal/observability"

func testLogger() *observability.Logger {
	return observability.NewLogger("error")
}
