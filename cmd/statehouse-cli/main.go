package main

import (
	"context"
	"statehouse-backend/cmd/statehouse-cli/commands"
	"statehouse-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "statehouse-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
