package main

import (
	"context"

	"github.com/nichedigital/leaddesk/internal/client/config"
	"github.com/nichedigital/leaddesk/internal/client/console"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := console.NewApp(cfg)

	app.Run(ctx)

}
