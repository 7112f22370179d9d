package main

import (
	"log"

	_ "time/tzdata"

	"github.com/nedconnect/backend/cmd/app"
	"github.com/nedconnect/backend/internal/adapters/config"
	setupHTTP "github.com/nedconnect/backend/internal/adapters/controller/http/setup"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	setupHTTP.Setup(a)

	a.Start()
}
