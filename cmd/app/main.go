package main

import (
	"github.com/mkhalturin/filmatch/core/internal/app"
	"github.com/mkhalturin/filmatch/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
