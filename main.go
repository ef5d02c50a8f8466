package main

import (
	"github.com/samber/lo"
	"github.com/ytbridge/ytbridge/cmd"
	"github.com/ytbridge/ytbridge/config"
	"github.com/ytbridge/ytbridge/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}
