package main

import (
	"flag"
	"log"

	"github.com/lintang-b-s/settlement-search/pkg/di"
	"github.com/lintang-b-s/settlement-search/pkg/di/config"

	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "config file, config.yaml in the working directory when empty")
)

//	@title			Settlement Search API
//	@version		1.0
//	@description	Fuzzy search of settlement names partitioned by country and settlement kind.
//	@host			localhost:6060
//	@BasePath		/
func main() {
	flag.Parse()

	server, cleanup, err := di.InitializeSearcherService(config.Path(*configPath))
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if err := server.Wait(); err != nil {
		server.Log.Error("API stopped", zap.Error(err))
		return
	}
	server.Log.Info("API stopped")
}
