package main

import (
	"context"
	"flag"
	"log"

	"routekit/pkg/config"
	"routekit/pkg/graphstore"
	"routekit/pkg/osmparser"

	"github.com/dgraph-io/badger/v4"
)

var (
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap pbf extract to import")
	configFile = flag.String("config", "", "hcl config file, empty uses defaults")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	ctx := context.Background()

	parser := osmparser.NewOsmParser()
	graph, err := parser.Parse(ctx, *mapFile)
	if err != nil {
		log.Fatal(err)
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.Graph.StoreDir))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	store := graphstore.NewGraphStore(db)
	if err := store.SaveGraph(ctx, graph); err != nil {
		log.Fatal(err)
	}

	log.Printf("graph saved to %s (%d nodes, %d edges)", cfg.Graph.StoreDir, graph.NumNodes(), graph.NumEdges())
}
