package main

import (
	"flag"
	"log"
	"net/http"

	"routekit/pkg/config"
	"routekit/pkg/graphstore"
	"routekit/pkg/routeplanner"
	"routekit/pkg/scorer"
	"routekit/pkg/server/rest"
	"routekit/pkg/server/rest/service"
	"routekit/pkg/snap"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
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

	db, err := badger.Open(badger.DefaultOptions(cfg.Graph.StoreDir))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	store := graphstore.NewGraphStore(db)
	graph, err := store.LoadGraph()
	if err != nil {
		log.Fatalf("loading graph from %s: %v (run the importer first)", cfg.Graph.StoreDir, err)
	}
	log.Printf("graph loaded: %d nodes, %d edges", graph.NumNodes(), graph.NumEdges())

	closures := scorer.NewClosureStore()
	chain, err := cfg.Planner.BuildChain(closures)
	if err != nil {
		log.Fatal(err)
	}

	planner := routeplanner.NewRoutePlanner(cfg.Planner.MaxIterations, chain)
	snapper := snap.NewNodeSnapper(graph, cfg.Graph.SnapRadiusMeter)
	navigationSvc := service.NewNavigationService(graph, planner, snapper, closures,
		*cfg.Graph.SimplifyThresholdMeter)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(rest.PromeHttpMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	rest.NavigationRouter(r, navigationSvc)

	log.Printf("routed listening on %s", cfg.Server.ListenAddr)
	if err := http.ListenAndServe(cfg.Server.ListenAddr, r); err != nil {
		log.Fatal(err)
	}
}
