package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	_ "github.com/lintang-b-s/osmroute/docs"
	"github.com/lintang-b-s/osmroute/pkg/config"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/osmroute/pkg/kv"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/lintang-b-s/osmroute/pkg/server/rest"
	"github.com/lintang-b-s/osmroute/pkg/server/rest/service"
	"github.com/lintang-b-s/osmroute/pkg/snap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	configFile = flag.String("config", "", "yaml config file (optional)")
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreeetmap file buat road network graphnya")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

//	@title			osmroute API
//	@version		1.0
//	@description	simple openstreetmap routing engine in go. A* shortest path query, turn-by-turn directions & distance matrix

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, _, _, err := osmparser.BuildGraph(ctx, cfg.Graph.MapFile, cfg.Graph.AllowedHighways)
	if err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "build_graph")

	locator := newLocator(cfg.Snap, g)
	recordMemProfile(memprofile, "build_snap_index")

	options := []service.Option{
		service.WithSearchTimeout(cfg.Search.Timeout),
		service.WithDefaultAlgorithm(cfg.Search.Algorithm),
		service.WithWorkers(cfg.Workers),
		service.WithSimplifyTolerance(cfg.Search.SimplifyToleranceMeters),
	}
	cache, err := openRouteCache(cfg.Cache)
	if err != nil {
		log.Fatal(err)
	}
	if cache != nil {
		defer cache.Close()
		options = append(options, service.WithRouteCache(cache))
	}

	routingAlgorithm := routingalgorithm.NewRouteAlgorithm(g)
	navigatorSvc := service.NewNavigationService(g, locator, routingAlgorithm, cfg.Snap.CoverageMarginMiles, options...)
	recordMemProfile(memprofile, "service_init")

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(cfg.Server.SwaggerURL), //The url pointing to API definition
	))

	rest.NavigatorRouter(r, navigatorSvc, m)

	srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	fmt.Printf("\n A* routing engine ready!! %d routable vertices, snap index %s, route cache %s",
		g.NumVertices(), cfg.Snap.Index, cfg.Cache.Engine)
	fmt.Printf("\nserver started at %s\n", cfg.Server.ListenAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// loadConfig config dari file (kalau ada), flag yang di set eksplisit menimpa nilai config.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.ReadConfig(*configFile)
		if err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listenaddr":
			cfg.Server.ListenAddr = *listenAddr
		case "f":
			cfg.Graph.MapFile = *mapFile
		}
	})
	return cfg, cfg.Validate()
}

func newLocator(opts config.SnapOptions, g *datastructure.Graph) service.Locator {
	switch opts.Index {
	case config.SNAP_H3:
		hl := snap.NewH3Locator(g, opts.H3Resolution)
		log.Printf("h3 snap index built: %d cells (resolution %d)", hl.NumCells(), opts.H3Resolution)
		return hl
	case config.SNAP_RTREE:
		return snap.NewRtreeLocator(g)
	default:
		return snap.NewNodeLocator(g)
	}
}

type routeCache interface {
	service.RouteCache
	io.Closer
}

// openRouteCache nil kalau cache tidak dipakai.
func openRouteCache(opts config.CacheOptions) (routeCache, error) {
	switch opts.Engine {
	case config.CACHE_BADGER:
		db, err := kv.OpenBadger(opts.Path)
		if err != nil {
			return nil, err
		}
		return kv.NewBadgerRouteCache(db, opts.TTL), nil
	case config.CACHE_PEBBLE:
		db, err := kv.OpenPebble(opts.Path)
		if err != nil {
			return nil, err
		}
		return kv.NewPebbleRouteCache(db), nil
	default:
		return nil, nil
	}
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		f, err := os.Create(strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1))
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
