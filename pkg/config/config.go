package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

type Config struct {
	Server  ServerOptions `yaml:"server"`
	Graph   GraphOptions  `yaml:"graph"`
	Snap    SnapOptions   `yaml:"snap"`
	Search  SearchOptions `yaml:"search"`
	Cache   CacheOptions  `yaml:"cache"`
	Workers int           `yaml:"workers"`
}

type ServerOptions struct {
	ListenAddr  string   `yaml:"listen-addr"`
	CorsOrigins []string `yaml:"cors-origins"`
	SwaggerURL  string   `yaml:"swagger-url"`
}

type GraphOptions struct {
	MapFile         string   `yaml:"map-file"`
	AllowedHighways []string `yaml:"allowed-highways"`
}

type SnapOptions struct {
	Index               SnapIndex `yaml:"index"`
	H3Resolution        int       `yaml:"h3-resolution"`
	CoverageMarginMiles float64   `yaml:"coverage-margin-miles"`
}

type SearchOptions struct {
	Timeout                 time.Duration `yaml:"timeout"`
	Algorithm               string        `yaml:"algorithm"`
	SimplifyToleranceMeters float64       `yaml:"simplify-tolerance-meters"`
}

type CacheOptions struct {
	Engine CacheEngine   `yaml:"engine"`
	Path   string        `yaml:"path"`
	TTL    time.Duration `yaml:"ttl"`
}

func Default() Config {
	return Config{
		Server: ServerOptions{
			ListenAddr:  ":5000",
			CorsOrigins: []string{"https://*", "http://*"},
			SwaggerURL:  "http://localhost:5000/swagger/doc.json",
		},
		Graph: GraphOptions{
			MapFile: "solo_jogja.osm.pbf",
		},
		Snap: SnapOptions{
			Index:               SNAP_H3,
			H3Resolution:        9,
			CoverageMarginMiles: 1,
		},
		Search: SearchOptions{
			Timeout:                 5 * time.Second,
			Algorithm:               "astar",
			SimplifyToleranceMeters: 7,
		},
		Cache: CacheOptions{
			Engine: CACHE_NONE,
			TTL:    time.Hour,
		},
		Workers: 8,
	}
}

// ReadConfig baca file yaml di atas nilai Default. field yang tidak ada di file tetap default.
func ReadConfig(file string) (Config, error) {
	log.Printf("reading config file %s", file)
	config := Default()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config file %s: %w", file, err)
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	if c.Search.Timeout < 0 {
		return errors.New("search timeout must not be negative")
	}
	if c.Search.SimplifyToleranceMeters < 0 {
		return errors.New("simplify tolerance must not be negative")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if c.Snap.H3Resolution < 0 || c.Snap.H3Resolution > 15 {
		return fmt.Errorf("h3 resolution %d out of range [0, 15]", c.Snap.H3Resolution)
	}
	if c.Cache.Engine != CACHE_NONE && c.Cache.Engine != CACHE_BADGER && c.Cache.Path == "" {
		return fmt.Errorf("cache engine %s needs a path", c.Cache.Engine)
	}
	return nil
}

//**********************************************************
// enums
//**********************************************************

type SnapIndex byte

const (
	SNAP_LINEAR SnapIndex = 0
	SNAP_H3     SnapIndex = 1
	SNAP_RTREE  SnapIndex = 2
)

func (self SnapIndex) String() string {
	switch self {
	case SNAP_LINEAR:
		return "linear"
	case SNAP_H3:
		return "h3"
	case SNAP_RTREE:
		return "rtree"
	default:
		panic("unknown snap index")
	}
}
func (self SnapIndex) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *SnapIndex) UnmarshalYAML(value *yaml.Node) error {
	typ, err := SnapIndexFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func SnapIndexFromString(s string) (SnapIndex, error) {
	switch s {
	case "linear":
		return SNAP_LINEAR, nil
	case "h3":
		return SNAP_H3, nil
	case "rtree":
		return SNAP_RTREE, nil
	default:
		return SNAP_LINEAR, fmt.Errorf("unknown snap index %q", s)
	}
}

type CacheEngine byte

const (
	CACHE_NONE   CacheEngine = 0
	CACHE_BADGER CacheEngine = 1
	CACHE_PEBBLE CacheEngine = 2
)

func (self CacheEngine) String() string {
	switch self {
	case CACHE_NONE:
		return "none"
	case CACHE_BADGER:
		return "badger"
	case CACHE_PEBBLE:
		return "pebble"
	default:
		panic("unknown cache engine")
	}
}
func (self CacheEngine) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *CacheEngine) UnmarshalYAML(value *yaml.Node) error {
	typ, err := CacheEngineFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func CacheEngineFromString(s string) (CacheEngine, error) {
	switch s {
	case "none", "":
		return CACHE_NONE, nil
	case "badger":
		return CACHE_BADGER, nil
	case "pebble":
		return CACHE_PEBBLE, nil
	default:
		return CACHE_NONE, fmt.Errorf("unknown cache engine %q", s)
	}
}
