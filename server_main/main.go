// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"github.com/SoftbearStudios/truchet/cloud"
	"github.com/SoftbearStudios/truchet/server"
	"github.com/SoftbearStudios/truchet/truchet"
	"github.com/SoftbearStudios/truchet/truchet/palette"
	"golang.org/x/net/netutil"
	"log"
	"log/slog"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
)

func main() {
	var (
		port           int
		maxConnections int
		maxRenders     int
		maxPixels      int
		stage          string
		region         string
		local          string
		palettes       string
		config         string
		domain         string
		zoneID         string
		host           string
		renderLog      string
		verbose        bool
	)

	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.IntVar(&maxRenders, "max-renders", 2, "maximum number of concurrent renders")
	flag.IntVar(&maxPixels, "max-pixels", server.DefaultMaxPixels, "maximum canvas area rendered on request")
	flag.StringVar(&stage, "stage", "prod", "cloud stage for the gallery bucket and table")
	flag.StringVar(&region, "region", "us-east-1", "AWS region")
	flag.StringVar(&local, "local", "", "store the gallery in this directory instead of AWS")
	flag.StringVar(&palettes, "palettes", "", "JSON palette list replacing the built-in palettes")
	flag.StringVar(&config, "config", "", "JSON config used as the defaults for requests")
	flag.StringVar(&domain, "domain", "", "Route 53 domain to announce this server under")
	flag.StringVar(&zoneID, "zone", "", "Route 53 hosted zone ID of -domain")
	flag.StringVar(&host, "host", "preview", "host label to announce under -domain")
	flag.StringVar(&renderLog, "render-log", "", "append a CSV row per render to this file")
	flag.BoolVar(&verbose, "v", false, "log every stage")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	truchet.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	options := server.Options{
		MaxRenders: maxRenders,
		MaxPixels:  maxPixels,
		RenderLog:  renderLog,
	}

	if palettes != "" {
		list, err := loadPalettes(palettes)
		if err != nil {
			log.Fatal("palettes: ", err)
		}
		options.Palettes = list
	}
	if config != "" {
		cfg, err := loadConfig(config)
		if err != nil {
			log.Fatal("config: ", err)
		}
		options.Defaults = cfg
	}

	var err error
	if local != "" {
		options.Cloud, err = cloud.NewLocal(local)
	} else {
		options.Cloud, err = cloud.New(region, stage)
	}
	if err != nil {
		// Cloud is not required for server to function, just log an error
		log.Printf("Cloud error: %v\n", err)
		options.Cloud = nil
	}

	if domain != "" {
		if err := announce(options.Cloud, domain, zoneID, host); err != nil {
			log.Printf("DNS error: %v\n", err)
		}
	}

	log.Printf("truchet server started on :%d (%s)", port, options.Cloud)

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	// pprof stays on the default mux
	http.Handle("/", server.New(options))

	log.Fatal("Serve: ", http.Serve(l, nil))
}

func announce(c *cloud.Cloud, domain, zoneID, host string) error {
	if err := c.EnableDNS(domain, zoneID); err != nil {
		return err
	}
	ip, err := cloud.PublicIP()
	if err != nil {
		return err
	}
	if err := c.Announce(host, ip); err != nil {
		return err
	}
	log.Printf("announced %s.%s at %s", host, domain, ip)
	return nil
}

func loadPalettes(path string) (palette.List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return palette.Load(file)
}

func loadConfig(path string) (truchet.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return truchet.Config{}, err
	}
	defer file.Close()
	return truchet.LoadConfig(file)
}
