package boot

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"

	"github.com/lumenview/lumenview/log"
)

// hostConfig mirrors the yaml layout of a host configuration file:
//
//	lumenview:
//	  log:
//	    level: debug
//	  plugins:
//	    viewer.zoom:
//	      step: 0.5
type hostConfig struct {
	Lumenview struct {
		Log struct {
			Level string `json:"level"`
		} `json:"log"`
		Plugins map[string]map[string]any `json:"plugins"`
	} `json:"lumenview"`
}

// loadOverrides reads the host configuration file, applies the log level,
// and returns the per-plugin configuration overrides keyed by plugin id.
// Without a configured file it returns nothing.
func (b *Boot) loadOverrides() (map[string]map[string]any, error) {
	if b.confPath == "" {
		return nil, nil
	}
	log.Infof("reading host configuration: %s", b.confPath)

	c := config.New(
		config.WithSource(
			file.NewSource(b.confPath),
		),
	)
	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("loading host configuration: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warnf("closing host configuration source: %v", err)
		}
	}()

	var hc hostConfig
	if err := c.Scan(&hc); err != nil {
		return nil, fmt.Errorf("parsing host configuration: %w", err)
	}

	if lvl := hc.Lumenview.Log.Level; lvl != "" {
		applyLogLevel(lvl)
	}
	return hc.Lumenview.Plugins, nil
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("unknown log level %q, keeping current level", level)
	}
}
