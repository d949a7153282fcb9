package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/seqsense/pcdvolume/config"
	"github.com/seqsense/pcdvolume/logging"
)

type pcdIOImpl struct{}

func (*pcdIOImpl) exportPCD(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func main() {
	configPath := flag.String("config", "", "volume and scene definition (YAML)")
	logLevel := flag.String("log-level", "", "overrides the configured log level")
	flag.Parse()

	if err := run(*configPath, *logLevel, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("pcdvolume")
	}
}

func run(configPath, logLevel string, in io.Reader, out io.Writer) error {
	cfg := config.Default()
	dir := "."
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		dir = filepath.Dir(configPath)
	} else if err := config.LoadEnv(cfg); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := logging.Init(logging.Config{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		Formatted: cfg.Log.Formatted,
		MaxSize:   cfg.Log.MaxSize,
		MaxFiles:  cfg.Log.MaxFiles,
	}); err != nil {
		return err
	}

	s, err := cfg.NewScene(dir)
	if err != nil {
		return err
	}
	log.Info().Int("objects", s.Len()).Str("config", configPath).Msg("scene loaded")

	cmd := newCommandContext(cfg.Volume, cfg.NewTransform(), s, &pcdIOImpl{})
	cmd.SetMask(cfg.Mask())
	cmd.euler = cfg.Transform.Rotation

	c := &console{cmd: cmd}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		res, err := c.Run(sc.Text())
		if err != nil {
			log.Error().Err(err).Str("line", sc.Text()).Msg("command failed")
			continue
		}
		if res != "" {
			fmt.Fprintln(out, res)
		}
	}
	return sc.Err()
}
