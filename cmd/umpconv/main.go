// Command umpconv converts files between MIDI 1.0 byte streams and Universal
// MIDI Packets.
//
//	umpconv -to ump [-protocol 1|2] [-group n] [-sysex8] files...
//	umpconv -to midi1 -print song.ump
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/leandrodaf/midi2/internal/logger"
	"github.com/leandrodaf/midi2/sdk/contracts"
	"golang.org/x/sync/errgroup"
)

func main() {
	var cfg config
	flag.StringVar(&cfg.to, "to", "", "target format: ump or midi1")
	flag.IntVar(&cfg.protocol, "protocol", 2, "channel voice protocol of produced UMP: 1 or 2")
	flag.UintVar(&cfg.group, "group", 0, "UMP group (0-15)")
	flag.BoolVar(&cfg.sysex8, "sysex8", false, "emit SysEx as SysEx8 instead of SysEx7")
	flag.UintVar(&cfg.stream, "stream", 0, "SysEx8 stream ID")
	flag.StringVar(&cfg.endian, "endian", "native", "UMP byte order: native, be or le")
	flag.BoolVar(&cfg.delta, "delta", false, "MIDI 1.0 side is delta-time/event pairs")
	flag.BoolVar(&cfg.reordered, "reordered-dte", false, "accept data entry LSB before MSB")
	flag.BoolVar(&cfg.print, "print", false, "print the converted messages instead of writing files")
	flag.StringVar(&cfg.outDir, "out", "", "output directory (default: next to each input)")
	flag.IntVar(&cfg.jobs, "j", runtime.NumCPU(), "files converted in parallel")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&cfg.logFile, "log-file", "", "write logs to this file instead of stderr")
	flag.Parse()

	level, err := contracts.ParseLogLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(2)
	}
	log := logger.NewZapLogger()
	log.SetLevel(level)
	log.SetDestination(contracts.Destination(cfg.logFile), cfg.logFile)

	if err := run(context.Background(), log, cfg, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, log contracts.Logger, cfg config, paths []string) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if len(paths) == 0 {
		return ErrNoInput
	}
	if cfg.group > 15 {
		log.Warn("group out of range; using low nibble", log.Field().Int("group", int(cfg.group)))
	}

	if cfg.print {
		// Printed output keeps input order.
		for _, path := range paths {
			out, err := convertFile(path, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("== %s\n", path)
			if err := dump(os.Stdout, cfg, out); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.jobs, 1))
	for _, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			out, err := convertFile(path, cfg)
			if err != nil {
				return err
			}
			dst := outputPath(path, cfg)
			if err := os.WriteFile(dst, out, 0o644); err != nil {
				return fmt.Errorf("%s: %w", dst, err)
			}
			log.Info("converted",
				log.Field().String("input", path),
				log.Field().String("output", dst),
				log.Field().Int("bytes", len(out)))
			return nil
		})
	}
	return g.Wait()
}

func convertFile(path string, cfg config) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := convertBytes(cfg, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// outputPath replaces the extension of path with the one for the target
// format, placing the file in cfg.outDir when set.
func outputPath(path string, cfg config) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + cfg.extension()
	dir := filepath.Dir(path)
	if cfg.outDir != "" {
		dir = cfg.outDir
	}
	return filepath.Join(dir, name)
}
