package main

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/ykhdr/rainbow-hash/cracker/config"
	"github.com/ykhdr/rainbow-hash/cracker/internal/hashcrack"
	"github.com/ykhdr/rainbow-hash/pkg/messages"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const partialMarker = "(interrupted: result may be incomplete)"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("crack failed")
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("cracker", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file")
	salted := fs.Bool("salted", false, "look the digest up in the salted mapping")
	recordPath := fs.StringP("record", "r", "", "record file")
	algorithm := fs.StringP("algorithm", "a", "", "digest algorithm")
	search := fs.Bool("search", false, "search the wordlists instead of a record")
	passwords := fs.StringP("passwords", "p", "", "passwords wordlist for --search")
	salts := fs.StringP("salts", "s", "", "salts wordlist for --search")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: cracker [flags] HASH...")
	}
	cfg, err := config.InitializeCLIConfig([]string{*configPath})
	if err != nil {
		return errors.Wrap(err, "initialize config")
	}
	if fs.Changed("record") {
		cfg.Record = *recordPath
	}
	if fs.Changed("algorithm") {
		cfg.Algorithm = *algorithm
	}
	if *search {
		cfg.Strategy = "search"
	}
	if fs.Changed("passwords") {
		cfg.Passwords = *passwords
	}
	if fs.Changed("salts") {
		cfg.Salts = *salts
	}
	cfg.CacheSize = 0
	cfg.SearchTimeout = 0
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := hashcrack.NewStrategy(ctx, cfg)
	if err != nil {
		return err
	}
	cracker := hashcrack.NewCracker(s, cfg.SearchTimeout, nil)
	for _, hash := range fs.Args() {
		resp := cracker.Crack(ctx, messages.NewCrackHashRequest(hash, *salted))
		if err := printResponse(stdout, resp, fs.NArg() > 1); err != nil {
			return err
		}
	}
	return nil
}

// printResponse prefixes lines with the digest when several were asked for.
func printResponse(w io.Writer, resp *messages.CrackHashResponse, labelled bool) error {
	for _, line := range hashcrack.Lines(resp) {
		if labelled {
			line = resp.Hash + "\t" + line
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if !resp.Complete {
		log.Warn().Str("hash", resp.Hash).Msg("lookup interrupted")
		_, err := fmt.Fprintln(w, partialMarker)
		return err
	}
	return nil
}
