package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/singularitti/zuban/internal/cache"
	"github.com/singularitti/zuban/internal/config"
	"github.com/singularitti/zuban/internal/oracle"
	"github.com/singularitti/zuban/pkg/checker"
	"github.com/singularitti/zuban/pkg/diag"
	"github.com/singularitti/zuban/pkg/fixture"
	"github.com/singularitti/zuban/pkg/points"
	"github.com/singularitti/zuban/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [fixture.toml]",
	Short: "Type-check every call site in a fixture file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	file, err := fixture.Load(data)
	if err != nil {
		return err
	}

	fileID := uuid.New().String()

	store, err := cache.Open(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer store.Flush()

	callables, err := groupSignatures(file.Signature)
	if err != nil {
		return err
	}

	o := oracle.New()
	var mu sync.Mutex
	var g errgroup.Group

	// The call-site core itself is a pure function of (signature,
	// arguments, context) with no suspension points (spec §5); the only
	// concurrency in this program lives here, one goroutine per call
	// site, each with its own Points array and diagnostic collector. The
	// only shared write is the signature-cache Put, guarded by mu; each
	// goroutine fills its own reports slot.
	reports := make([]*diag.Collector, len(file.Call))
	for i, call := range file.Call {
		i, call := i, call
		g.Go(func() error {
			callable, ok := callables[call.Target]
			if !ok {
				return fmt.Errorf("check: call targets unknown signature %q", call.Target)
			}
			rawArgs, err := fixture.BuildRawArgs(call)
			if err != nil {
				return err
			}

			sink := &diag.Collector{}
			c := &checker.Checker{
				Oracle:         o,
				Sink:           sink,
				Points:         points.New(len(rawArgs)),
				StrictCompat:   cfg.StrictCompatMode,
				WarnDeprecated: cfg.WarnDeprecated,
				MaxUnions:      cfg.MaxUnions,
			}
			outcome := c.CheckCall(callable, rawArgs, nil)
			if outcome.Ok && outcome.Chosen != nil {
				mu.Lock()
				store.Put(types.DefiningSite{FileID: fileID, NodeIndex: i}, outcome.Chosen)
				mu.Unlock()
			}
			reports[i] = sink
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failures := 0
	for i, sink := range reports {
		for _, d := range sink.Diagnostics {
			fmt.Printf("call[%d] %s: %s\n", i, d.Kind, d.Msg)
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d diagnostic(s)", failures)
	}
	fmt.Printf("run %s: %d call site(s) checked clean\n", fileID, len(file.Call))
	return nil
}

func groupSignatures(decls []fixture.SignatureDecl) (map[string]*types.Callable, error) {
	out := map[string]*types.Callable{}
	for _, decl := range decls {
		sig, err := fixture.BuildSignature(decl)
		if err != nil {
			return nil, err
		}
		c, ok := out[decl.Name]
		if !ok {
			c = &types.Callable{Name: decl.Name, Kind: types.PlainFunction}
			out[decl.Name] = c
		}
		c.Signatures = append(c.Signatures, sig)
	}
	return out, nil
}
